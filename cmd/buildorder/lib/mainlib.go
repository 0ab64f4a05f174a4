package mainlib

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	cli "github.com/jawher/mow.cli"
	"github.com/serum-errors/go-serum"

	"github.com/warptools/buildorder/internal/config"
	"github.com/warptools/buildorder/internal/ctxlog"
	"github.com/warptools/buildorder/pkg/buildorderapi"
	"github.com/warptools/buildorder/pkg/depgraph"
	"github.com/warptools/buildorder/pkg/depstring"
	"github.com/warptools/buildorder/pkg/fxfile"
	"github.com/warptools/buildorder/pkg/resolve"
)

// Exit codes.  Anything that isn't zero means no order was printed.
const (
	ExitOK         = 0
	ExitCycle      = 1
	ExitBadInput   = 2
	ExitTooDeep    = 3
	ExitUnexpected = 4
)

// Environment variables that stand in for flags.
// When set, they beat the config file, and an explicit flag beats them.
const (
	EnvConfig    = "BUILDORDER_CONFIG"
	EnvMaxDepth  = "BUILDORDER_MAX_DEPTH"
	EnvLogLevel  = "BUILDORDER_LOG_LEVEL"
	EnvLogFormat = "BUILDORDER_LOG_FORMAT"
)

type invocation struct {
	deps       string
	fxfile     string
	dot        bool
	configPath string

	maxDepth     int
	maxDepthSet  bool
	logLevel     string
	logLevelSet  bool
	logFormat    string
	logFormatSet bool
}

// Main runs the complete program exactly as if the full binary.
// args includes the program name in args[0], like os.Args.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) (exitcode int) {
	if len(args) == 0 {
		args = []string{"buildorder"}
	}

	app := cli.App("buildorder", "Compute a deterministic build order from declared dependencies.")
	app.ErrorHandling = flag.ContinueOnError
	app.Spec = "[OPTIONS] [DEPS]"

	var inv invocation
	deps := app.StringArg("DEPS", "", "Dependency string, e.g. 'A:B,C; B:C; C'")
	fxfilePath := app.StringOpt("f fxfile", "", "Read targets from a starlark fx file instead of DEPS")
	dot := app.BoolOpt("dot", false, "Print the dependency graph in graphviz DOT format instead of resolving it")
	configPath := app.String(cli.StringOpt{
		Name:   "c config",
		Desc:   "Path to a TOML config file",
		EnvVar: EnvConfig,
	})
	maxDepth := app.Int(cli.IntOpt{
		Name:      "max-depth",
		Desc:      "Longest dependency chain to follow before giving up (0 for no limit)",
		EnvVar:    EnvMaxDepth,
		SetByUser: &inv.maxDepthSet,
	})
	logLevel := app.String(cli.StringOpt{
		Name:      "log-level",
		Desc:      "One of debug, info, warn, error",
		EnvVar:    EnvLogLevel,
		SetByUser: &inv.logLevelSet,
	})
	logFormat := app.String(cli.StringOpt{
		Name:      "log-format",
		Desc:      "One of text, json",
		EnvVar:    EnvLogFormat,
		SetByUser: &inv.logFormatSet,
	})

	app.Action = func() {
		inv.deps = *deps
		inv.fxfile = *fxfilePath
		inv.dot = *dot
		inv.configPath = *configPath
		inv.maxDepth = *maxDepth
		inv.logLevel = *logLevel
		inv.logFormat = *logFormat
		// mow.cli fills values from the environment but only reports flags as set by the user.
		inv.maxDepthSet = inv.maxDepthSet || envSet(EnvMaxDepth)
		inv.logLevelSet = inv.logLevelSet || envSet(EnvLogLevel)
		inv.logFormatSet = inv.logFormatSet || envSet(EnvLogFormat)
		exitcode = run(inv, stdout, stderr)
	}
	// On a parse error mow.cli has already printed the error and usage to os.Stderr;
	// its output writer isn't configurable, so there's nothing more to say here.
	if err := app.Run(args); err != nil {
		return ExitBadInput
	}
	return exitcode
}

func envSet(name string) bool {
	v, ok := os.LookupEnv(name)
	return ok && v != ""
}

func run(inv invocation, stdout, stderr io.Writer) int {
	cfg, err := inv.loadConfig()
	if err != nil {
		return report(stderr, err)
	}
	logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	model, err := inv.loadModel()
	if err != nil {
		logger.Debug("input rejected", "error", err)
		return report(stderr, err)
	}
	logger.Debug("input loaded", "targets", len(model.Targets()))

	if inv.dot {
		if err := model.WriteDOT(stdout); err != nil {
			return report(stderr, err)
		}
		return ExitOK
	}

	r := &resolve.Resolver{MaxDepth: cfg.Resolve.MaxDepth}
	order, err := r.Resolve(ctx, model)
	if err != nil {
		if serum.Code(err) == buildorderapi.EcodeCycle {
			logger.Info("cycle found", "path", buildorderapi.DetailOf(err, "path"))
		}
		return report(stderr, err)
	}
	fmt.Fprintln(stdout, depstring.Render(order))
	return ExitOK
}

// loadConfig starts from the config file (or defaults), then applies whatever flags or environment variables were set.
func (inv invocation) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if inv.configPath != "" {
		var err error
		cfg, err = config.Load(inv.configPath)
		if err != nil {
			return nil, err
		}
	}
	if inv.maxDepthSet {
		cfg.Resolve.MaxDepth = inv.maxDepth
	}
	if inv.logLevelSet {
		cfg.Log.Level = inv.logLevel
	}
	if inv.logFormatSet {
		cfg.Log.Format = inv.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, buildorderapi.ErrorConfigInvalid(nil, inv.configPath, err.Error())
	}
	return cfg, nil
}

func (inv invocation) loadModel() (*depgraph.Model, error) {
	switch {
	case inv.fxfile != "" && inv.deps != "":
		return nil, errUsage("DEPS and --fxfile are mutually exclusive")
	case inv.fxfile != "":
		body, err := os.ReadFile(inv.fxfile)
		if err != nil {
			return nil, buildorderapi.ErrorFxfileParse(err, inv.fxfile)
		}
		f, err := fxfile.Parse(inv.fxfile, string(body))
		if err != nil {
			return nil, err
		}
		return f.Model(), nil
	case inv.deps != "":
		return depstring.Parse(inv.deps)
	default:
		return nil, errUsage("no dependencies given; pass DEPS or --fxfile")
	}
}

const ecodeUsage = "buildorder-error-usage"

func errUsage(reason string) error {
	return serum.Error(ecodeUsage,
		serum.WithMessageTemplate("{{reason}}"),
		serum.WithDetail("reason", reason),
	)
}

// report prints err for a person to read and picks the exit code.
func report(stderr io.Writer, err error) int {
	switch serum.Code(err) {
	case buildorderapi.EcodeCycle:
		fmt.Fprintf(stderr, "Error: Circular dependency detected involving '%s'\n", buildorderapi.DetailOf(err, "node"))
		return ExitCycle
	case buildorderapi.EcodeDepthExceeded:
		fmt.Fprintln(stderr, "Error: Recursion Limit Reached")
		return ExitTooDeep
	case buildorderapi.EcodeDepstringUnparsable:
		fmt.Fprintf(stderr, "Error: Invalid format: %s (in entry %q)\n",
			buildorderapi.DetailOf(err, "reason"),
			buildorderapi.DetailOf(err, "entry"),
		)
		return ExitBadInput
	case ecodeUsage:
		fmt.Fprintf(stderr, "Error: %s\n", buildorderapi.DetailOf(err, "reason"))
		return ExitBadInput
	case buildorderapi.EcodeFxfileUnparsable,
		buildorderapi.EcodeFxfileInvalid,
		buildorderapi.EcodeConfigInvalid:
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitBadInput
	default:
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitUnexpected
	}
}
