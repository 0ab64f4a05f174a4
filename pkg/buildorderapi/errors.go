package buildorderapi

import (
	"strconv"
	"strings"

	"github.com/serum-errors/go-serum"
)

const (
	EcodeCycle               = "buildorder-error-cycle"
	EcodeDepthExceeded       = "buildorder-error-depth-exceeded"
	EcodeCanceled            = "buildorder-error-canceled"
	EcodeDepstringUnparsable = "buildorder-error-depstring-unparsable"
	EcodeFxfileUnparsable    = "buildorder-error-fxfile-unparsable"
	EcodeFxfileInvalid       = "buildorder-error-fxfile-invalid"
	EcodeConfigInvalid       = "buildorder-error-config-invalid"
	EcodeGraphExport         = "buildorder-error-graph-export"
)

// ErrorCycle is an error constructor.
// The path is the active dependency chain that led back to node,
// starting and ending with node itself.
//
// Errors:
//
//   - buildorder-error-cycle -- always this.
func ErrorCycle(node string, path []string) error {
	return serum.Error(EcodeCycle,
		serum.WithMessageTemplate("Circular dependency detected involving '{{node}}'"),
		serum.WithDetail("node", node),
		serum.WithDetail("path", strings.Join(path, " -> ")),
	)
}

// ErrorDepthExceeded is an error constructor.
//
// Errors:
//
//   - buildorder-error-depth-exceeded -- always this.
func ErrorDepthExceeded(node string, limit int) error {
	return serum.Error(EcodeDepthExceeded,
		serum.WithMessageTemplate("dependency chain deeper than {{limit}} at {{node|q}}"),
		serum.WithDetail("node", node),
		serum.WithDetail("limit", strconv.Itoa(limit)),
	)
}

// ErrorCanceled is an error constructor.
//
// Errors:
//
//   - buildorder-error-canceled -- always this.
func ErrorCanceled(cause error) error {
	return serum.Error(EcodeCanceled,
		serum.WithMessageTemplate("resolution canceled"),
		serum.WithCause(cause),
	)
}

// ErrorDepstringUnparsable is an error constructor.
//
// Errors:
//
//   - buildorder-error-depstring-unparsable -- always this.
func ErrorDepstringUnparsable(entry string, reason string) error {
	return serum.Error(EcodeDepstringUnparsable,
		serum.WithMessageTemplate("Invalid format in entry {{entry|q}}: {{reason}}"),
		serum.WithDetail("entry", entry),
		serum.WithDetail("reason", reason),
	)
}

// ErrorFxfileParse is an error constructor.
//
// Errors:
//
//   - buildorder-error-fxfile-unparsable -- always this.
func ErrorFxfileParse(cause error, filename string) error {
	return serum.Error(EcodeFxfileUnparsable,
		serum.WithMessageTemplate("fx file {{filename|q}} could not be parsed"),
		serum.WithCause(cause),
		serum.WithDetail("filename", filename),
	)
}

// ErrorConfigInvalid is an error constructor.
// Cause may be nil when the problem is a bad value rather than a decode failure.
//
// Errors:
//
//   - buildorder-error-config-invalid -- always this.
func ErrorConfigInvalid(cause error, path string, reason string) error {
	tmpl := "config {{path|q}}: {{reason}}"
	if path == "" {
		tmpl = "config: {{reason}}"
	}
	opts := options(
		serum.WithMessageTemplate(tmpl),
		serum.WithDetail("path", path),
		serum.WithDetail("reason", reason),
	)
	if cause != nil {
		opts = append(opts, serum.WithCause(cause))
	}
	return serum.Error(EcodeConfigInvalid, opts...)
}

// options gathers serum constructor options into a slice that can be appended to.
func options[T any](opts ...T) []T {
	return opts
}

// DetailOf returns the value of the named detail entry on a serum error,
// or the empty string if the error doesn't carry it.
func DetailOf(err error, key string) string {
	for _, kv := range serum.Details(err) {
		if kv[0] == key {
			return kv[1]
		}
	}
	return ""
}
