package fixtures

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/warpfork/go-testmark"
	"github.com/warpfork/go-testmark/testexec"

	mainlib "github.com/warptools/buildorder/cmd/buildorder/lib"
)

func TestAll(t *testing.T) {
	matches, err := fs.Glob(os.DirFS("."), "*.md")
	if err != nil {
		panic(err)
	}
	sort.Strings(matches)
	for _, filename := range matches {
		testFile(t, filename)
	}
}

func testFile(t *testing.T, filename string) {
	t.Run(filename, func(t *testing.T) {
		doc, err := testmark.ReadFile(filename)
		if err != nil {
			t.Fatalf("fixture file parse failed?!: %s", err)
		}

		doc.BuildDirIndex()
		patches := testmark.PatchAccumulator{}
		tester := testexec.Tester{
			ExecFn: func(args []string, stdin io.Reader, stdout, stderr io.Writer) (exitcode int, oshit error) {
				return runMain(args, stdin, stdout, stderr), nil
			},
			ScriptFn: jsonlScript,
			Patches:  &patches,
			AssertFn: func(t *testing.T, actual, expect string) {
				qt.Assert(t, actual, qt.Equals, expect)
			},
		}
		for _, dir := range doc.DirEnt.ChildrenList {
			t.Run(dir.Name, func(t *testing.T) {
				tester.Test(t, dir)
			})
		}
		if *testmark.Regen {
			if err := patches.WriteFileWithPatches(doc, filename); err != nil {
				t.Fatalf("fixture regen failed: %s", err)
			}
		}
	})
}

// runMain fills in the streams the fixture didn't ask to see.
func runMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return mainlib.Main(args, stdin, stdout, stderr)
}

// jsonlScript runs a "script" hunk holding one JSON list of arguments per line.
// It's for arguments that contain whitespace, which a "sequence" hunk would split apart.
// No shell is involved.
func jsonlScript(script string, stdin io.Reader, stdout, stderr io.Writer) (exitcode int, oshit error) {
	sc := bufio.NewScanner(strings.NewReader(script))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var args []string
		if err := json.Unmarshal([]byte(line), &args); err != nil {
			return 0, fmt.Errorf("script line %q isn't a json list of strings: %w", line, err)
		}
		exitcode = runMain(args, stdin, stdout, stderr)
		if exitcode != 0 {
			break
		}
	}
	return exitcode, sc.Err()
}
