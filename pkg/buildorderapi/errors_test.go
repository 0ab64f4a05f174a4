package buildorderapi

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/serum-errors/go-serum"
)

func TestErrorConfigInvalid(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := ErrorConfigInvalid(nil, "buildorder.toml", "bad value")
		qt.Assert(t, serum.Code(err), qt.Equals, EcodeConfigInvalid)
		qt.Assert(t, err.Error(), qt.Contains, `"buildorder.toml"`)
		qt.Assert(t, DetailOf(err, "reason"), qt.Equals, "bad value")
	})
	t.Run("without path", func(t *testing.T) {
		err := ErrorConfigInvalid(nil, "", "bad value")
		qt.Assert(t, err.Error(), qt.Contains, "config: bad value")
		qt.Assert(t, err.Error(), qt.Not(qt.Contains), `""`)
	})
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("disk on fire")
		err := ErrorConfigInvalid(cause, "buildorder.toml", "failed to read config file")
		qt.Assert(t, errors.Is(err, cause), qt.IsTrue)
		qt.Assert(t, DetailOf(err, "path"), qt.Equals, "buildorder.toml")
	})
}

func TestErrorCycle(t *testing.T) {
	err := ErrorCycle("A", []string{"A", "B", "A"})
	qt.Assert(t, serum.Code(err), qt.Equals, EcodeCycle)
	qt.Assert(t, DetailOf(err, "node"), qt.Equals, "A")
	qt.Assert(t, DetailOf(err, "path"), qt.Equals, "A -> B -> A")
	qt.Assert(t, DetailOf(err, "absent"), qt.Equals, "")
}
