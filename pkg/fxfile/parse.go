package fxfile

import (
	"github.com/serum-errors/go-serum"
	"go.starlark.net/syntax"

	"github.com/warptools/buildorder/pkg/buildorderapi"
	"github.com/warptools/buildorder/pkg/depgraph"
)

// File stores a parsed starlark syntax AST plus the targets found in it.
type File struct {
	ast *syntax.File

	// cached for your convenience, as we validated things.
	targets       []*Target
	targetsByName map[string]*Target
}

// Targets returns targets in the order they're defined in the file.
func (x *File) Targets() []*Target {
	return x.targets
}

func (x *File) Target(name string) (*Target, bool) {
	t, ok := x.targetsByName[name]
	return t, ok
}

// Model converts the file's targets into a dependency graph.
// Names in depends_on that aren't targets in this file become implicit leaves.
func (x *File) Model() *depgraph.Model {
	m := depgraph.New()
	for _, t := range x.targets {
		deps := make([]depgraph.Name, len(t.dependsOn))
		for i, d := range t.dependsOn {
			deps[i] = depgraph.Name(d)
		}
		m.Declare(depgraph.Name(t.name), deps...)
	}
	return m
}

// Parse parses an "fx file", which is expected to contain starlark code matching certain conventions.
// The filename argument is advisory; the body argument is data that has already been loaded.
//
// Aside from parsing the file as starlark syntax (and returning any immediate errors from that),
// it also looks for the "fx" conventions that denote functions that are "targets",
// and builds a map of those.
//
// Nothing is evaluated.  References in the code aren't resolved, and target bodies are never run;
// all we want out of the file is who depends on whom.
//
// Errors:
//
//   - buildorder-error-fxfile-unparsable -- if the body isn't valid starlark syntax.
//   - buildorder-error-fxfile-invalid -- if a depends_on clause isn't made of string literals,
//     or if a target is defined twice.
func Parse(filename string, body string) (*File, error) {
	syntaxObj, err := syntax.Parse(filename, body, syntax.RetainComments)
	if err != nil {
		return nil, buildorderapi.ErrorFxfileParse(err, filename)
	}
	res := &File{ast: syntaxObj}
	res.targets, err = findTargets(res.ast)
	if err != nil {
		return nil, err
	}
	res.targetsByName = make(map[string]*Target, len(res.targets))
	for _, t := range res.targets {
		if prev, exists := res.targetsByName[t.name]; exists {
			return nil, errDuplicateTarget(t.name, prev.Pos(), t.Pos())
		}
		res.targetsByName[t.name] = t
	}
	return res, nil
}

type Target struct {
	name      string
	dependsOn []string // dependencies are by string name.

	stmt *syntax.DefStmt
}

func (t *Target) Name() string {
	return t.name
}
func (t *Target) DependsOn() []string {
	return t.dependsOn
}

// Pos is the "line:col" where the target's def statement starts.
func (t *Target) Pos() string {
	return stmtStartPosStr(t.stmt)
}

func findTargets(ast *syntax.File) (res []*Target, err error) {
	// Targets can only be top-level defs.
	// So, a simple non-recursive range suffices.
	// Thereafter, they must have a certain known signature --
	// they must have a first argument that is named exactly "fx".
	// Any defs not matching the pattern are simply regular functions.
	for _, stmt := range ast.Stmts {
		stmt2, ok := stmt.(*syntax.DefStmt)
		if !ok {
			continue
		}
		if len(stmt2.Params) < 1 {
			continue
		}
		if ident, ok := extractIdent(stmt2.Params[0]); !ok || ident.Name != "fx" {
			continue
		}
		tgt := &Target{
			name: stmt2.Name.Name,
			stmt: stmt2,
		}
		// Known arguments after "fx" are data holders; their default values are read as literals.
		// Unrecognized arguments are ignored, for future-proofness.
		for _, param := range stmt2.Params[1:] {
			ident, ok := extractIdent(param)
			if !ok || ident.Name != "depends_on" {
				continue
			}
			expr2, ok := param.(*syntax.BinaryExpr)
			if !ok {
				continue
			}
			switch v := expr2.Y.(type) {
			case *syntax.ListExpr:
				for _, item := range v.List {
					lit, ok := item.(*syntax.Literal)
					if !ok || lit.Token != syntax.STRING {
						return nil, errDependsOnValueRestriction(tgt)
					}
					tgt.dependsOn = append(tgt.dependsOn, lit.Value.(string))
				}
			case *syntax.Literal:
				if v.Token != syntax.STRING {
					return nil, errDependsOnValueRestriction(tgt)
				}
				tgt.dependsOn = []string{v.Value.(string)}
			default:
				return nil, errDependsOnValueRestriction(tgt)
			}
		}
		res = append(res, tgt)
	}
	return
}

func errDependsOnValueRestriction(tgt *Target) error {
	return serum.Error(buildorderapi.EcodeFxfileInvalid,
		serum.WithMessageTemplate("depends_on clause in target {{target|q}} (at {{pos}}) may only use lists of string literals, or a single string literal"),
		serum.WithDetail("target", tgt.name),
		serum.WithDetail("pos", tgt.Pos()),
	)
}

func errDuplicateTarget(name string, firstPos, secondPos string) error {
	return serum.Error(buildorderapi.EcodeFxfileInvalid,
		serum.WithMessageTemplate("target {{target|q}} is defined twice (at {{first}} and {{second}})"),
		serum.WithDetail("target", name),
		serum.WithDetail("first", firstPos),
		serum.WithDetail("second", secondPos),
	)
}
