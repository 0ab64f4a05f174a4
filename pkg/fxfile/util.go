package fxfile

import (
	"fmt"

	"go.starlark.net/syntax"
)

// Reduce the expression to an Ident.  This is valid to use on expressions in syntax.DefStmt.Params.
// Returns false for the star forms (`*args`, `**kwargs`, and a bare `*`), which have no plain name.
func extractIdent(expr syntax.Expr) (*syntax.Ident, bool) {
	switch lhs := expr.(type) {
	case *syntax.Ident:
		return lhs, true
	case *syntax.BinaryExpr:
		return extractIdent(lhs.X)
	default:
		return nil, false
	}
}

func stmtStartPosStr(stmt syntax.Stmt) string {
	start, _ := stmt.Span()
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}
