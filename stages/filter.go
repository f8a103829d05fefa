package stages

import (
	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/subparser"
)

func init() {
	subparser.Register("filter", func() subparser.Parser { return &filterParser{} })
}

// filterParser implements `filter`/`where`: a single boolean expression
// rewritten into a WHERE predicate via the operator library (spec.md
// §4.B).
type filterParser struct {
	cur cursor.Cursor
}

func (p *filterParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	_, next, err := renderExpr(cur, alias.NewCounter(), exprOpts{})
	return next, err
}

func (p *filterParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *filterParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	expr, _, err := renderExpr(p.cur, counter, exprOpts{})
	if err != nil {
		return err
	}
	out.SetWhere(expr)
	return nil
}
