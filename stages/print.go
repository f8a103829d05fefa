package stages

import (
	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/subparser"
)

func init() {
	subparser.Register("print", func() subparser.Parser { return &printParser{} })
}

// printParser implements `print`: a single scalar expression returned
// directly as the SELECT list, with no FROM/WHERE/... slots (spec.md
// §4.E's `Start -> AtTable` `print` transition).
type printParser struct {
	cur cursor.Cursor
}

func (p *printParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	_, next, err := renderExpr(cur, alias.NewCounter(), exprOpts{})
	return next, err
}

func (p *printParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *printParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	expr, _, err := renderExpr(p.cur, counter, exprOpts{})
	if err != nil {
		return err
	}
	out.SetSelect(expr)
	return nil
}
