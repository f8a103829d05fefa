package stages

import (
	"strings"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/subparser"
)

func init() {
	subparser.Register("project", func() subparser.Parser { return &projectParser{} })
}

// projectParser implements `project`: a comma-separated list of `expr` or
// `alias = expr`, emitted as the SELECT list (spec.md §4.H).
type projectParser struct {
	cur cursor.Cursor
}

func (p *projectParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	_, next, err := scanList(cur, alias.NewCounter(), nil)
	return next, err
}

func (p *projectParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *projectParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	items, _, err := scanList(p.cur, counter, nil)
	if err != nil {
		return err
	}
	out.SetSelect(strings.Join(items, ", "))
	return nil
}
