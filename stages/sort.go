package stages

import (
	"strings"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/subparser"
	"github.com/kqlbridge/kqlbridge/token"
)

func init() {
	subparser.Register("sort", func() subparser.Parser { return &sortParser{} })
}

// sortParser implements `sort`/`order`: a comma-separated list of
// `expr [asc|desc]`, emitted as ORDER BY (spec.md §4.H).
type sortParser struct {
	cur cursor.Cursor
}

var sortDirWords = []string{"asc", "desc"}

func scanSortItem(cur cursor.Cursor, counter *alias.Counter) (string, cursor.Cursor, error) {
	expr, next, err := renderExpr(cur, counter, exprOpts{stopAtComma: true, wordStops: sortDirWords})
	if err != nil {
		return "", cur, err
	}
	if next.Peek().Kind == token.BareWord {
		switch fold.String(next.Peek().Text) {
		case "asc":
			return expr + " ASC", next.Advance(), nil
		case "desc":
			return expr + " DESC", next.Advance(), nil
		}
	}
	return expr, next, nil
}

func scanSortList(cur cursor.Cursor, counter *alias.Counter) ([]string, cursor.Cursor, error) {
	var items []string
	for {
		item, next, err := scanSortItem(cur, counter)
		if err != nil {
			return nil, cur, err
		}
		items = append(items, item)
		cur = next
		if cur.Peek().Kind != token.Comma {
			return items, cur, nil
		}
		cur = cur.Advance()
	}
}

func (p *sortParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	_, next, err := scanSortList(cur, alias.NewCounter())
	return next, err
}

func (p *sortParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *sortParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	items, _, err := scanSortList(p.cur, counter)
	if err != nil {
		return err
	}
	out.SetOrderBy(strings.Join(items, ", "))
	return nil
}
