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
	subparser.Register("summarize", func() subparser.Parser { return &summarizeParser{} })
}

var byWord = []string{"by"}

// summarizeParser implements `summarize`: `expr [, expr...] [by expr
// [, expr...]]`. The aggregate list becomes the SELECT list, the `by`
// list becomes GROUP BY (spec.md §4.H).
type summarizeParser struct {
	cur cursor.Cursor
}

func scanSummarize(cur cursor.Cursor, counter *alias.Counter) (aggs, groups []string, next cursor.Cursor, err error) {
	aggs, cur, err = scanList(cur, counter, byWord)
	if err != nil {
		return nil, nil, cur, err
	}
	if cur.Peek().Kind == token.BareWord && fold.String(cur.Peek().Text) == "by" {
		groups, cur, err = scanList(cur.Advance(), counter, nil)
		if err != nil {
			return nil, nil, cur, err
		}
	}
	return aggs, groups, cur, nil
}

func (p *summarizeParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	_, _, next, err := scanSummarize(cur, alias.NewCounter())
	return next, err
}

func (p *summarizeParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *summarizeParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	aggs, groups, _, err := scanSummarize(p.cur, counter)
	if err != nil {
		return err
	}
	out.SetSelect(strings.Join(aggs, ", "))
	if len(groups) > 0 {
		out.SetGroupBy(strings.Join(groups, ", "))
	}
	return nil
}
