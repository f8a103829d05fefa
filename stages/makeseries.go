package stages

import (
	"fmt"
	"strings"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/errs"
	"github.com/kqlbridge/kqlbridge/subparser"
	"github.com/kqlbridge/kqlbridge/token"
)

func init() {
	subparser.Register("make-series", func() subparser.Parser { return &makeSeriesParser{} })
}

var onWord = []string{"on"}

// makeSeriesParser implements `make-series`: `expr [, expr...] on step by
// expr [, expr...]`. Overrides TABLES (wrapping the prior stages' output
// as a series-generating derived table) and GROUP BY (spec.md §4.E, §4.H).
type makeSeriesParser struct {
	cur cursor.Cursor
}

func scanMakeSeries(cur cursor.Cursor, counter *alias.Counter) (series []string, step string, groups []string, next cursor.Cursor, err error) {
	series, cur, err = scanList(cur, counter, onWord)
	if err != nil {
		return nil, "", nil, cur, err
	}
	if !(cur.Peek().Kind == token.BareWord && fold.String(cur.Peek().Text) == "on") {
		return nil, "", nil, cur, errs.New(errs.MalformedArguments, cur.Offset(), "expected 'on' in make-series")
	}
	cur = cur.Advance()
	step, cur, err = renderExpr(cur, counter, exprOpts{wordStops: byWord})
	if err != nil {
		return nil, "", nil, cur, err
	}
	if !(cur.Peek().Kind == token.BareWord && fold.String(cur.Peek().Text) == "by") {
		return nil, "", nil, cur, errs.New(errs.MalformedArguments, cur.Offset(), "expected 'by' in make-series")
	}
	groups, cur, err = scanList(cur.Advance(), counter, nil)
	if err != nil {
		return nil, "", nil, cur, err
	}
	return series, step, groups, cur, nil
}

func (p *makeSeriesParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	_, _, _, next, err := scanMakeSeries(cur, alias.NewCounter())
	return next, err
}

func (p *makeSeriesParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *makeSeriesParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	series, step, groups, _, err := scanMakeSeries(p.cur, counter)
	if err != nil {
		return err
	}
	out.SetSelect(strings.Join(series, ", "))
	out.SetGroupBy(strings.Join(groups, ", "))
	if out.From != "" {
		out.SetFrom(fmt.Sprintf("(SELECT * FROM %s WHERE %s IS NOT NULL) AS series_source", out.From, step))
	}
	return nil
}
