package stages

import (
	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/errs"
	"github.com/kqlbridge/kqlbridge/subparser"
	"github.com/kqlbridge/kqlbridge/token"
)

func init() {
	subparser.Register("limit", func() subparser.Parser { return &limitParser{} })
}

// limitParser implements `limit`/`take`: a single integer, emitted as
// LIMIT (spec.md §4.H).
type limitParser struct {
	cur cursor.Cursor
}

func (p *limitParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) {
	if cur.Peek().Kind == token.Number {
		cur = cur.Advance()
	}
	return cur, nil
}

func (p *limitParser) Prepare(cur cursor.Cursor) { p.cur = cur }

func (p *limitParser) Parse(_ *alias.Counter, out *ast.OutputSelect) error {
	tok := p.cur.Peek()
	if tok.Kind != token.Number {
		return errs.New(errs.MalformedArguments, p.cur.Offset(), "expected an integer after 'limit'/'take'")
	}
	out.SetLimit(tok.Text)
	return nil
}
