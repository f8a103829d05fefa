// Package stages implements component H: concrete, deliberately minimal
// sub-parsers for each dispatch-table operator, built against the
// subparser.Parser contract (component F) so package pipeline can drive
// them without any operator-specific knowledge. Grounded on the teacher's
// per-clause recursive-descent style (formerly parser/select.go, one
// function per clause reading until the next clause keyword or `|`).
package stages

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/errs"
	"github.com/kqlbridge/kqlbridge/function"
	"github.com/kqlbridge/kqlbridge/operator"
	"github.com/kqlbridge/kqlbridge/token"
)

var fold = cases.Fold()

// exprOpts controls where renderExpr stops folding operators into the
// left operand — the same renderExpr is reused for a bare boolean
// condition (filter), one item of a comma list (project/sort/summarize),
// and a parenthesised sub-expression.
type exprOpts struct {
	stopAtComma      bool
	stopAtParenClose bool
	wordStops        []string
}

func matchesStopWord(text string, words []string) bool {
	for _, w := range words {
		if fold.String(text) == fold.String(w) {
			return true
		}
	}
	return false
}

// renderExpr folds a left-associative chain of KQL binary operators
// (spec.md §4.B) into SQL text, stopping at whichever of EOF/`|`/`;`/a
// bare `=` (the project rename marker)/a configured stop condition it
// meets first. It does not implement operator precedence beyond strict
// left-to-right association — sufficient for the stage grammars this
// package targets (spec.md §4.H: "do not chase full KQL coverage").
func renderExpr(cur cursor.Cursor, counter *alias.Counter, opts exprOpts) (string, cursor.Cursor, error) {
	lhs, cur, err := renderOperand(cur, counter)
	if err != nil {
		return "", cur, err
	}
	for {
		tok := cur.Peek()
		switch {
		case tok.Kind == token.EndOfStream || tok.Kind == token.Pipe || tok.Kind == token.Semicolon:
			return lhs, cur, nil
		case opts.stopAtComma && tok.Kind == token.Comma:
			return lhs, cur, nil
		case opts.stopAtParenClose && tok.Kind == token.ParenClose:
			return lhs, cur, nil
		case tok.Kind == token.Eq:
			return lhs, cur, nil
		case tok.Kind == token.BareWord && matchesStopWord(tok.Text, opts.wordStops):
			return lhs, cur, nil
		}
		entry, next, ok := operator.TryConsume(cur)
		if !ok {
			return lhs, cur, nil
		}
		rhs, next2, err := renderOperand(next, counter)
		if err != nil {
			return "", cur, err
		}
		lhs = entry.Render(lhs, rhs)
		cur = next2
	}
}

// renderOperand parses one primary: a number, a string literal, a
// parenthesised sub-expression, or a bare word — the last either a plain
// identifier or, when followed by `(`, a function call. A call whose name
// the function registry knows is expanded via component C/D; any other
// name is passed through verbatim (spec.md §4.H: `sum`, `count`, `avg`,
// `min`, `max` and the like are already valid ClickHouse spellings, so no
// template is needed for them).
func renderOperand(cur cursor.Cursor, counter *alias.Counter) (string, cursor.Cursor, error) {
	tok := cur.Peek()
	switch tok.Kind {
	case token.Minus:
		next := cur.Advance()
		num := next.Peek()
		if num.Kind != token.Number {
			return "", cur, errs.New(errs.MalformedArguments, cur.Offset(), "expected a number after '-'")
		}
		return "-" + num.Text, next.Advance(), nil
	case token.Number, token.StringLit:
		return tok.Text, cur.Advance(), nil
	case token.ParenOpen:
		inner, next, err := renderExpr(cur.Advance(), counter, exprOpts{stopAtParenClose: true})
		if err != nil {
			return "", cur, err
		}
		if next.Peek().Kind != token.ParenClose {
			return "", next, errs.New(errs.MalformedArguments, next.Offset(), "expected ')'")
		}
		return "(" + inner + ")", next.Advance(), nil
	case token.BareWord:
		name := tok.Text
		after := cur.Advance()
		if after.Peek().Kind == token.ParenOpen {
			if _, ok := function.Lookup(name); ok {
				return function.Dispatch(name, after, counter)
			}
			return passThroughCall(name, after)
		}
		return name, after, nil
	}
	return "", cur, errs.New(errs.MalformedArguments, cur.Offset(), "unexpected token %s", tok.Kind)
}

// passThroughCall renders a call to a name the function registry does not
// know (an aggregate like sum/count/avg, or anything else already valid
// ClickHouse syntax) by re-joining its argument texts unchanged.
func passThroughCall(name string, cur cursor.Cursor) (string, cursor.Cursor, error) {
	args, next, err := function.ParseArgs(cur)
	if err != nil {
		return "", cur, err
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")), next, nil
}

// scanItem reads one comma-list element, honouring the rename form
// `alias = expr` => `expr AS alias` (spec.md §4.F).
func scanItem(cur cursor.Cursor, counter *alias.Counter, wordStops []string) (string, cursor.Cursor, error) {
	lhs, next, err := renderExpr(cur, counter, exprOpts{stopAtComma: true, wordStops: wordStops})
	if err != nil {
		return "", cur, err
	}
	if next.Peek().Kind == token.Eq {
		aliasName := lhs
		expr, next2, err := renderExpr(next.Advance(), counter, exprOpts{stopAtComma: true, wordStops: wordStops})
		if err != nil {
			return "", cur, err
		}
		return fmt.Sprintf("%s AS %s", expr, aliasName), next2, nil
	}
	return lhs, next, nil
}

// scanList reads a full comma-separated list via scanItem.
func scanList(cur cursor.Cursor, counter *alias.Counter, wordStops []string) ([]string, cursor.Cursor, error) {
	var items []string
	for {
		item, next, err := scanItem(cur, counter, wordStops)
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
