// Package operator implements the KQL operator library (component B):
// recognising a KQL infix operator at the cursor and rewriting it into a
// ClickHouse SQL binary-expression template. Grounded on the teacher's
// binary-operator precedence table (parser/expression.go's `precedence`
// switch over token.Token): here the "table" is keyed by operator spelling
// rather than by a single token kind, since KQL operators range from
// single symbols (`==`) to multi-token words (`!contains`).
//
// Rewrites are purely textual: a Template with `%s` placeholders for the
// already-parsed left and right operands. The library never parses an
// operand itself and never consults the function package, matching
// spec.md §4.B ("rewrites are purely textual fragments; they do not
// consult the function factory"). Operand parsing is the caller's job
// (the stage parsers in package `stages`), which is why TryConsume only
// recognises and steps the cursor past the operator tokens themselves.
package operator

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/token"
)

var fold = cases.Fold()

// Template renders a binary expression given the already-rendered left and
// right operand SQL text.
type Template func(lhs, rhs string) string

// Entry is one recognised KQL operator spelling.
type Entry struct {
	// Words are the operator's constituent tokens in lowercase-folded
	// form. A word of "" matches any single BareWord/keyword token only
	// by its Kind (used for symbolic tokens like "==").
	words  []string
	kinds  []token.Kind
	Render Template
}

func sym(text string, kind token.Kind, render Template) Entry {
	return Entry{words: []string{text}, kinds: []token.Kind{kind}, Render: render}
}

func word(render Template, words ...string) Entry {
	kinds := make([]token.Kind, len(words))
	for i := range kinds {
		kinds[i] = token.BareWord
	}
	return Entry{words: words, kinds: kinds, Render: render}
}

func like(pattern string, caseFold bool) Template {
	return func(lhs, rhs string) string {
		l, r := lhs, rhs
		if caseFold {
			l = "lower(" + l + ")"
			r = "lower(" + r + ")"
		}
		return fmt.Sprintf(pattern, l, r)
	}
}

// table is ordered longest-word-count first so matching ties break toward
// the longest spelling (spec.md §4.B "tie-breaks by longest-prefix
// match"); entries of equal length keep the order they were declared in.
var table = []Entry{
	// Two-word (negated) word operators must be tried before their
	// one-word counterparts.
	word(like("NOT (position(%s, %s) > 0)", true), "!", "contains"),
	word(like("NOT (position(%s, %s) > 0)", false), "!", "contains_cs"),
	word(like("NOT hasTokenCaseInsensitive(%s, %s)", false), "!", "has"),
	word(like("NOT hasToken(%s, %s)", false), "!", "has_cs"),
	word(like("NOT startsWith(lower(%s), lower(%s))", true), "!", "startswith"),
	word(like("NOT startsWith(%s, %s)", false), "!", "startswith_cs"),
	word(like("NOT endsWith(lower(%s), lower(%s))", true), "!", "endswith"),
	word(like("NOT endsWith(%s, %s)", false), "!", "endswith_cs"),
	word(func(lhs, rhs string) string { return fmt.Sprintf("NOT (%s IN %s)", lhs, rhs) }, "!", "in"),

	word(like("position(%s, %s) > 0", true), "contains"),
	word(like("position(%s, %s) > 0", false), "contains_cs"),
	word(like("hasTokenCaseInsensitive(%s, %s)", false), "has"),
	word(like("hasToken(%s, %s)", false), "has_cs"),
	word(like("startsWith(lower(%s), lower(%s))", true), "startswith"),
	word(like("startsWith(%s, %s)", false), "startswith_cs"),
	word(like("endsWith(lower(%s), lower(%s))", true), "endswith"),
	word(like("endsWith(%s, %s)", false), "endswith_cs"),
	word(func(lhs, rhs string) string { return fmt.Sprintf("%s IN %s", lhs, rhs) }, "in"),
	word(func(lhs, rhs string) string { return fmt.Sprintf("%s AND %s", lhs, rhs) }, "and"),
	word(func(lhs, rhs string) string { return fmt.Sprintf("%s OR %s", lhs, rhs) }, "or"),

	sym("==", token.EqEq, func(lhs, rhs string) string { return fmt.Sprintf("%s = %s", lhs, rhs) }),
	sym("!=", token.NotEq, func(lhs, rhs string) string { return fmt.Sprintf("%s != %s", lhs, rhs) }),
	sym("=~", token.EqTilde, like("lower(%s) = lower(%s)", true)),
	sym("!~", token.NotTilde, like("lower(%s) != lower(%s)", true)),
}

func init() {
	// Sort by descending word count so two-token spellings are matched
	// before their one-token suffix (the spec.md §4.B tie-break).
	for i := 1; i < len(table); i++ {
		for j := i; j > 0 && len(table[j].words) > len(table[j-1].words); j-- {
			table[j], table[j-1] = table[j-1], table[j]
		}
	}
}

// TryConsume attempts to recognise a KQL operator at cur. On success it
// returns the matched Entry and a cursor advanced past the operator's
// tokens; ok is false (and the cursor unchanged) if nothing matched.
func TryConsume(cur cursor.Cursor) (Entry, cursor.Cursor, bool) {
	for _, e := range table {
		if n, ok := matchWords(cur, e.words, e.kinds); ok {
			next := cur
			for i := 0; i < n; i++ {
				next = next.Advance()
			}
			return e, next, true
		}
	}
	return Entry{}, cur, false
}

func matchWords(cur cursor.Cursor, words []string, kinds []token.Kind) (int, bool) {
	for i, w := range words {
		tok := cur.PeekAt(i)
		if kinds[i] != token.BareWord {
			if tok.Kind != kinds[i] {
				return 0, false
			}
			continue
		}
		if tok.Kind != token.BareWord && tok.Kind != token.Bang {
			return 0, false
		}
		text := tok.Text
		if w == "!" {
			if tok.Kind != token.Bang {
				return 0, false
			}
			continue
		}
		if fold.String(text) != fold.String(w) {
			return 0, false
		}
	}
	return len(words), true
}
