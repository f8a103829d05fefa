package function

import (
	"strings"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/errs"
	"github.com/kqlbridge/kqlbridge/token"
)

// Template is a pure function from (already-parsed arguments, shared
// AliasCounter) to a ClickHouse expression string (spec.md §4.D).
type Template func(ctx *Context) string

// registry maps a KQL function name to its expansion template. Populated
// once at process start by registerBuiltins (called from an init in each
// file that defines a family of templates) and never mutated afterward —
// safe for concurrent reads from any number of parses (spec.md §5).
var registry = map[string]Template{}

// Register adds a template to the registry. Intended to be called from
// package-level init() only; panics on a duplicate name since that would
// indicate two templates silently shadowing each other.
func Register(name string, tmpl Template) {
	if _, exists := registry[name]; exists {
		panic("function: duplicate template registered for " + name)
	}
	registry[name] = tmpl
}

// Lookup returns the template registered for name, if any.
func Lookup(name string) (Template, bool) {
	tmpl, ok := registry[name]
	return tmpl, ok
}

// Dispatch parses the comma-separated argument list at a cursor positioned
// at the function's opening parenthesis, then invokes the template
// registered for name (spec.md §4.C). It returns the expanded SQL
// expression and the cursor advanced past the closing parenthesis.
func Dispatch(name string, cur cursor.Cursor, counter *alias.Counter) (string, cursor.Cursor, error) {
	tmpl, ok := Lookup(name)
	if !ok {
		return "", cur, errs.New(errs.UnknownFunction, cur.Offset(), "unknown function %q", name)
	}
	args, next, err := ParseArgs(cur)
	if err != nil {
		return "", cur, err
	}
	ctx := &Context{Args: args, Counter: counter}
	return tmpl(ctx), next, nil
}

// ParseArgs parses a comma-separated argument list, honouring nested
// parentheses and string literals (spec.md §4.C), starting at a cursor
// positioned on the opening "(" and ending just past the matching ")".
// Each returned argument is the verbatim source text it spans, trimmed of
// surrounding whitespace — templates that need a parsed numeric value
// parse it themselves from this text.
func ParseArgs(cur cursor.Cursor) ([]string, cursor.Cursor, error) {
	if cur.Peek().Kind != token.ParenOpen {
		return nil, cur, errs.New(errs.MalformedArguments, cur.Offset(), "expected '(' to start argument list")
	}
	cur = cur.Advance()

	if cur.Peek().Kind == token.ParenClose {
		return nil, cur.Advance(), nil
	}

	var args []string
	depth := 0
	cur2 := cur
	start := cur2.Peek().Begin
	lastEnd := start
	for {
		tok := cur2.Peek()
		switch tok.Kind {
		case token.EndOfStream:
			return nil, cur, errs.New(errs.MalformedArguments, cur2.Offset(), "unterminated argument list")
		case token.ParenOpen, token.BracketOpen:
			depth++
		case token.ParenClose:
			if depth == 0 {
				args = append(args, strings.TrimSpace(cur.Slice(start, lastEnd)))
				return args, cur2.Advance(), nil
			}
			depth--
		case token.BracketClose:
			depth--
		case token.Comma:
			if depth == 0 {
				args = append(args, strings.TrimSpace(cur.Slice(start, lastEnd)))
				cur2 = cur2.Advance()
				start = cur2.Peek().Begin
				lastEnd = start
				continue
			}
		}
		lastEnd = tok.End
		cur2 = cur2.Advance()
	}
}
