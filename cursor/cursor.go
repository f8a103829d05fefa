// Package cursor implements the forward-only token cursor (component A):
// a cheap-to-copy index into an immutable token vector with one token of
// lookahead and one token of step-back, used throughout the dispatcher and
// sub-parsers. Grounded on the teacher lexer's Peek/Next pairing
// (lexer/lexer.go), generalised from "peek the next scan" to "index into a
// materialised slice" per spec.md §4.A.
package cursor

import "github.com/kqlbridge/kqlbridge/token"

// Cursor is an index into an immutable []token.Token. Cursors are value
// types: copying one (including via a struct field assignment) yields an
// independent position over the same underlying slice, which is what lets
// the dispatcher stash a Cursor per StageRecord and replay it later.
type Cursor struct {
	tokens []token.Token
	source string
	pos    int
}

// New returns a Cursor positioned at the start of tokens. source is the
// raw query text the tokens were scanned from; it lets callers recover an
// exact verbatim slice of source (via Slice) instead of reconstructing it
// by rejoining token text, which would have to guess at whitespace the
// tokeniser already discarded.
func New(tokens []token.Token, source string) Cursor {
	return Cursor{tokens: tokens, source: source}
}

// Slice returns the verbatim source text spanning byte offsets [begin, end).
func (c Cursor) Slice(begin, end int) string {
	if begin < 0 {
		begin = 0
	}
	if end > len(c.source) {
		end = len(c.source)
	}
	if begin >= end {
		return ""
	}
	return c.source[begin:end]
}

// Valid reports whether the cursor is positioned at a real token (as
// opposed to having stepped back past the start).
func (c Cursor) Valid() bool {
	return c.pos >= 0 && c.pos < len(c.tokens)
}

// Peek returns the token at the current position without advancing. Past
// the end of the stream it returns a synthetic EndOfStream token.
func (c Cursor) Peek() token.Token {
	if c.pos < 0 {
		c.pos = 0
	}
	if c.pos >= len(c.tokens) {
		return token.Token{Kind: token.EndOfStream}
	}
	return c.tokens[c.pos]
}

// PeekAt returns the token offset tokens ahead of the current position
// without advancing, used for the two-token `make - series` lookahead
// (spec.md §4.E).
func (c Cursor) PeekAt(offset int) token.Token {
	i := c.pos + offset
	if i < 0 || i >= len(c.tokens) {
		return token.Token{Kind: token.EndOfStream}
	}
	return c.tokens[i]
}

// Advance returns a new Cursor moved one token forward.
func (c Cursor) Advance() Cursor {
	c.pos++
	return c
}

// StepBack returns a new Cursor moved one token backward. Used when
// recognising the two-token keyword "make-series" requires lookahead past
// "-" and "series" before the dispatcher commits to having consumed them
// (spec.md §4.A).
func (c Cursor) StepBack() Cursor {
	c.pos--
	return c
}

// Clone returns an independent copy of the cursor. Cursor is already a
// value type, so Clone is Go's zero-cost identity copy spelled out for
// call sites that want to make the intent explicit (spec.md §4.A: "cheap
// to copy... multiple cursors over the same stream coexist without
// aliasing the stream").
func (c Cursor) Clone() Cursor { return c }

// Pos returns the current token index, primarily for diagnostics (byte
// offset is available via Peek().Begin once the cursor is valid).
func (c Cursor) Pos() int { return c.pos }

// Offset returns the byte offset of the token at the current position, or
// the end-of-stream offset (the last token's End) once exhausted. Used to
// stamp errs.Diagnostic.Offset.
func (c Cursor) Offset() int {
	if c.Valid() {
		return c.tokens[c.pos].Begin
	}
	if len(c.tokens) > 0 {
		return c.tokens[len(c.tokens)-1].End
	}
	return 0
}
