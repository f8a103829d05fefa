package lexer

import (
	"testing"

	"github.com/kqlbridge/kqlbridge/token"
)

func TestTokensBasic(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{
			input:    "Table | where x == 1 | project x, y | take 10",
			expected: []token.Kind{token.BareWord, token.Pipe, token.BareWord, token.BareWord, token.EqEq, token.Number, token.Pipe, token.BareWord, token.BareWord, token.Comma, token.BareWord, token.Pipe, token.BareWord, token.Number, token.EndOfStream},
		},
		{
			input:    `ip_is_private("10.0.0.1")`,
			expected: []token.Kind{token.BareWord, token.ParenOpen, token.StringLit, token.ParenClose, token.EndOfStream},
		},
		{
			input:    "a != b and !contains(a, b)",
			expected: []token.Kind{token.BareWord, token.NotEq, token.BareWord, token.BareWord, token.Bang, token.BareWord, token.ParenOpen, token.BareWord, token.Comma, token.BareWord, token.ParenClose, token.EndOfStream},
		},
	}

	for _, tt := range tests {
		toks := Tokens(tt.input)
		if len(toks) != len(tt.expected) {
			t.Fatalf("%q: got %d tokens, want %d: %v", tt.input, len(toks), len(tt.expected), toks)
		}
		for i, k := range tt.expected {
			if toks[i].Kind != k {
				t.Errorf("%q: token %d: got %s, want %s", tt.input, i, toks[i].Kind, k)
			}
		}
	}
}

func TestTokensCIDRSplit(t *testing.T) {
	toks := Tokens("192.168.1.0/24")
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EndOfStream {
		t.Fatalf("expected a trailing EndOfStream token, got %v", toks)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a, b")
	first := l.Peek()
	second := l.Peek()
	if first != second {
		t.Fatalf("Peek should be idempotent: %v != %v", first, second)
	}
	third := l.Next()
	if third != first {
		t.Fatalf("Next after Peek should return the peeked token: %v != %v", third, first)
	}
}

func TestGetPutRoundTrip(t *testing.T) {
	l := Get("a | b")
	toks := []token.Token{l.Next(), l.Next(), l.Next()}
	Put(l)
	if toks[0].Kind != token.BareWord || toks[1].Kind != token.Pipe || toks[2].Kind != token.BareWord {
		t.Fatalf("unexpected tokens from pooled lexer: %v", toks)
	}
}
