package operator

import (
	"testing"

	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/lexer"
)

func parse(t *testing.T, source string) cursor.Cursor {
	t.Helper()
	return cursor.New(lexer.Tokens(source), source)
}

func TestTryConsumeSymbolic(t *testing.T) {
	tests := []struct {
		input string
		lhs   string
		rhs   string
		want  string
	}{
		{"== 1", "x", "1", "x = 1"},
		{"!= 1", "x", "1", "x != 1"},
		{"=~ 'a'", "x", "'a'", "lower(x) = lower('a')"},
		{"!~ 'a'", "x", "'a'", "lower(x) != lower('a')"},
	}
	for _, tt := range tests {
		cur := parse(t, tt.input)
		entry, next, ok := TryConsume(cur)
		if !ok {
			t.Fatalf("%q: expected a match", tt.input)
		}
		if next.Pos() == cur.Pos() {
			t.Fatalf("%q: cursor did not advance", tt.input)
		}
		if got := entry.Render(tt.lhs, tt.rhs); got != tt.want {
			t.Errorf("%q: Render = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTryConsumeWordOperators(t *testing.T) {
	tests := []struct {
		input string
		lhs   string
		rhs   string
		want  string
	}{
		{"contains y", "x", "y", "position(lower(x), lower(y)) > 0"},
		{"Contains_Cs y", "x", "y", "position(x, y) > 0"},
		{"!contains y", "x", "y", "NOT (position(lower(x), lower(y)) > 0)"},
		{"has y", "x", "y", "hasTokenCaseInsensitive(x, y)"},
		{"!has y", "x", "y", "NOT hasTokenCaseInsensitive(x, y)"},
		{"startswith y", "x", "y", "startsWith(lower(x), lower(y))"},
		{"and y", "x", "y", "x AND y"},
		{"or y", "x", "y", "x OR y"},
	}
	for _, tt := range tests {
		cur := parse(t, tt.input)
		entry, _, ok := TryConsume(cur)
		if !ok {
			t.Fatalf("%q: expected a match", tt.input)
		}
		if got := entry.Render(tt.lhs, tt.rhs); got != tt.want {
			t.Errorf("%q: Render = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLongestSpellingWinsOverSuffix(t *testing.T) {
	// "!contains" must be matched whole, not as Bang followed by a
	// leftover "contains" the caller has to re-handle.
	cur := parse(t, "!contains y")
	entry, next, ok := TryConsume(cur)
	if !ok {
		t.Fatalf("expected !contains to match")
	}
	if next.Pos() != 2 {
		t.Fatalf("expected the cursor to advance past both tokens of '!contains', got pos %d", next.Pos())
	}
	if got := entry.Render("a", "b"); got != "NOT (position(lower(a), lower(b)) > 0)" {
		t.Errorf("unexpected render: %q", got)
	}
}

func TestTryConsumeNoMatch(t *testing.T) {
	cur := parse(t, "banana")
	if _, _, ok := TryConsume(cur); ok {
		t.Fatalf("expected no operator to match a bare identifier")
	}
}
