package subparser

import (
	"testing"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
)

type stubParser struct{ prepared bool }

func (s *stubParser) TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error) { return cur, nil }
func (s *stubParser) Prepare(cur cursor.Cursor)                            { s.prepared = true }
func (s *stubParser) Parse(counter *alias.Counter, out *ast.OutputSelect) error {
	out.SetSelect("stub")
	return nil
}

func TestRegisterAndNew(t *testing.T) {
	Register("__stub_for_test__", func() Parser { return &stubParser{} })

	if !Known("__stub_for_test__") {
		t.Fatalf("expected __stub_for_test__ to be known after Register")
	}
	p, ok := New("__stub_for_test__")
	if !ok {
		t.Fatalf("expected New to succeed for a registered name")
	}
	out := &ast.OutputSelect{}
	if err := p.Parse(alias.NewCounter(), out); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out.Select != "stub" {
		t.Errorf("Select = %q, want %q", out.Select, "stub")
	}
}

func TestNewEachCallReturnsAFreshInstance(t *testing.T) {
	Register("__stub_fresh__", func() Parser { return &stubParser{} })
	a, _ := New("__stub_fresh__")
	b, _ := New("__stub_fresh__")
	if a == b {
		t.Fatalf("expected New to return distinct instances per call")
	}
}

func TestKnownFalseForUnregisteredName(t *testing.T) {
	if Known("__definitely_not_registered__") {
		t.Errorf("expected Known to report false for an unregistered name")
	}
}

func TestNewFalseForUnregisteredName(t *testing.T) {
	if _, ok := New("__definitely_not_registered__"); ok {
		t.Errorf("expected New to report ok=false for an unregistered name")
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	Register("__stub_dup__", func() Parser { return &stubParser{} })
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Register to panic on a duplicate name")
		}
	}()
	Register("__stub_dup__", func() Parser { return &stubParser{} })
}
