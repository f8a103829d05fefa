package errs

import (
	"testing"

	"github.com/juju/errors"
)

func TestNewCarriesKindAndOffset(t *testing.T) {
	d := New(UnknownFunction, 42, "unknown function %q", "foo")
	if d.Kind != UnknownFunction {
		t.Errorf("Kind = %v, want UnknownFunction", d.Kind)
	}
	if d.Offset != 42 {
		t.Errorf("Offset = %d, want 42", d.Offset)
	}
	if d.Error() == "" {
		t.Errorf("Error() should not be empty")
	}
}

func TestKindOfThroughAnnotate(t *testing.T) {
	d := New(MalformedArguments, 7, "bad bound")
	wrapped := Annotate(d, "while parsing ipv4_compare")

	kind, ok := KindOf(wrapped)
	if !ok {
		t.Fatalf("KindOf should see through Annotate")
	}
	if kind != MalformedArguments {
		t.Errorf("Kind = %v, want MalformedArguments", kind)
	}
}

func TestKindOfOnPlainError(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Errorf("KindOf on a non-Diagnostic error should report ok=false")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{UnknownOperator, "UnknownOperator"},
		{UnknownFunction, "UnknownFunction"},
		{MalformedPipeline, "MalformedPipeline"},
		{MalformedArguments, "MalformedArguments"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
