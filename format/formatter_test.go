package format

import (
	"testing"

	"github.com/kqlbridge/kqlbridge/ast"
)

func TestFormatDefaultsToSelectStar(t *testing.T) {
	got := String(&ast.OutputSelect{From: "Table"})
	if got != "SELECT * FROM Table" {
		t.Errorf("got %q, want %q", got, "SELECT * FROM Table")
	}
}

func TestFormatOmitsEmptyClauses(t *testing.T) {
	out := &ast.OutputSelect{Select: "x, y", From: "Table"}
	got := String(out)
	want := "SELECT x, y FROM Table"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatFixedClauseOrder(t *testing.T) {
	// Populate every slot and assert the clauses always come out in
	// SELECT/FROM/WHERE/GROUP BY/ORDER BY/LIMIT order, regardless of
	// which order the fields were set in.
	out := &ast.OutputSelect{}
	out.SetLimit("10")
	out.SetOrderBy("a DESC")
	out.SetGroupBy("b")
	out.SetWhere("a = 1")
	out.SetFrom("Table")
	out.SetSelect("a, b")

	got := String(out)
	want := "SELECT a, b FROM Table WHERE a = 1 GROUP BY b ORDER BY a DESC LIMIT 10"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatterStringMatchesPackageLevelString(t *testing.T) {
	out := &ast.OutputSelect{Select: "x"}
	f := New()
	f.Format(out)
	if f.String() != String(out) {
		t.Errorf("Formatter.String() diverged from the package-level String helper")
	}
}
