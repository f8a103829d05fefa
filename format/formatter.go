// Package format implements component I: rendering an ast.OutputSelect
// into the final SQL string, in the fixed clause order of spec.md §8
// invariant 2. Grounded on the teacher's bytes.Buffer-backed writer with
// one format<Clause> method per slot, skipping any clause whose slot is
// empty rather than emitting an empty keyword.
package format

import (
	"bytes"

	"github.com/kqlbridge/kqlbridge/ast"
)

// Formatter accumulates clause text into a single SQL statement.
type Formatter struct {
	buf bytes.Buffer
}

// New returns a ready-to-use Formatter.
func New() *Formatter {
	return &Formatter{}
}

// String renders out as a single SELECT statement.
func String(out *ast.OutputSelect) string {
	f := New()
	f.Format(out)
	return f.buf.String()
}

// Format writes out's clauses, in order, into the formatter's buffer.
func (f *Formatter) Format(out *ast.OutputSelect) {
	f.formatSelect(out.Select)
	f.formatFrom(out.From)
	f.formatWhere(out.Where)
	f.formatGroupBy(out.GroupBy)
	f.formatOrderBy(out.OrderBy)
	f.formatLimit(out.Limit)
}

func (f *Formatter) formatSelect(list string) {
	if list == "" {
		list = "*"
	}
	f.buf.WriteString("SELECT ")
	f.buf.WriteString(list)
}

func (f *Formatter) formatFrom(from string) {
	if from == "" {
		return
	}
	f.buf.WriteString(" FROM ")
	f.buf.WriteString(from)
}

func (f *Formatter) formatWhere(pred string) {
	if pred == "" {
		return
	}
	f.buf.WriteString(" WHERE ")
	f.buf.WriteString(pred)
}

func (f *Formatter) formatGroupBy(list string) {
	if list == "" {
		return
	}
	f.buf.WriteString(" GROUP BY ")
	f.buf.WriteString(list)
}

func (f *Formatter) formatOrderBy(list string) {
	if list == "" {
		return
	}
	f.buf.WriteString(" ORDER BY ")
	f.buf.WriteString(list)
}

func (f *Formatter) formatLimit(n string) {
	if n == "" {
		return
	}
	f.buf.WriteString(" LIMIT ")
	f.buf.WriteString(n)
}

func (f *Formatter) String() string { return f.buf.String() }
