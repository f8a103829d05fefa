// Package subparser defines the sub-parser contract (component F): the
// triad a pipeline stage must expose so the dispatcher (package pipeline)
// can drive it without knowing anything about the stage's own grammar.
// Grounded on the teacher's per-clause parser functions (parser/select.go),
// generalised from "a function per clause" to "an interface per clause"
// so the dispatcher can hold a slice of heterogeneous stage instances.
package subparser

import (
	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
)

// Parser is the three-entry-point contract of spec.md §4.F. A fresh
// instance is created per stage occurrence (via Registry.New), so Prepare
// may freely stash the cursor it's given on the instance for Parse to use
// later — there is no cross-stage or cross-parse sharing.
type Parser interface {
	// TokenSkipper advances cur past this stage's arguments, far enough
	// for the dispatcher to resume scanning at the next `|` or `;`. It
	// must tolerate `=` (alias = expr) and comma-separated lists, per
	// spec.md §4.F.
	TokenSkipper(cur cursor.Cursor) (cursor.Cursor, error)
	// Prepare remembers cur for the later call to Parse. Side-effect-free
	// other than that (spec.md §4.F).
	Prepare(cur cursor.Cursor)
	// Parse emits this stage's SQL fragment(s) into out, using counter for
	// any fresh aliases it or a nested function-template expansion needs.
	Parse(counter *alias.Counter, out *ast.OutputSelect) error
}

// Factory returns a fresh, zero-state Parser instance for one stage
// occurrence.
type Factory func() Parser

// registry maps a canonical (post-synonym-folding) operator name to its
// stage parser factory. Populated once by package stages' init and never
// mutated afterward — safe to read concurrently, same discipline as the
// function package's registry (spec.md §5).
var registry = map[string]Factory{}

// Register adds a factory to the registry. Intended to be called from
// package-level init() only.
func Register(name string, f Factory) {
	if _, exists := registry[name]; exists {
		panic("subparser: duplicate factory registered for " + name)
	}
	registry[name] = f
}

// New returns a fresh Parser for name, and ok=false if name is not a
// dispatch-table key.
func New(name string) (Parser, bool) {
	f, ok := registry[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Known reports whether name has a registered factory, without allocating
// an instance — used by the dispatcher to validate an operator name
// before it records a StageRecord for it.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}
