// Package errs defines the four diagnostic kinds of spec.md §7 as a
// structured, position-carrying error, wrapped with github.com/juju/errors
// so callers get both a type-switchable Kind and an annotated, traceable
// message — the teacher's ParseError{Pos, Message} (parser/parser.go)
// extended with the kind tag spec.md §7 requires.
package errs

import (
	"fmt"

	"github.com/juju/errors"
)

// Kind is one of the four diagnostic kinds spec.md §7 names.
type Kind int

const (
	// UnknownOperator: a pipeline stage name is not in the dispatch table.
	UnknownOperator Kind = iota
	// UnknownFunction: a KQL function name has no template registered.
	UnknownFunction
	// MalformedPipeline: `|` appears at EOF, or a stage keyword is missing.
	MalformedPipeline
	// MalformedArguments: a sub-parser rejects its arguments.
	MalformedArguments
)

func (k Kind) String() string {
	switch k {
	case UnknownOperator:
		return "UnknownOperator"
	case UnknownFunction:
		return "UnknownFunction"
	case MalformedPipeline:
		return "MalformedPipeline"
	case MalformedArguments:
		return "MalformedArguments"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic is the structured error spec.md §6 calls for: an error kind
// plus the cursor byte offset where it was raised.
type Diagnostic struct {
	errors.Err
	Kind   Kind
	Offset int
}

// Error satisfies the error interface, delegating the message to the
// embedded juju/errors.Err so ErrorStack()/Cause() keep working on
// Diagnostic values the same as on any juju/errors error.
func (d *Diagnostic) Error() string {
	return d.Err.Error()
}

// New builds a Diagnostic of the given kind at the given byte offset,
// with a human-readable message.
func New(kind Kind, offset int, format string, args ...interface{}) *Diagnostic {
	d := &Diagnostic{
		Err:    errors.NewErr(format, args...),
		Kind:   kind,
		Offset: offset,
	}
	d.SetLocation(1)
	return d
}

// Annotate wraps an existing error with additional context while
// preserving its Kind/Offset if it already is (or wraps) a Diagnostic.
func Annotate(err error, message string) error {
	return errors.Annotate(err, message)
}

// KindOf reports the Kind of err if it is (or wraps, via juju/errors'
// Cause chain) a *Diagnostic, and ok=false otherwise.
func KindOf(err error) (kind Kind, ok bool) {
	cause := errors.Cause(err)
	d, ok := cause.(*Diagnostic)
	if !ok {
		return 0, false
	}
	return d.Kind, true
}
