// Package pipeline implements the dispatcher (component E): the
// `Start -> AtTable -> InPipeline -> End` state machine that turns
// `Table | op arg | op arg | ...` into an assembled ast.OutputSelect.
// Grounded on the teacher's top-level parse loop (formerly
// parser/parser.go, since folded into this package per DESIGN.md): a
// single forward scan building a flat record list, followed by a second
// pass that assembles the final statement in a fixed clause order rather
// than textual order.
package pipeline

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kqlbridge/kqlbridge/alias"
	"github.com/kqlbridge/kqlbridge/ast"
	"github.com/kqlbridge/kqlbridge/cursor"
	"github.com/kqlbridge/kqlbridge/errs"
	"github.com/kqlbridge/kqlbridge/lexer"
	"github.com/kqlbridge/kqlbridge/subparser"
	"github.com/kqlbridge/kqlbridge/token"
)

var fold = cases.Fold()

// synonyms folds the operator aliases of spec.md §4.E ("filter ≡ where;
// limit ≡ take; sort ≡ order") to their canonical dispatch-table name.
// Stage parsers register themselves under the canonical spelling only.
var synonyms = map[string]string{
	"where": "filter",
	"take":  "limit",
	"order": "sort",
}

// emissionOrder is the fixed clause assembly order of spec.md §4.E,
// independent of the stages' textual order in the KQL input. "table" is
// handled separately, directly into OutputSelect.From, since it has no
// registered sub-parser.
var emissionOrder = []string{"project", "limit", "filter", "sort", "summarize", "make-series"}

func canonicalize(word string) string {
	w := fold.String(word)
	if c, ok := synonyms[w]; ok {
		return c
	}
	return w
}

// Dispatch runs the full pipeline dispatcher over query text and returns
// the assembled OutputSelect, or the first Diagnostic encountered
// (spec.md's Open Question: fail-fast, discard partial state).
func Dispatch(query string) (*ast.OutputSelect, error) {
	toks := lexer.Tokens(query)
	cur := cursor.New(toks, query)
	counter := alias.NewCounter()

	first := cur.Peek()
	if first.Kind == token.BareWord && fold.String(first.Text) == "print" {
		return dispatchPrint(cur.Advance(), counter)
	}
	if first.Kind != token.BareWord {
		return nil, errs.New(errs.MalformedPipeline, cur.Offset(), "expected a table name or 'print'")
	}

	plan := ast.GetPlan()
	defer ast.ReleasePlan(plan)
	plan.Stages = append(plan.Stages, ast.StageRecord{Operator: "table", Args: cur})
	cur = cur.Advance()

	cur, err := scan(cur, plan)
	if err != nil {
		return nil, err
	}

	return assemble(plan, counter)
}

func dispatchPrint(cur cursor.Cursor, counter *alias.Counter) (*ast.OutputSelect, error) {
	p, ok := subparser.New("print")
	if !ok {
		return nil, errs.New(errs.UnknownOperator, cur.Offset(), "no sub-parser registered for 'print'")
	}
	p.Prepare(cur)
	out := &ast.OutputSelect{}
	if err := p.Parse(counter, out); err != nil {
		return nil, err
	}
	return out, nil
}

// scan runs the InPipeline scanning loop, appending one StageRecord per
// recognised `| operator` and delegating argument skipping to each
// stage's token-skipper so the loop can resume at the next `|` or `;`
// without understanding that stage's own grammar.
func scan(cur cursor.Cursor, plan *ast.PipelinePlan) (cursor.Cursor, error) {
	for {
		tok := cur.Peek()
		if tok.Kind == token.EndOfStream || tok.Kind == token.Semicolon {
			return cur, nil
		}
		if tok.Kind != token.Pipe {
			return cur, errs.New(errs.MalformedPipeline, cur.Offset(), "expected '|' or end of query, got %s", tok.Kind)
		}
		cur = cur.Advance()

		opTok := cur.Peek()
		if opTok.Kind != token.BareWord {
			return cur, errs.New(errs.UnknownOperator, cur.Offset(), "expected a stage operator name")
		}
		word := opTok.Text
		cur = cur.Advance()

		opName, next, err := resolveOperator(word, cur)
		if err != nil {
			return cur, err
		}
		cur = next

		if !subparser.Known(opName) {
			return cur, errs.New(errs.UnknownOperator, cur.Offset(), "unknown operator %q", word)
		}

		plan.Stages = append(plan.Stages, ast.StageRecord{Operator: opName, Args: cur})

		skipper, _ := subparser.New(opName)
		cur, err = skipper.TokenSkipper(cur)
		if err != nil {
			return cur, err
		}
	}
}

// resolveOperator applies the make-series two-token lookahead (spec.md
// §4.E: "if the word is `make`, a following `-` then `series` rewrites
// the operator name... otherwise the dispatcher fails") and the
// filter/limit/sort synonym fold.
func resolveOperator(word string, cur cursor.Cursor) (string, cursor.Cursor, error) {
	if fold.String(word) != "make" {
		return canonicalize(word), cur, nil
	}
	if cur.Peek().Kind != token.Minus {
		return "", cur, errs.New(errs.UnknownOperator, cur.Offset(), "unknown operator %q", word)
	}
	afterDash := cur.Advance()
	seriesTok := afterDash.Peek()
	if seriesTok.Kind != token.BareWord || fold.String(seriesTok.Text) != "series" {
		// Nothing beyond "make" was consumable as an operator; step back
		// over the speculative "-" lookahead before failing.
		return "", afterDash.StepBack(), errs.New(errs.UnknownOperator, cur.Offset(), "unknown operator %q", word)
	}
	return "make-series", afterDash.Advance(), nil
}

// assemble runs the two-pass assembly phase: Prepare every StageRecord in
// insertion order (spec.md §4.E "Assembly phase"), then invoke Parse in
// the fixed emissionOrder, last-write-wins into the shared OutputSelect.
func assemble(plan *ast.PipelinePlan, counter *alias.Counter) (*ast.OutputSelect, error) {
	out := &ast.OutputSelect{}
	out.SetFrom(plan.Table().Args.Peek().Text)

	instances := make(map[string]subparser.Parser, len(plan.Stages))
	for _, rec := range plan.Stages[1:] {
		inst, ok := subparser.New(rec.Operator)
		if !ok {
			return nil, errs.New(errs.UnknownOperator, rec.Args.Offset(), "unknown operator %q", rec.Operator)
		}
		inst.Prepare(rec.Args)
		instances[rec.Operator] = inst
	}

	for _, name := range emissionOrder {
		inst, ok := instances[name]
		if !ok {
			continue
		}
		if err := inst.Parse(counter, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
