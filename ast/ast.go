// Package ast defines the per-parse data model of spec.md §3: StageRecord,
// PipelinePlan, OutputSelect, and the FunctionContext templates receive.
// These replace the teacher's open, multi-statement SQL AST (ast/clause.go,
// ast/expression.go, ast/statement.go) — a KQL pipeline only ever produces
// one SELECT built from a fixed six-slot shape, so there is no open Node
// hierarchy to model; what carries over is the teacher's pooling discipline
// (ast/pool.go), reused below for StageRecord slices.
package ast

import (
	"sync"

	"github.com/kqlbridge/kqlbridge/cursor"
)

// StageRecord pairs a stage's operator name with the cursor positioned
// immediately after the stage keyword (spec.md §3 "StageRecord").
type StageRecord struct {
	Operator string
	Args     cursor.Cursor
}

// PipelinePlan is the ordered sequence of StageRecords the dispatcher
// builds while scanning, with a synthetic "table" record at index 0
// (spec.md §3 "PipelinePlan").
type PipelinePlan struct {
	Stages []StageRecord
}

// Table returns the synthetic head record. Panics if the plan was not
// built through pipeline.Dispatch, which always inserts it first.
func (p *PipelinePlan) Table() StageRecord {
	return p.Stages[0]
}

var planPool = sync.Pool{
	New: func() any { return &PipelinePlan{Stages: make([]StageRecord, 0, 8)} },
}

// GetPlan returns a PipelinePlan from the pool, ready to append to.
func GetPlan() *PipelinePlan {
	return planPool.Get().(*PipelinePlan)
}

// ReleasePlan returns a PipelinePlan to the pool. Callers must not retain
// references to it, or to its Stages slice, afterwards.
func ReleasePlan(p *PipelinePlan) {
	p.Stages = p.Stages[:0]
	planPool.Put(p)
}

// OutputSelect is the assembled SQL SELECT of spec.md §3: six slots, at
// most one value each, later assignments overwriting earlier ones.
type OutputSelect struct {
	Select  string // SELECT list
	From    string // FROM tables
	Where   string // WHERE predicate
	GroupBy string // GROUP BY list
	OrderBy string // ORDER BY list
	Limit   string // LIMIT length
}

// SetSelect overwrites the SELECT slot. Named setters (rather than public
// field writes from every call site) exist only to document spec.md §3's
// "later assignments overwrite earlier ones" invariant at the point of use
// — the zero value of an unset slot is simply the empty string, which
// internal/format treats as "omit this clause".
func (o *OutputSelect) SetSelect(v string) { o.Select = v }

// SetFrom overwrites the FROM slot.
func (o *OutputSelect) SetFrom(v string) { o.From = v }

// SetWhere overwrites the WHERE slot.
func (o *OutputSelect) SetWhere(v string) { o.Where = v }

// SetGroupBy overwrites the GROUP BY slot.
func (o *OutputSelect) SetGroupBy(v string) { o.GroupBy = v }

// SetOrderBy overwrites the ORDER BY slot.
func (o *OutputSelect) SetOrderBy(v string) { o.OrderBy = v }

// SetLimit overwrites the LIMIT slot.
func (o *OutputSelect) SetLimit(v string) { o.Limit = v }
