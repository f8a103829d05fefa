package pipeline

import (
	"testing"

	"github.com/AfterShip/clickhouse-sql-parser/parser"
	"github.com/kr/pretty"

	"github.com/kqlbridge/kqlbridge/format"
)

// TestEmittedSQLParsesAsClickHouse feeds every emitted SELECT through an
// independent ClickHouse-dialect parser, playing the role the teacher's
// compat_test.go gives vitess-sqlparser: catching SQL text that merely
// looks plausible but is not actually valid ClickHouse syntax.
func TestEmittedSQLParsesAsClickHouse(t *testing.T) {
	queries := []string{
		"Table | where x == 1 | project x, y | take 10",
		"Events | filter status == 200 | summarize total = count() by host",
		"Logs | sort ts desc | limit 5",
		`print 1`,
	}
	for _, q := range queries {
		out, err := Dispatch(q)
		if err != nil {
			t.Fatalf("Dispatch(%q): %v", q, err)
		}
		sql := format.String(out)

		p := parser.NewParser(sql)
		stmts, err := p.ParseStmts()
		if err != nil {
			t.Errorf("query %q produced SQL that failed to parse: %s\nerror: %v\nstate: %s", q, sql, err, pretty.Sprint(out))
			continue
		}
		if len(stmts) != 1 {
			t.Errorf("query %q: expected exactly one statement, got %d: %s", q, len(stmts), sql)
		}
	}
}
