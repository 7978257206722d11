// Package stmtsplit splits a generated SQL dump file into individual
// statements and classifies any that would be destructive or
// non-transactional against a live server, for the bulk-load preflight
// check. Adapted from internal/apply's StatementAnalyzer: same TiDB
// AST-based classification, scoped down to the statement shapes a
// stdout-backend dump or a hand-edited one can actually contain.
package stmtsplit

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// Statement is one classified statement from a dump file.
type Statement struct {
	SQL               string
	Type              string
	Destructive       bool
	DestructiveReason string
	TransactionSafe   bool
	UnsafeReason      string
}

// Splitter parses and classifies dump statements.
type Splitter struct {
	parser *parser.Parser
}

// New builds a Splitter.
func New() *Splitter {
	return &Splitter{parser: parser.New()}
}

// Split breaks content into individual statements. It prefers the TiDB
// parser's own statement boundaries (so a semicolon inside a string
// literal, e.g. an interned text value, never causes a false split) and
// falls back to a naive semicolon split only when the parser rejects
// the whole file outright.
func (s *Splitter) Split(content string) []string {
	content = strings.TrimSpace(content)
	if stmts := s.splitWithParser(content); len(stmts) > 0 {
		return stmts
	}
	return splitBySemicolon(content)
}

func (s *Splitter) splitWithParser(content string) []string {
	nodes, _, err := s.parser.Parse(content, "", "")
	if err != nil || len(nodes) == 0 {
		return nil
	}
	stmts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		var sb strings.Builder
		ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
		if err := node.Restore(ctx); err != nil {
			continue
		}
		if stmt := strings.TrimSpace(sb.String()); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func splitBySemicolon(content string) []string {
	var stmts []string
	var current strings.Builder
	for line := range strings.SplitSeq(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") || trimmed == "" {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				stmts = append(stmts, stmt)
			}
			current.Reset()
		}
	}
	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		stmts = append(stmts, remaining)
	}
	return stmts
}

// Classify splits content and classifies every resulting statement.
func (s *Splitter) Classify(content string) []Statement {
	raw := s.Split(content)
	out := make([]Statement, 0, len(raw))
	for _, stmt := range raw {
		out = append(out, s.classifyOne(stmt))
	}
	return out
}

func (s *Splitter) classifyOne(sql string) Statement {
	nodes, _, err := s.parser.Parse(sql, "", "")
	if err != nil || len(nodes) == 0 {
		return fallback(sql)
	}
	return classifyNode(nodes[0], sql)
}

func classifyNode(node ast.StmtNode, sql string) Statement {
	st := Statement{SQL: sql, TransactionSafe: true}
	switch n := node.(type) {
	case *ast.DropTableStmt:
		st.Type = "DROP TABLE"
		st.Destructive = true
		st.DestructiveReason = "drops a table and all its rows"
		st.TransactionSafe = false
		st.UnsafeReason = "DROP TABLE causes an implicit commit"
	case *ast.DropDatabaseStmt:
		st.Type = "DROP DATABASE"
		st.Destructive = true
		st.DestructiveReason = "drops the entire database"
		st.TransactionSafe = false
		st.UnsafeReason = "DROP DATABASE causes an implicit commit"
	case *ast.TruncateTableStmt:
		st.Type = "TRUNCATE TABLE"
		st.Destructive = true
		st.DestructiveReason = "removes every row from a table"
		st.TransactionSafe = false
		st.UnsafeReason = "TRUNCATE TABLE causes an implicit commit"
	case *ast.DeleteStmt:
		st.Type = "DELETE"
		st.Destructive = true
		st.DestructiveReason = "removes rows from a table"
	case *ast.CreateTableStmt:
		st.Type = "CREATE TABLE"
		st.TransactionSafe = false
		st.UnsafeReason = "CREATE TABLE causes an implicit commit"
	case *ast.AlterTableStmt:
		st.Type = "ALTER TABLE"
		st.TransactionSafe = false
		st.UnsafeReason = "ALTER TABLE causes an implicit commit"
	case *ast.InsertStmt, *ast.SelectStmt, *ast.UpdateStmt:
		st.Type = statementTypeName(n)
	default:
		st.Type = "OTHER"
	}
	return st
}

func statementTypeName(n ast.StmtNode) string {
	switch n.(type) {
	case *ast.InsertStmt:
		return "INSERT"
	case *ast.SelectStmt:
		return "SELECT"
	case *ast.UpdateStmt:
		return "UPDATE"
	default:
		return "OTHER"
	}
}

func fallback(sql string) Statement {
	st := Statement{SQL: sql, Type: "UNPARSEABLE", TransactionSafe: true}
	upper := strings.ToUpper(strings.TrimSpace(sql))
	destructive := map[string]string{
		"DROP TABLE":     "drops a table and all its rows",
		"DROP DATABASE":  "drops the entire database",
		"TRUNCATE TABLE": "removes every row from a table",
		"DELETE FROM":    "removes rows from a table",
	}
	for pattern, reason := range destructive {
		if strings.Contains(upper, pattern) {
			st.Destructive = true
			st.DestructiveReason = reason
			break
		}
	}
	for _, prefix := range []string{"CREATE ", "DROP ", "ALTER ", "TRUNCATE "} {
		if strings.HasPrefix(upper, prefix) {
			st.TransactionSafe = false
			st.UnsafeReason = "DDL statement causes an implicit commit"
			break
		}
	}
	return st
}
