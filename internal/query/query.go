// Package query implements the triple-pattern planner: given a subject,
// predicate, and object each either a concrete term or a `?variable`,
// it shortlists matching tables from the schema registry, renders the
// per-table SELECT, unions compatible shapes together, and — for
// multi-pattern queries — joins two plans on their shared variables.
// Unlike the ingest pipeline's best-effort rule, every step here uses
// strict first-error: a query that can't be fully planned or fully run
// fails outright rather than returning a partial answer.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"wdqsbe/internal/config"
	"wdqsbe/internal/element"
	"wdqsbe/internal/registry"
	"wdqsbe/internal/tabledef"
)

// Term is one position of a triple pattern: a variable reference
// ("?h") or a concrete element resolved from its lexical form.
type Term struct {
	Variable string
	Value    element.Element
}

func (t Term) isVariable() bool { return t.Variable != "" }

// ParseTerm resolves one raw pattern token into a Term. A leading '?'
// always wins; otherwise raw is expanded through cfg's prefix table
// (cfg may be nil, in which case raw is taken as a literal IRI) and
// classified via element.ParseIRI. Only IRI-shaped terms are supported
// at the subject and predicate positions; a plain literal object
// pattern is not expressible through this entry point, the same
// restriction the reference planner's from() carries.
func ParseTerm(cfg *config.Config, raw string) Term {
	if strings.HasPrefix(raw, "?") {
		return Term{Variable: strings.TrimPrefix(raw, "?")}
	}
	expanded := raw
	if cfg != nil {
		expanded = cfg.ReplacePrefix(raw)
	}
	return Term{Value: element.ParseIRI(expanded)}
}

// Pattern is one triple pattern: three Terms in subject/predicate/object
// order.
type Pattern struct {
	Subject, Predicate, Object Term
}

// varInfo records how to decode one projected variable's columns back
// into an Element once a query has run.
type varInfo struct {
	kindName string
	aliases  []string
}

// group is every table sharing one (subject_kind, predicate_kind,
// object_kind) signature, rendered as a single UNION ALL'd SELECT.
type group struct {
	key       string
	sql       string
	binds     []any
	variables map[string]varInfo
}

// QueryTriples is a fully planned, not-yet-executed triple pattern (or
// join of several), grouped by backing-table signature.
type QueryTriples struct {
	groups []group
}

// From plans pattern against every table currently known to reg,
// producing one group per distinct (subject_kind, predicate_kind,
// object_kind) signature among the matching tables.
func From(reg *registry.Registry, pattern Pattern) (*QueryTriples, error) {
	byKey := map[string][]tabledef.TableDef{}
	for _, def := range reg.All() {
		if !patternMatches(pattern, def) {
			continue
		}
		key := groupKey(def)
		byKey[key] = append(byKey[key], def)
	}
	if len(byKey) == 0 {
		return nil, fmt.Errorf("query: no table matches pattern %s", describePattern(pattern))
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]group, 0, len(keys))
	for _, key := range keys {
		defs := byKey[key]
		sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

		var selects []string
		var binds []any
		var vars map[string]varInfo
		for _, def := range defs {
			stmt, tableBinds, tableVars := buildTableSelect(pattern, def)
			selects = append(selects, stmt)
			binds = append(binds, tableBinds...)
			if vars == nil {
				vars = tableVars
			}
		}

		groups = append(groups, group{
			key:       key,
			sql:       strings.Join(selects, "\nUNION ALL\n"),
			binds:     binds,
			variables: vars,
		})
	}

	return &QueryTriples{groups: groups}, nil
}

func groupKey(def tabledef.TableDef) string {
	return def.SubjectKind + "|" + def.PredicateKind + "|" + def.ObjectKind
}

func patternMatches(pattern Pattern, def tabledef.TableDef) bool {
	if !pattern.Predicate.isVariable() && pattern.Predicate.Value.TableFragment() != def.PredicateFragment {
		return false
	}
	if !pattern.Subject.isVariable() && pattern.Subject.Value.KindName() != def.SubjectKind {
		return false
	}
	if !pattern.Object.isVariable() && pattern.Object.Value.KindName() != def.ObjectKind {
		return false
	}
	return true
}

func describePattern(p Pattern) string {
	describe := func(t Term) string {
		if t.isVariable() {
			return "?" + t.Variable
		}
		return t.Value.Lexical()
	}
	return fmt.Sprintf("%s %s %s", describe(p.Subject), describe(p.Predicate), describe(p.Object))
}

// buildTableSelect renders one table's contribution to its group's
// UNION ALL, returning the bind parameters in the exact order their
// placeholders occur in the rendered SQL (select-list projections
// before WHERE equality, since that's the order they appear in the
// text) and the decode metadata for every variable it projects.
func buildTableSelect(pattern Pattern, def tabledef.TableDef) (stmt string, binds []any, vars map[string]varInfo) {
	keyCols, valueCols := def.ColumnNames()
	vars = map[string]varInfo{}

	var selectCols []string
	var selectBinds []any
	var whereCols []string
	var whereBinds []any
	var selectJoins []string
	joinedTexts := 0
	nextJoinAlias := func() string {
		joinedTexts++
		return fmt.Sprintf("tx%d", joinedTexts)
	}

	projectSide := func(term Term, cols []string, internedSlots []bool, colPrefix string) {
		if term.isVariable() {
			aliases := make([]string, len(cols))
			var joins []string
			for i, col := range cols {
				alias := fmt.Sprintf("%s__%d", term.Variable, i)
				aliases[i] = alias
				if i < len(internedSlots) && internedSlots[i] {
					ta := nextJoinAlias()
					joins = append(joins, fmt.Sprintf("LEFT JOIN `texts` AS `%s` ON `%s`.`id` = `%s`.`%s`", ta, ta, def.Name, col))
					selectCols = append(selectCols, fmt.Sprintf("`%s`.`value` AS `%s`", ta, alias))
				} else {
					selectCols = append(selectCols, fmt.Sprintf("`%s`.`%s` AS `%s`", def.Name, col, alias))
				}
			}
			vars[term.Variable] = varInfo{kindName: kindForSide(def, colPrefix), aliases: aliases}
			selectJoins = append(selectJoins, joins...)
			return
		}
		values := term.Value.StoredValues()
		for i, col := range cols {
			whereCols = append(whereCols, fmt.Sprintf("`%s`.`%s` = %s", def.Name, col, values[i].Placeholder()))
			if p, ok := values[i].BindParam(); ok {
				whereBinds = append(whereBinds, p)
			}
		}
	}

	projectSide(pattern.Subject, keyCols, element.InternedSlots(def.SubjectKind), "subject")

	if pattern.Predicate.isVariable() {
		selectCols = append(selectCols, fmt.Sprintf("? AS `%s`", pattern.Predicate.Variable))
		selectBinds = append(selectBinds, def.PredicateLexical)
		vars[pattern.Predicate.Variable] = varInfo{kindName: def.PredicateKind, aliases: []string{pattern.Predicate.Variable}}
	}

	projectSide(pattern.Object, valueCols, element.InternedSlots(def.ObjectKind), "object")

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM `%s`", strings.Join(selectCols, ", "), def.Name)
	for _, j := range selectJoins {
		b.WriteString(" " + j)
	}
	if len(whereCols) > 0 {
		fmt.Fprintf(&b, " WHERE %s", strings.Join(whereCols, " AND "))
	}

	binds = append(binds, selectBinds...)
	binds = append(binds, whereBinds...)
	return b.String(), binds, vars
}

func kindForSide(def tabledef.TableDef, side string) string {
	if side == "subject" {
		return def.SubjectKind
	}
	return def.ObjectKind
}

// Row is one query result row, decoded into its pattern's variables.
type Row map[string]element.Element

// Backend is the execution side a QueryTriples needs: run one group's
// SQL with its bound parameters and return every matching row, each
// cell addressable by its projected column alias.
type Backend interface {
	RunQuery(ctx context.Context, sqlText string, binds []any) ([]map[string]sql.NullString, error)
}

// Run executes every group against backend and decodes the combined
// result set. It follows the strict first-error rule: any group's
// failure to execute or any row's failure to decode aborts the whole
// query immediately.
func (q *QueryTriples) Run(ctx context.Context, backend Backend) ([]Row, error) {
	var results []Row
	for _, g := range q.groups {
		rawRows, err := backend.RunQuery(ctx, g.sql, g.binds)
		if err != nil {
			return nil, fmt.Errorf("query: running group %s: %w", g.key, err)
		}
		for _, raw := range rawRows {
			row := make(Row, len(g.variables))
			for name, info := range g.variables {
				values := make([]string, len(info.aliases))
				for i, alias := range info.aliases {
					values[i] = raw[alias].String
				}
				el, err := element.Decode(info.kindName, values)
				if err != nil {
					return nil, fmt.Errorf("query: decoding variable %s: %w", name, err)
				}
				row[name] = el
			}
			results = append(results, row)
		}
	}
	return results, nil
}

// Join composes q and other with an inner join on every variable name
// they share within matching groups. A matching group pair that shares
// no variable name is an error, per the planner's join contract.
func (q *QueryTriples) Join(other *QueryTriples) (*QueryTriples, error) {
	var joined []group
	for _, g1 := range q.groups {
		for _, g2 := range other.groups {
			if g1.key != g2.key {
				continue
			}
			shared := sharedVariableNames(g1.variables, g2.variables)
			if len(shared) == 0 {
				return nil, fmt.Errorf("query: join has no shared variables for group %s", g1.key)
			}

			var onClauses []string
			for _, name := range shared {
				for _, alias := range g1.variables[name].aliases {
					onClauses = append(onClauses, fmt.Sprintf("`t1`.`%s` = `t2`.`%s`", alias, alias))
				}
			}

			merged := map[string]varInfo{}
			selectCols := []string{"t1.*"}
			for name, v := range g1.variables {
				merged[name] = v
			}
			for name, v := range g2.variables {
				if _, ok := merged[name]; ok {
					continue
				}
				merged[name] = v
				for _, alias := range v.aliases {
					selectCols = append(selectCols, fmt.Sprintf("`t2`.`%s`", alias))
				}
			}

			sqlText := fmt.Sprintf("SELECT %s FROM (%s) AS `t1` INNER JOIN (%s) AS `t2` ON %s",
				strings.Join(selectCols, ", "), g1.sql, g2.sql, strings.Join(onClauses, " AND "))
			binds := append(append([]any{}, g1.binds...), g2.binds...)

			joined = append(joined, group{key: g1.key, sql: sqlText, binds: binds, variables: merged})
		}
	}
	if len(joined) == 0 {
		return nil, fmt.Errorf("query: join produced no compatible groups")
	}
	return &QueryTriples{groups: joined}, nil
}

func sharedVariableNames(a, b map[string]varInfo) []string {
	var shared []string
	for name := range a {
		if _, ok := b[name]; ok {
			shared = append(shared, name)
		}
	}
	sort.Strings(shared)
	return shared
}
