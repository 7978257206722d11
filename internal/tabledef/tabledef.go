// Package tabledef derives and persists the backing-table definition for
// each distinct (subject-kind, predicate, object-kind) shape the ingest
// pipeline encounters. A TableDef is immutable once created: its name,
// column layout, and DDL are pure functions of the three elements that
// produced it.
package tabledef

import (
	"fmt"
	"strings"

	"wdqsbe/internal/coltype"
	"wdqsbe/internal/element"
)

// maxIdentifierLength is the backend's identifier limit. Names longer
// than this are truncated; per the registry's collision policy, a
// truncation collision keeps the first definition and warns rather than
// failing.
const maxIdentifierLength = 64

// TableDef is the persisted definition of one shape-backed table.
type TableDef struct {
	Name              string          `json:"name"`
	KeyLayout         []coltype.ColType `json:"key_layout"`
	ValueLayout       []coltype.ColType `json:"value_layout"`
	SubjectKind       string          `json:"subject_kind"`
	PredicateKind     string          `json:"predicate_kind"`
	ObjectKind        string          `json:"object_kind"`
	PredicateFragment string          `json:"predicate_fragment"`
	PredicateValues   []storedValue   `json:"predicate_values"`
	// PredicateLexical is the predicate element's canonical lexical form
	// (for property predicates the bare key, e.g. "P31"), computed once
	// at creation time. The query planner uses it to materialize a
	// `?predicate` projection without having to reconstruct it from
	// stored column values (see package query).
	PredicateLexical string `json:"predicate_lexical"`
}

// storedValue is the JSON-safe mirror of sqlvalue.Value used only for
// persisting a predicate's constant values in table_list; it is never
// used to build a statement directly.
type storedValue struct {
	Placeholder string `json:"placeholder"`
	Param       string `json:"param,omitempty"`
	HasParam    bool    `json:"has_param,omitempty"`
}

// New derives the TableDef for the shape (subject, predicate, object).
// Name collisions from truncation are resolved by the caller (the schema
// registry), which must keep the first definition and warn on conflict.
func New(subject, predicate, object element.Element) TableDef {
	name := fmt.Sprintf("data__%s__%s__%s", predicate.TableFragment(), subject.TableFragment(), object.TableFragment())
	if len(name) > maxIdentifierLength {
		name = name[:maxIdentifierLength]
	}

	values := predicate.StoredValues()
	stored := make([]storedValue, len(values))
	for i, v := range values {
		stored[i].Placeholder = v.Placeholder()
		if p, ok := v.BindParam(); ok {
			stored[i].HasParam = true
			stored[i].Param, _ = p.(string)
		}
	}

	return TableDef{
		Name:              name,
		KeyLayout:         subject.ColumnLayout(),
		ValueLayout:       object.ColumnLayout(),
		SubjectKind:       subject.KindName(),
		PredicateKind:     predicate.KindName(),
		ObjectKind:        object.KindName(),
		PredicateFragment: predicate.TableFragment(),
		PredicateValues:   stored,
		PredicateLexical:  predicate.Lexical(),
	}
}

// ColumnNames returns the ordered k0..kN, v0..vM column names for the
// table's non-blank slots, in the same order as CreateStatement emits
// them and the query planner binds them.
func (d TableDef) ColumnNames() (keyCols, valueCols []string) {
	for i, c := range d.KeyLayout {
		if c != coltype.Blank {
			keyCols = append(keyCols, fmt.Sprintf("k%d", i))
		}
	}
	for i, c := range d.ValueLayout {
		if c != coltype.Blank {
			valueCols = append(valueCols, fmt.Sprintf("v%d", i))
		}
	}
	return keyCols, valueCols
}

// hasNaturalKey reports whether the key+value columns can serve as the
// table's PRIMARY KEY. A geospatial Point column can only ever carry a
// SPATIAL INDEX, never participate in a B-tree primary key, so its
// presence forces a surrogate `id` column; every other column type this
// module emits (fixed-width numerics and bounded-length text, since raw
// long text is always interned to a surrogate int before it reaches a
// data table) is small and stable enough to index directly.
func (d TableDef) hasNaturalKey() bool {
	for _, c := range append(append([]coltype.ColType{}, d.KeyLayout...), d.ValueLayout...) {
		if c == coltype.Point {
			return false
		}
	}
	return true
}

// CreateStatement renders the DDL to provision this table, following the
// reference generator's shape: one column per non-blank slot, a
// composite index over the key columns and another over the value
// columns, a SPATIAL INDEX for any Point column, and either a natural
// composite PRIMARY KEY (when the layout has no Point column, see
// hasNaturalKey) or a surrogate `id` AUTO_INCREMENT key with a
// caller-visible warning via warn, which may be nil.
func (d TableDef) CreateStatement(warn func(string)) string {
	var cols []string
	var indexK, indexV, spatial []string

	for i, c := range d.KeyLayout {
		if frag, ok := c.DDL(); ok {
			cols = append(cols, fmt.Sprintf("`k%d` %s", i, frag))
			indexK = append(indexK, fmt.Sprintf("`k%d`", i))
			if c.IsSpatial() {
				spatial = append(spatial, fmt.Sprintf("`k%d`", i))
			}
		}
	}
	for i, c := range d.ValueLayout {
		if frag, ok := c.DDL(); ok {
			cols = append(cols, fmt.Sprintf("`v%d` %s", i, frag))
			indexV = append(indexV, fmt.Sprintf("`v%d`", i))
			if c.IsSpatial() {
				spatial = append(spatial, fmt.Sprintf("`v%d`", i))
			}
		}
	}

	natural := d.hasNaturalKey()
	if !natural && warn != nil {
		warn(fmt.Sprintf("table %s: no natural key (Point column present), adding surrogate id", d.Name))
	}
	if !natural {
		cols = append([]string{"`id` INT AUTO_INCREMENT"}, cols...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS `%s` (\n", d.Name)
	for _, c := range cols {
		fmt.Fprintf(&b, "  %s,\n", c)
	}
	if len(indexK) > 0 {
		fmt.Fprintf(&b, "  INDEX `index_k` (%s),\n", strings.Join(indexK, ","))
	}
	if len(indexV) > 0 {
		fmt.Fprintf(&b, "  INDEX `index_v` (%s),\n", strings.Join(indexV, ","))
	}
	for _, s := range spatial {
		fmt.Fprintf(&b, "  SPATIAL INDEX (%s),\n", s)
	}
	if natural {
		fmt.Fprintf(&b, "  PRIMARY KEY (%s)\n", strings.Join(append(append([]string{}, indexK...), indexV...), ","))
	} else {
		fmt.Fprintf(&b, "  PRIMARY KEY (`id`)\n")
	}
	b.WriteString(") ENGINE=Aria")
	return b.String()
}
