// Package element implements the tagged-union term model described in
// the schema: every RDF element — subject, predicate, or object — is one
// of a closed set of kinds, and each kind knows how to lay itself out as
// table columns and how to produce the values that go in them. The
// capability set below (KindName/TableFragment/ColumnLayout/
// StoredValues/Lexical) is deliberately one interface rather than a
// parallel kind-to-behavior map, so schema-time and decode-time never
// drift apart.
package element

import (
	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

// Element is any parsed RDF term: an entity, a predicate role, a typed
// literal, a fixed well-known IRI, or the generic text/URL catch-all.
type Element interface {
	// KindName is the stable discriminator used both as the table's
	// shape component and as the decode-time dispatch key. It must
	// never depend on the element's own values, only on its variant.
	KindName() string

	// TableFragment is this element's contribution to a backing table's
	// name. For most kinds it equals KindName; predicate-role kinds
	// append their property key (e.g. "PropertyDirect_P31").
	TableFragment() string

	// ColumnLayout is the ordered list of column types this element
	// occupies, blanks included. It is a pure function of the variant.
	ColumnLayout() []coltype.ColType

	// StoredValues is the ordered list of encoded values for the
	// non-blank slots of ColumnLayout. len(StoredValues()) must equal
	// the number of non-blank entries in ColumnLayout().
	StoredValues() []sqlvalue.Value

	// Lexical renders the element back to its N-Triples/IRI lexical
	// form, the inverse of Parse for round-trippable kinds.
	Lexical() string
}

// NonBlankCount returns the number of non-blank slots in e's layout,
// i.e. the expected length of e.StoredValues().
func NonBlankCount(e Element) int {
	n := 0
	for _, c := range e.ColumnLayout() {
		if c != coltype.Blank {
			n++
		}
	}
	return n
}

// InternedSlots reports, for each non-blank column of the given kind,
// whether that column stores an interned text surrogate key (and must
// therefore be resolved through the texts table on read). Keyed off
// KindName rather than a parallel per-element flag, so there is exactly
// one place that knows which kinds intern text.
func InternedSlots(kindName string) []bool {
	switch kindName {
	case KindText, KindURL:
		return []bool{true}
	case KindTextInLanguage, KindWikiPage:
		return []bool{true, true}
	default:
		return nil
	}
}
