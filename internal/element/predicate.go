package element

import (
	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

// PredicateRole is every predicate-position element: a bare property
// reference or one of its statement/reference/qualifier value roles. Each
// variant stores a single short-text property key (e.g. "P31") and
// differs from its siblings only in kind name and table fragment.
type PredicateRole struct {
	kind string
	key  string
}

func newPredicateRole(kind, key string) PredicateRole { return PredicateRole{kind: kind, key: key} }

func NewProperty(key string) PredicateRole                         { return newPredicateRole(KindProperty, key) }
func NewPropertyDirect(key string) PredicateRole                   { return newPredicateRole(KindPropertyDirect, key) }
func NewPropertyDirectNormalized(key string) PredicateRole         { return newPredicateRole(KindPropertyDirectNormalized, key) }
func NewPropertyStatement(key string) PredicateRole                { return newPredicateRole(KindPropertyStatement, key) }
func NewPropertyStatementValue(key string) PredicateRole           { return newPredicateRole(KindPropertyStatementValue, key) }
func NewPropertyStatementValueNormalized(key string) PredicateRole { return newPredicateRole(KindPropertyStatementValueNormalized, key) }
func NewPropertyReference(key string) PredicateRole                { return newPredicateRole(KindPropertyReference, key) }
func NewPropertyReferenceValue(key string) PredicateRole           { return newPredicateRole(KindPropertyReferenceValue, key) }
func NewPropertyQualifier(key string) PredicateRole                { return newPredicateRole(KindPropertyQualifier, key) }
func NewPropertyQualifierValue(key string) PredicateRole           { return newPredicateRole(KindPropertyQualifierValue, key) }

func (p PredicateRole) KindName() string { return p.kind }

// TableFragment appends the property key to the kind name, e.g.
// "PropertyDirect_P31". PropertyStatementValueNormalized is abbreviated to
// "PSVN" to keep the composed table name under the backend's identifier
// limit; every other role uses its full kind name.
func (p PredicateRole) TableFragment() string {
	if p.kind == KindPropertyStatementValueNormalized {
		return "PSVN_" + p.key
	}
	return p.kind + "_" + p.key
}

func (p PredicateRole) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.ShortText}
}

func (p PredicateRole) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{sqlvalue.Bound(p.key)}
}

func (p PredicateRole) Lexical() string { return p.key }

// Key returns the bare property key, e.g. "P31".
func (p PredicateRole) Key() string { return p.key }
