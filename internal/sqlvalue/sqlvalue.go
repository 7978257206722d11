// Package sqlvalue defines the tagged value type used for both
// parameterized statement binding against a live driver and inline
// rendering for the stdout bulk-load backend. It is the Go analogue of
// the Rust original's DbOperationCacheValue.
package sqlvalue

import "fmt"

// Value is one cell of a pending insert row. Only Bound and
// InternedText contribute an actual bind parameter; every other
// variant is rendered inline into the SQL text.
type Value struct {
	kind kind
	s    string
	i64  int64
}

type kind int

const (
	// kindBound binds the value as a driver parameter ("?").
	kindBound kind = iota
	// kindInternedText resolves through the texts side table:
	// "(SELECT id FROM texts WHERE value=?)", with s as the parameter.
	kindInternedText
	// kindRawExpr is inlined verbatim, e.g. "PointFromText(...)" or
	// "UNHEX(...)". Must only ever be built from trusted strings.
	kindRawExpr
	// kindInt is an inline integer literal of any of the element's
	// fixed-width integer column types.
	kindInt
)

// Bound wraps s as a driver-bound string parameter.
func Bound(s string) Value { return Value{kind: kindBound, s: s} }

// InternedText marks s for text-table interning; the caller is
// responsible for ensuring s was pre-inserted into texts before the row
// referencing it is submitted.
func InternedText(s string) Value { return Value{kind: kindInternedText, s: s} }

// RawExpr inlines expr verbatim. expr must never be derived from
// untrusted input.
func RawExpr(expr string) Value { return Value{kind: kindRawExpr, s: expr} }

// Int inlines an integer literal.
func Int(v int64) Value { return Value{kind: kindInt, i64: v} }

// Placeholder returns the fragment to splice into the VALUES(...) list
// for this value: "?" for Bound, the texts-table subquery with one "?"
// for InternedText, the raw expression for RawExpr, or the literal
// decimal text for Int.
func (v Value) Placeholder() string {
	switch v.kind {
	case kindBound:
		return "?"
	case kindInternedText:
		return "(SELECT `id` FROM `texts` WHERE `value`=?)"
	case kindRawExpr:
		return v.s
	case kindInt:
		return fmt.Sprintf("%d", v.i64)
	default:
		panic("sqlvalue: unhandled kind")
	}
}

// BindParam returns the value to pass as a driver parameter and true,
// or false if this value contributes no bind parameter.
func (v Value) BindParam() (any, bool) {
	switch v.kind {
	case kindBound, kindInternedText:
		return v.s, true
	default:
		return nil, false
	}
}

// IsInternedText reports whether v needs a prior row in texts.
func (v Value) IsInternedText() bool { return v.kind == kindInternedText }

// TextValue returns the underlying text for InternedText values.
func (v Value) TextValue() string { return v.s }

// StdoutLiteral renders v the way the stdout bulk-load backend does:
// everything inlined, strings escaped and double-quoted.
func (v Value) StdoutLiteral() string {
	switch v.kind {
	case kindBound:
		return quote(v.s)
	case kindInternedText:
		return fmt.Sprintf("(SELECT `id` FROM `texts` WHERE `value`=%s)", quote(v.s))
	case kindRawExpr:
		return v.s
	case kindInt:
		return fmt.Sprintf("%d", v.i64)
	default:
		panic("sqlvalue: unhandled kind")
	}
}

func quote(s string) string {
	escaped := make([]byte, 0, len(s)+2)
	escaped = append(escaped, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			escaped = append(escaped, '\\', s[i])
		default:
			escaped = append(escaped, s[i])
		}
	}
	escaped = append(escaped, '"')
	return string(escaped)
}
