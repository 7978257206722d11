package element

import (
	"fmt"
	"regexp"
	"strings"

	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

var (
	reHex40 = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	reHex32 = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
)

// UUID40 and UUID32 are fixed-length hex digest strings stored as packed
// binary via MySQL's UNHEX(), not RFC4122 UUIDs: Reference keys are
// 40 hex characters, Value and statement keys are 32.
type UUID40 struct{ hex string }
type UUID32 struct{ hex string }

// ParseUUID40 accepts s with or without '-' separators and lowercases it.
// Unlike the reference implementation's any-alnum check, hex digits are
// required here: UNHEX() silently nulls out non-hex input, which would
// otherwise corrupt the stored key without surfacing an error.
func ParseUUID40(s string) (UUID40, error) {
	h := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if !reHex40.MatchString(h) {
		return UUID40{}, fmt.Errorf("element: %q is not a 40-hex-character UUID", s)
	}
	return UUID40{hex: h}, nil
}

func ParseUUID32(s string) (UUID32, error) {
	h := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if !reHex32.MatchString(h) {
		return UUID32{}, fmt.Errorf("element: %q is not a 32-hex-character UUID", s)
	}
	return UUID32{hex: h}, nil
}

func (u UUID40) KindName() string      { return KindReference }
func (u UUID40) TableFragment() string { return KindReference }
func (u UUID40) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.Uuid40}
}
func (u UUID40) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{sqlvalue.RawExpr(fmt.Sprintf("UNHEX(%s)", quoteHex(u.hex)))}
}
func (u UUID40) Lexical() string { return u.hex }

func (u UUID32) KindName() string      { return KindValue }
func (u UUID32) TableFragment() string { return KindValue }
func (u UUID32) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.Uuid32}
}
func (u UUID32) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{sqlvalue.RawExpr(fmt.Sprintf("UNHEX(%s)", quoteHex(u.hex)))}
}
func (u UUID32) Lexical() string { return u.hex }

// quoteHex double-quotes a hex string for inline SQL. Safe without full
// escaping because the regex above already restricts the input to
// [0-9a-fA-F].
func quoteHex(hex string) string { return `"` + hex + `"` }
