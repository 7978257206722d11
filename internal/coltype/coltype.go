// Package coltype enumerates the small set of physical column types the
// rest of the module ever emits DDL for. Every Element kind maps each of
// its stored slots onto one of these, never onto a dialect-specific type
// string directly.
package coltype

import "fmt"

// ColType is a closed set of column shapes. A shape's DDL fragment is
// pure and depends on nothing but the constant itself.
type ColType int

const (
	// Blank marks a slot that contributes no column at all; it exists
	// purely to keep slot indices stable across element variants that
	// carry fewer values than their siblings.
	Blank ColType = iota
	// Text is variable-length UTF-8, up to 255 characters.
	Text
	// ShortText is ASCII, up to 64 characters — entity keys, predicate
	// fragments, and other short identifiers.
	ShortText
	// Int is a signed 64-bit integer.
	Int
	// U32 is an unsigned 32-bit integer.
	U32
	// U16 is an unsigned 16-bit integer.
	U16
	// U8 is an unsigned 8-bit integer.
	U8
	// I16 is a signed 16-bit integer.
	I16
	// I32 is a signed 32-bit integer.
	I32
	// Float is a double-precision float.
	Float
	// Point is a geospatial point, indexed with a SPATIAL INDEX.
	Point
	// Uuid40 is a 40-hex-character fixed binary value (20 bytes packed).
	Uuid40
	// Uuid32 is a 32-hex-character fixed binary value (16 bytes packed).
	Uuid32
)

// DDL returns the column type fragment for t, or ok=false for Blank,
// which contributes no column.
func (t ColType) DDL() (frag string, ok bool) {
	switch t {
	case Blank:
		return "", false
	case Text:
		return "VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", true
	case ShortText:
		return "VARCHAR(64) CHARACTER SET ascii COLLATE ascii_bin", true
	case Int:
		return "BIGINT", true
	case U32:
		return "INT UNSIGNED", true
	case U16:
		return "SMALLINT UNSIGNED", true
	case U8:
		return "TINYINT UNSIGNED", true
	case I16:
		return "SMALLINT", true
	case I32:
		return "INT", true
	case Float:
		return "DOUBLE", true
	case Point:
		return "POINT", true
	case Uuid40:
		return "BINARY(20)", true
	case Uuid32:
		return "BINARY(16)", true
	default:
		panic(fmt.Sprintf("coltype: unhandled ColType %d", int(t)))
	}
}

// IsSpatial reports whether t needs a SPATIAL INDEX rather than a plain
// one when it participates in a table's key/value index.
func (t ColType) IsSpatial() bool {
	return t == Point
}

// String names the constant for diagnostics; it is not part of any
// wire format.
func (t ColType) String() string {
	switch t {
	case Blank:
		return "Blank"
	case Text:
		return "Text"
	case ShortText:
		return "ShortText"
	case Int:
		return "Int"
	case U32:
		return "U32"
	case U16:
		return "U16"
	case U8:
		return "U8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case Float:
		return "Float"
	case Point:
		return "Point"
	case Uuid40:
		return "Uuid40"
	case Uuid32:
		return "Uuid32"
	default:
		return fmt.Sprintf("ColType(%d)", int(t))
	}
}
