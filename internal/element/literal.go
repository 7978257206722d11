package element

import (
	"fmt"
	"regexp"
	"strconv"

	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

var reDateTime = regexp.MustCompile(`^([+-]?\d+)-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})Z$`)

// DateTime is an XSD dateTime literal. The year is kept as a signed
// 32-bit column (not the reference implementation's 16-bit one) so that
// the full range of Wikidata's astronomical dates round-trips without
// overflow.
type DateTime struct {
	Year                     int32
	Month, Day               uint8
	Hour, Minute, Second     uint8
}

// ParseDateTime accepts "[+-]YYYY-MM-DDTHH:MM:SSZ", including negative
// (BCE) years.
func ParseDateTime(s string) (DateTime, error) {
	m := reDateTime.FindStringSubmatch(s)
	if m == nil {
		return DateTime{}, fmt.Errorf("element: %q is not a dateTime literal", s)
	}
	year, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return DateTime{}, fmt.Errorf("element: dateTime year %q: %w", m[1], err)
	}
	month, _ := strconv.ParseUint(m[2], 10, 8)
	day, _ := strconv.ParseUint(m[3], 10, 8)
	hour, _ := strconv.ParseUint(m[4], 10, 8)
	minute, _ := strconv.ParseUint(m[5], 10, 8)
	second, _ := strconv.ParseUint(m[6], 10, 8)
	return DateTime{
		Year: int32(year), Month: uint8(month), Day: uint8(day),
		Hour: uint8(hour), Minute: uint8(minute), Second: uint8(second),
	}, nil
}

func (d DateTime) KindName() string     { return KindDateTime }
func (d DateTime) TableFragment() string { return KindDateTime }
func (d DateTime) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.I32, coltype.U8, coltype.U8, coltype.U8, coltype.U8, coltype.U8}
}
func (d DateTime) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{
		sqlvalue.Int(int64(d.Year)), sqlvalue.Int(int64(d.Month)), sqlvalue.Int(int64(d.Day)),
		sqlvalue.Int(int64(d.Hour)), sqlvalue.Int(int64(d.Minute)), sqlvalue.Int(int64(d.Second)),
	}
}
func (d DateTime) Lexical() string {
	return fmt.Sprintf("%d-%02d-%02dT%02d:%02d:%02dZ", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

var (
	reWktPoint     = regexp.MustCompile(`^Point\(([+-]?[0-9.]+)\s+([+-]?[0-9.]+)\)$`)
	reWktPointGlobe = regexp.MustCompile(`^<[^>]*?/[Qq](\d+)>\s+Point\(([+-]?[0-9.]+)\s+([+-]?[0-9.]+)\)$`)
)

// earthGlobe is Wikidata's Q-number for Earth, the default globe for a
// geo-literal with no explicit reference frame.
const earthGlobe = 2

// LatLon is a WKT geospatial point with an optional globe (reference
// body) IRI prefix. Stored column order matches the WKT capture order
// (first number, second number), not geographic latitude/longitude,
// so that Parse and Lexical stay inverses of each other.
type LatLon struct {
	First, Second float64
	Globe         uint32
}

// ParseLatLon accepts either "Point(x y)" (globe defaults to Earth) or
// "<http://www.wikidata.org/entity/Q2> Point(x y)" (explicit globe).
func ParseLatLon(s string) (LatLon, error) {
	if m := reWktPointGlobe.FindStringSubmatch(s); m != nil {
		globe, _ := strconv.ParseUint(m[1], 10, 32)
		first, _ := strconv.ParseFloat(m[2], 64)
		second, _ := strconv.ParseFloat(m[3], 64)
		return LatLon{First: first, Second: second, Globe: uint32(globe)}, nil
	}
	if m := reWktPoint.FindStringSubmatch(s); m != nil {
		first, _ := strconv.ParseFloat(m[1], 64)
		second, _ := strconv.ParseFloat(m[2], 64)
		return LatLon{First: first, Second: second, Globe: earthGlobe}, nil
	}
	return LatLon{}, fmt.Errorf("element: %q is not a WKT point literal", s)
}

func (l LatLon) KindName() string     { return KindLatLon }
func (l LatLon) TableFragment() string { return KindLatLon }
func (l LatLon) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.Point, coltype.U32}
}
func (l LatLon) StoredValues() []sqlvalue.Value {
	point := fmt.Sprintf(`PointFromText("Point(%v %v)")`, l.First, l.Second)
	return []sqlvalue.Value{sqlvalue.RawExpr(point), sqlvalue.Int(int64(l.Globe))}
}
func (l LatLon) Lexical() string {
	if l.Globe == earthGlobe {
		return fmt.Sprintf("Point(%v %v)", l.First, l.Second)
	}
	return fmt.Sprintf("<http://www.wikidata.org/entity/Q%d> Point(%v %v)", l.Globe, l.First, l.Second)
}

// Int is a plain signed integer literal (XSD integer/decimal).
type Int struct{ V int64 }

func (i Int) KindName() string                { return KindInt }
func (i Int) TableFragment() string            { return KindInt }
func (i Int) ColumnLayout() []coltype.ColType  { return []coltype.ColType{coltype.Int} }
func (i Int) StoredValues() []sqlvalue.Value   { return []sqlvalue.Value{sqlvalue.Int(i.V)} }
func (i Int) Lexical() string                  { return strconv.FormatInt(i.V, 10) }

// Float is a double-precision literal (XSD double).
type Float struct{ V float64 }

func (f Float) KindName() string               { return KindFloat }
func (f Float) TableFragment() string           { return KindFloat }
func (f Float) ColumnLayout() []coltype.ColType { return []coltype.ColType{coltype.Float} }
func (f Float) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{sqlvalue.RawExpr(strconv.FormatFloat(f.V, 'g', -1, 64))}
}
func (f Float) Lexical() string { return strconv.FormatFloat(f.V, 'g', -1, 64) }
