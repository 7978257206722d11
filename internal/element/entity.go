package element

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

var (
	reEntityItem        = regexp.MustCompile(`(?i)^[Q](\d+)$`)
	reEntityProperty    = regexp.MustCompile(`(?i)^[P](\d+)$`)
	reEntityMedia       = regexp.MustCompile(`(?i)^[M](\d+)$`)
	reEntityLexemeForm  = regexp.MustCompile(`(?i)^[L](\d+)-[F](\d+)$`)
	reEntityLexemeSense = regexp.MustCompile(`(?i)^[L](\d+)-[S](\d+)$`)
	reEntityLexeme      = regexp.MustCompile(`(?i)^[L](\d+)$`)
)

// EntityRef is a parsed Wikidata entity key: an item, property, media file,
// lexeme, or one of a lexeme's forms/senses. Unrecognized keys are kept
// verbatim as Unknown rather than rejected, matching the parser's
// never-panic policy.
type EntityRef struct {
	variant entityVariant
	n1, n2  uint64
	raw     string
}

type entityVariant int

const (
	entityItem entityVariant = iota
	entityProperty
	entityMedia
	entityLexeme
	entityLexemeForm
	entityLexemeSense
	entityUnknown
)

// ParseEntityKey classifies a bare entity key (no leading namespace), e.g.
// "Q42", "P31", "L5-F3". Matching order follows the most specific pattern
// first: lexeme forms and senses before the bare lexeme.
func ParseEntityKey(key string) EntityRef {
	if m := reEntityItem.FindStringSubmatch(key); m != nil {
		return EntityRef{variant: entityItem, n1: mustUint(m[1])}
	}
	if m := reEntityProperty.FindStringSubmatch(key); m != nil {
		return EntityRef{variant: entityProperty, n1: mustUint(m[1])}
	}
	if m := reEntityMedia.FindStringSubmatch(key); m != nil {
		return EntityRef{variant: entityMedia, n1: mustUint(m[1])}
	}
	if m := reEntityLexemeForm.FindStringSubmatch(key); m != nil {
		return EntityRef{variant: entityLexemeForm, n1: mustUint(m[1]), n2: mustUint(m[2])}
	}
	if m := reEntityLexemeSense.FindStringSubmatch(key); m != nil {
		return EntityRef{variant: entityLexemeSense, n1: mustUint(m[1]), n2: mustUint(m[2])}
	}
	if m := reEntityLexeme.FindStringSubmatch(key); m != nil {
		return EntityRef{variant: entityLexeme, n1: mustUint(m[1])}
	}
	return EntityRef{variant: entityUnknown, raw: key}
}

func mustUint(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// Digits already validated by the regex; only an overflow lands
		// here, which yields 0 rather than an error per the
		// never-panic parsing policy.
		return 0
	}
	return v
}

func (e EntityRef) KindName() string {
	switch e.variant {
	case entityItem:
		return KindEntityItem
	case entityProperty:
		return KindEntityProperty
	case entityMedia:
		return KindEntityMedia
	case entityLexeme:
		return KindEntityLexeme
	case entityLexemeForm:
		return KindEntityLexemeForm
	case entityLexemeSense:
		return KindEntityLexemeSense
	default:
		return KindEntityUnknown
	}
}

func (e EntityRef) TableFragment() string { return e.KindName() }

func (e EntityRef) ColumnLayout() []coltype.ColType {
	switch e.variant {
	case entityItem, entityMedia, entityLexeme:
		return []coltype.ColType{coltype.U32}
	case entityProperty:
		return []coltype.ColType{coltype.U16}
	case entityLexemeForm, entityLexemeSense:
		return []coltype.ColType{coltype.U32, coltype.U8}
	default:
		return []coltype.ColType{coltype.ShortText}
	}
}

func (e EntityRef) StoredValues() []sqlvalue.Value {
	switch e.variant {
	case entityItem, entityProperty, entityMedia, entityLexeme:
		return []sqlvalue.Value{sqlvalue.Int(int64(e.n1))}
	case entityLexemeForm, entityLexemeSense:
		return []sqlvalue.Value{sqlvalue.Int(int64(e.n1)), sqlvalue.Int(int64(e.n2))}
	default:
		return []sqlvalue.Value{sqlvalue.Bound(e.raw)}
	}
}

func (e EntityRef) Lexical() string {
	switch e.variant {
	case entityItem:
		return fmt.Sprintf("Q%d", e.n1)
	case entityProperty:
		return fmt.Sprintf("P%d", e.n1)
	case entityMedia:
		return fmt.Sprintf("M%d", e.n1)
	case entityLexeme:
		return fmt.Sprintf("L%d", e.n1)
	case entityLexemeForm:
		return fmt.Sprintf("L%d-F%d", e.n1, e.n2)
	case entityLexemeSense:
		return fmt.Sprintf("L%d-S%d", e.n1, e.n2)
	default:
		return e.raw
	}
}

// URL renders e's canonical wikidata.org entity IRI.
func (e EntityRef) URL() string {
	if e.variant == entityUnknown {
		return e.raw
	}
	return "http://www.wikidata.org/entity/" + e.Lexical()
}

// EntityStatement is the subject of a statement node: the owning entity
// plus the statement's UUID32 discriminator, e.g.
// "Q42-1f2e3d4c-0000-0000-0000-000000000000".
type EntityStatement struct {
	Entity EntityRef
	UUID   UUID32
}

// ParseEntityStatementKey splits a statement key on its first '-' into the
// owning entity key and the remaining UUID text.
func ParseEntityStatementKey(key string) (EntityStatement, error) {
	idx := strings.IndexByte(key, '-')
	if idx < 0 {
		return EntityStatement{}, fmt.Errorf("element: entity statement key %q has no '-' separator", key)
	}
	uuid, err := ParseUUID32(key[idx+1:])
	if err != nil {
		return EntityStatement{}, fmt.Errorf("element: entity statement key %q: %w", key, err)
	}
	return EntityStatement{Entity: ParseEntityKey(key[:idx]), UUID: uuid}, nil
}

func (s EntityStatement) KindName() string     { return KindEntityStatement }
func (s EntityStatement) TableFragment() string { return KindEntityStatement }

func (s EntityStatement) ColumnLayout() []coltype.ColType {
	return append(s.Entity.ColumnLayout(), s.UUID.ColumnLayout()...)
}

func (s EntityStatement) StoredValues() []sqlvalue.Value {
	return append(s.Entity.StoredValues(), s.UUID.StoredValues()...)
}

func (s EntityStatement) Lexical() string {
	return s.Entity.Lexical() + "-" + s.UUID.Lexical()
}
