package element

import (
	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

// Text is an untagged string literal, stored by its interned surrogate
// key in the shared texts table.
type Text struct{ S string }

func (t Text) KindName() string                 { return KindText }
func (t Text) TableFragment() string             { return KindText }
func (t Text) ColumnLayout() []coltype.ColType   { return []coltype.ColType{coltype.U32} }
func (t Text) StoredValues() []sqlvalue.Value    { return []sqlvalue.Value{sqlvalue.InternedText(t.S)} }
func (t Text) Lexical() string                   { return t.S }

// TextInLanguage is a language-tagged string literal, e.g. "Douglas
// Adams"@en. Both the text and the language tag are interned separately.
type TextInLanguage struct {
	Text string
	Lang string
}

func (t TextInLanguage) KindName() string     { return KindTextInLanguage }
func (t TextInLanguage) TableFragment() string { return KindTextInLanguage }
func (t TextInLanguage) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.U32, coltype.U32}
}
func (t TextInLanguage) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{sqlvalue.InternedText(t.Text), sqlvalue.InternedText(t.Lang)}
}
func (t TextInLanguage) Lexical() string { return t.Text + "@" + t.Lang }

// WikiPage is a wiki article IRI, decomposed into its host and page
// title, e.g. "https://en.wikipedia.org/wiki/Go_(programming_language)".
type WikiPage struct {
	Host string
	Page string
}

func (w WikiPage) KindName() string     { return KindWikiPage }
func (w WikiPage) TableFragment() string { return KindWikiPage }
func (w WikiPage) ColumnLayout() []coltype.ColType {
	return []coltype.ColType{coltype.U32, coltype.U32}
}
func (w WikiPage) StoredValues() []sqlvalue.Value {
	return []sqlvalue.Value{sqlvalue.InternedText(w.Host), sqlvalue.InternedText(w.Page)}
}
func (w WikiPage) Lexical() string { return "https://" + w.Host + "/wiki/" + w.Page }

// URL is the catch-all for any IRI or typed literal this module does not
// recognize; it stores the original lexical form, interned.
type URL struct{ S string }

func (u URL) KindName() string                 { return KindURL }
func (u URL) TableFragment() string             { return KindURL }
func (u URL) ColumnLayout() []coltype.ColType   { return []coltype.ColType{coltype.U32} }
func (u URL) StoredValues() []sqlvalue.Value    { return []sqlvalue.Value{sqlvalue.InternedText(u.S)} }
func (u URL) Lexical() string                   { return u.S }
