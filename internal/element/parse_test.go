package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIRIEntityKeys(t *testing.T) {
	tests := []struct {
		name string
		iri  string
		want string
	}{
		{"item", "http://www.wikidata.org/entity/Q42", "Q42"},
		{"property", "http://www.wikidata.org/entity/P31", "P31"},
		{"media", "http://www.wikidata.org/entity/M100", "M100"},
		{"lexeme", "http://www.wikidata.org/entity/L5", "L5"},
		{"lexeme form", "http://www.wikidata.org/entity/L5-F3", "L5-F3"},
		{"lexeme sense", "http://www.wikidata.org/entity/L5-S2", "L5-S2"},
		{"unknown", "http://www.wikidata.org/entity/XYZ", "XYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := ParseIRI(tt.iri)
			ref, ok := el.(EntityRef)
			require.True(t, ok, "expected an EntityRef, got %T", el)
			assert.Equal(t, tt.want, ref.Lexical())
		})
	}
}

func TestParseIRIEntityKeyColumnCounts(t *testing.T) {
	assert.Len(t, ParseIRI("http://www.wikidata.org/entity/Q42").ColumnLayout(), 1)
	assert.Len(t, ParseIRI("http://www.wikidata.org/entity/L5-F3").ColumnLayout(), 2)
}

func TestParseIRIPredicateRoles(t *testing.T) {
	tests := []struct {
		iri      string
		wantKind string
	}{
		{"http://www.wikidata.org/prop/direct/P31", KindPropertyDirect},
		{"http://www.wikidata.org/prop/direct-normalized/P31", KindPropertyDirectNormalized},
		{"http://www.wikidata.org/prop/statement/P31", KindPropertyStatement},
		{"http://www.wikidata.org/prop/statement/value/P31", KindPropertyStatementValue},
		{"http://www.wikidata.org/prop/statement/value-normalized/P31", KindPropertyStatementValueNormalized},
		{"http://www.wikidata.org/prop/reference/P31", KindPropertyReference},
		{"http://www.wikidata.org/prop/reference/value/P31", KindPropertyReferenceValue},
		{"http://www.wikidata.org/prop/qualifier/P31", KindPropertyQualifier},
		{"http://www.wikidata.org/prop/qualifier/value/P31", KindPropertyQualifierValue},
		{"http://www.wikidata.org/prop/P31", KindProperty},
	}
	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			el := ParseIRI(tt.iri)
			assert.Equal(t, tt.wantKind, el.KindName())
			assert.Equal(t, "P31", el.Lexical())
		})
	}
}

func TestParseIRIPropertyStatementValueNormalizedTableFragmentIsAbbreviated(t *testing.T) {
	el := ParseIRI("http://www.wikidata.org/prop/statement/value-normalized/P31")
	assert.Equal(t, "PSVN_P31", el.TableFragment())
}

func TestParseIRIEntityStatement(t *testing.T) {
	el := ParseIRI("http://www.wikidata.org/entity/statement/Q42-1f2e3d4c5b6a79889900aabbccddeeff")
	stmt, ok := el.(EntityStatement)
	require.True(t, ok, "expected an EntityStatement, got %T", el)
	assert.Equal(t, "Q42", stmt.Entity.Lexical())
}

func TestParseIRIReferenceAndValue(t *testing.T) {
	ref := ParseIRI("http://www.wikidata.org/reference/1f2e3d4c5b6a79889900aabbccddeeff00112233")
	assert.Equal(t, KindReference, ref.KindName())

	val := ParseIRI("http://www.wikidata.org/value/1f2e3d4c5b6a79889900aabbccddeeff")
	assert.Equal(t, KindValue, val.KindName())
}

func TestParseIRIBadUUIDDegradesToURL(t *testing.T) {
	el := ParseIRI("http://www.wikidata.org/reference/not-a-uuid")
	assert.Equal(t, KindURL, el.KindName())
}

func TestParseIRIFixedURIs(t *testing.T) {
	tests := []struct {
		iri  string
		kind string
	}{
		{"http://wikiba.se/ontology#geoLatitude", KindLatitude},
		{"http://wikiba.se/ontology#geoLongitude", KindLongitude},
		{"http://www.w3.org/2000/01/rdf-schema#label", KindRdfSchemaLabel},
		{"http://www.w3.org/1999/02/22-rdf-syntax-ns#type", KindW3RdfSyntaxNsType},
		{"http://schema.org/description", KindSchemaOrgDescription},
		{"http://purl.org/dc/terms/language", KindPurlLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			el := ParseIRI(tt.iri)
			assert.Equal(t, tt.kind, el.KindName())
			assert.Empty(t, el.ColumnLayout())
			assert.Empty(t, el.StoredValues())
			assert.Equal(t, tt.iri, el.Lexical())
		})
	}
}

func TestParseIRIUnrecognizedFragmentDegradesToURL(t *testing.T) {
	el := ParseIRI("http://schema.org/notARecognizedFragment")
	assert.Equal(t, KindURL, el.KindName())
}

func TestParseIRIWikiPage(t *testing.T) {
	el := ParseIRI("https://en.wikipedia.org/wiki/Go_(programming_language)")
	page, ok := el.(WikiPage)
	require.True(t, ok, "expected a WikiPage, got %T", el)
	assert.Equal(t, "en.wikipedia.org", page.Host)
	assert.Equal(t, "Go_(programming_language)", page.Page)
}

func TestParseIRINoSlashDegradesToURL(t *testing.T) {
	el := ParseIRI("not-a-url-at-all")
	assert.Equal(t, KindURL, el.KindName())
	assert.Equal(t, "not-a-url-at-all", el.Lexical())
}

func TestParseLiteralPlainText(t *testing.T) {
	el := ParseLiteral("Douglas Adams", "", "")
	assert.Equal(t, Text{S: "Douglas Adams"}, el)
}

func TestParseLiteralLanguageTagged(t *testing.T) {
	el := ParseLiteral("Douglas Adams", "en", "")
	assert.Equal(t, TextInLanguage{Text: "Douglas Adams", Lang: "en"}, el)
}

func TestParseLiteralTypedDispatch(t *testing.T) {
	dt := ParseLiteral("1979-10-12T00:00:00Z", "", "http://www.w3.org/2001/XMLSchema#dateTime")
	require.IsType(t, DateTime{}, dt)
	assert.Equal(t, "1979-10-12T00:00:00Z", dt.Lexical())

	i := ParseLiteral("42", "", "http://www.w3.org/2001/XMLSchema#integer")
	assert.Equal(t, Int{V: 42}, i)

	f := ParseLiteral("3.5", "", "http://www.w3.org/2001/XMLSchema#double")
	assert.Equal(t, Float{V: 3.5}, f)

	p := ParseLiteral("Point(-0.12 51.5)", "", "http://www.opengis.net/ont/geosparql#wktLiteral")
	require.IsType(t, LatLon{}, p)
}

func TestParseLiteralUnrecognizedDatatypeDegradesToURL(t *testing.T) {
	el := ParseLiteral("whatever", "", "http://example.com/unknown-type")
	assert.Equal(t, URL{S: "whatever"}, el)
}
