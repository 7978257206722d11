package element

import (
	"wdqsbe/internal/coltype"
	"wdqsbe/internal/sqlvalue"
)

// FixedURI is one of a closed set of well-known predicate/object IRIs
// that carry no data of their own — their presence in a triple is the
// entire payload, so they occupy zero columns.
type FixedURI struct{ kind string }

func (f FixedURI) KindName() string                { return f.kind }
func (f FixedURI) TableFragment() string            { return f.kind }
func (f FixedURI) ColumnLayout() []coltype.ColType  { return nil }
func (f FixedURI) StoredValues() []sqlvalue.Value   { return nil }
func (f FixedURI) Lexical() string                  { return fixedURILexical[f.kind] }

// fixedURIByRootAndKey dispatches a (root, local-key) pair, as produced by
// splitting an IRI on its final '/', to a FixedURI kind. Roots and keys
// mirror the reference implementation's closed recognition tables
// exactly; anything absent here falls through to URL.
var fixedURIByRootAndKey = map[string]map[string]string{
	"http://wikiba.se": {
		"ontology#geoLongitude":      KindLongitude,
		"ontology#geoLatitude":       KindLatitude,
		"ontology#badge":             KindOntologyBadge,
		"ontology#rank":              KindOntologyRank,
		"ontology#NormalRank":        KindOntologyNormalRank,
		"ontology#BestRank":          KindOntologyBestRank,
		"ontology#identifiers":       KindOntologyIdentifiers,
		"ontology#statementProperty": KindOntologyStatementProperty,
		"ontology#lemma":             KindOntologyLemma,
		"ontology#statements":        KindOntologyStatements,
		"ontology#sitelinks":         KindOntologySitelinks,
		"ontology#propertyType":      KindOntologyPropertyType,
		"ontology#ExternalId":        KindOntologyExternalID,
		"ontology#claim":             KindOntologyClaim,
		"ontology#directClaim":       KindOntologyDirectClaim,
	},
	"http://purl.org/dc/terms": {
		"language": KindPurlLanguage,
	},
	"http://www.w3.org/2000/01": {
		"rdf-schema#label": KindRdfSchemaLabel,
	},
	"http://www.w3.org/ns": {
		"prov#wasDerivedFrom": KindWasDerivedFrom,
	},
	"http://www.w3.org/1999/02": {
		"22-rdf-syntax-ns#type": KindW3RdfSyntaxNsType,
	},
	"http://www.w3.org/ns/lemon": {
		"ontolex#lexicalForm":   KindW3OntolexLexicalForm,
		"ontolex#representation": KindW3OntolexRepresentation,
	},
	"http://www.w3.org/2004/02/skos": {
		"core#altLabel": KindW3SkosCoreAltLabel,
	},
	"http://schema.org": {
		"inLanguage":    KindSchemaOrgInLanguage,
		"isPartOf":      KindSchemaOrgIsPartOf,
		"about":         KindSchemaOrgAbout,
		"name":          KindSchemaOrgName,
		"version":       KindSchemaOrgVersion,
		"dateModified":  KindSchemaOrgDateModified,
		"Article":       KindSchemaOrgArticle,
		"description":   KindSchemaOrgDescription,
	},
}

// fixedURILexical is the inverse of fixedURIByRootAndKey, built once at
// init from the same table so the two can never drift apart.
var fixedURILexical = func() map[string]string {
	m := make(map[string]string)
	for root, keys := range fixedURIByRootAndKey {
		for key, kind := range keys {
			m[kind] = root + "/" + key
		}
	}
	return m
}()
