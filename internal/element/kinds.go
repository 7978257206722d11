package element

// Kind name constants. These strings are persisted in TableDef.kind_names
// (via the schema registry's JSON mirror) and used as the decode-time
// dispatch key, so they must never change once rows have been written
// under them.
const (
	KindText           = "Text"
	KindTextInLanguage = "TextInLanguage"
	KindWikiPage       = "WikiPage"
	KindURL            = "Url"

	KindEntityItem         = "EntityItem"
	KindEntityProperty     = "EntityProperty"
	KindEntityMedia        = "EntityMedia"
	KindEntityLexeme       = "EntityLexeme"
	KindEntityLexemeForm   = "EntityLexemeForm"
	KindEntityLexemeSense  = "EntityLexemeSense"
	KindEntityUnknown      = "EntityUnknown"
	KindEntityStatement    = "EntityStatement"

	KindProperty                         = "Property"
	KindPropertyDirect                   = "PropertyDirect"
	KindPropertyDirectNormalized         = "PropertyDirectNormalized"
	KindPropertyStatement                = "PropertyStatement"
	KindPropertyStatementValue           = "PropertyStatementValue"
	KindPropertyStatementValueNormalized = "PropertyStatementValueNormalized"
	KindPropertyReference                = "PropertyReference"
	KindPropertyReferenceValue           = "PropertyReferenceValue"
	KindPropertyQualifier                = "PropertyQualifier"
	KindPropertyQualifierValue           = "PropertyQualifierValue"

	KindReference = "Reference"
	KindValue     = "Value"

	KindDateTime = "DateTime"
	KindLatLon   = "LatLon"
	KindInt      = "Int"
	KindFloat    = "Float"

	KindLatitude                  = "Latitude"
	KindLongitude                 = "Longitude"
	KindRdfSchemaLabel            = "RdfSchemaLabel"
	KindWasDerivedFrom            = "WasDerivedFrom"
	KindPurlLanguage              = "PurlLanguage"
	KindW3RdfSyntaxNsType         = "W3RdfSyntaxNsType"
	KindW3SkosCoreAltLabel        = "W3SkosCoreAltLabel"
	KindW3OntolexLexicalForm      = "W3OntolexLexicalForm"
	KindW3OntolexRepresentation   = "W3OntolexRepresentation"
	KindSchemaOrgInLanguage       = "SchemaOrgInLanguage"
	KindSchemaOrgIsPartOf         = "SchemaOrgIsPartOf"
	KindSchemaOrgAbout            = "SchemaOrgAbout"
	KindSchemaOrgDescription      = "SchemaOrgDescription"
	KindSchemaOrgName             = "SchemaOrgName"
	KindSchemaOrgArticle          = "SchemaOrgArticle"
	KindSchemaOrgDateModified     = "SchemaOrgDateModified"
	KindSchemaOrgVersion          = "SchemaOrgVersion"
	KindOntologyBadge             = "OntologyBadge"
	KindOntologyRank              = "OntologyRank"
	KindOntologyBestRank          = "OntologyBestRank"
	KindOntologyNormalRank        = "OntologyNormalRank"
	KindOntologyIdentifiers       = "OntologyIdentifiers"
	KindOntologyStatementProperty = "OntologyStatementProperty"
	KindOntologyLemma             = "OntologyLemma"
	KindOntologyStatements        = "OntologyStatements"
	KindOntologySitelinks         = "OntologySitelinks"
	KindOntologyPropertyType      = "OntologyPropertyType"
	KindOntologyExternalID        = "OntologyExternalId"
	KindOntologyClaim             = "OntologyClaim"
	KindOntologyDirectClaim       = "OntologyDirectClaim"
)
