package tabledef

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdqsbe/internal/coltype"
	"wdqsbe/internal/element"
)

func TestNewDerivesNameFromFragments(t *testing.T) {
	subject := element.ParseEntityKey("Q42")
	predicate := element.NewPropertyDirect("P31")
	object := element.ParseEntityKey("Q5")

	def := New(subject, predicate, object)

	assert.Equal(t, "data__PropertyDirect_P31__EntityItem__EntityItem", def.Name)
	assert.Equal(t, "EntityItem", def.SubjectKind)
	assert.Equal(t, "PropertyDirect", def.PredicateKind)
	assert.Equal(t, "EntityItem", def.ObjectKind)
	assert.Equal(t, "P31", def.PredicateLexical)
}

func TestNewTruncatesOverlongNames(t *testing.T) {
	subject := element.ParseEntityKey("Q42")
	predicate := element.NewPropertyStatementValueNormalized("P" + strings.Repeat("9", 40))
	object := element.ParseEntityKey("Q5")

	def := New(subject, predicate, object)

	assert.LessOrEqual(t, len(def.Name), maxIdentifierLength)
	assert.True(t, strings.HasPrefix(def.Name, "data__PSVN_"))
}

func TestColumnNamesSkipBlanks(t *testing.T) {
	subject := element.ParseEntityKey("Q42")
	predicate := element.NewPropertyDirect("P31")

	def := New(subject, predicate, element.Text{S: "hello"})
	def.ValueLayout = []coltype.ColType{coltype.Blank, coltype.U32}
	keyCols, valueCols := def.ColumnNames()

	assert.Equal(t, []string{"k0"}, keyCols)
	assert.Equal(t, []string{"v1"}, valueCols)
}

func TestCreateStatementUsesNaturalKeyWhenPossible(t *testing.T) {
	subject := element.ParseEntityKey("Q42")
	predicate := element.NewPropertyDirect("P31")
	object := element.ParseEntityKey("Q5")
	def := New(subject, predicate, object)

	ddl := def.CreateStatement(nil)

	assert.Contains(t, ddl, "`k0` INT UNSIGNED")
	assert.Contains(t, ddl, "`v0` INT UNSIGNED")
	assert.Contains(t, ddl, "PRIMARY KEY (`k0`,`v0`)")
	assert.NotContains(t, ddl, "`id`")
}

func TestCreateStatementAddsSurrogateKeyAndSpatialIndexForPointColumns(t *testing.T) {
	subject := element.ParseEntityKey("Q42")
	predicate := element.NewPropertyDirect("P625")
	object, err := element.ParseLatLon("Point(-0.12 51.5)")
	require.NoError(t, err)
	def := New(subject, predicate, object)

	var warned string
	ddl := def.CreateStatement(func(msg string) { warned = msg })

	assert.Contains(t, ddl, "SPATIAL INDEX")
	assert.Contains(t, ddl, "`id` INT AUTO_INCREMENT")
	assert.Contains(t, ddl, "PRIMARY KEY (`id`)")
	assert.NotEmpty(t, warned)
}
