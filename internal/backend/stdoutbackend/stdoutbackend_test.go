package stdoutbackend

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdqsbe/internal/element"
	"wdqsbe/internal/tabledef"
)

func TestProvisionTableWritesCreateStatement(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, nil)
	def := tabledef.New(element.ParseEntityKey("Q42"), element.NewPropertyDirect("P31"), element.ParseEntityKey("Q5"))

	require.NoError(t, b.ProvisionTable(context.Background(), def))
	require.NoError(t, b.Flush())

	assert.Contains(t, buf.String(), "CREATE TABLE IF NOT EXISTS `"+def.Name+"`")
}

func TestInitSchemaWritesSideTablePreambleBeforeInserts(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, nil)

	require.NoError(t, b.InitSchema(context.Background()))
	require.NoError(t, b.ExecContext(context.Background(), "INSERT IGNORE INTO `texts` (`value`) VALUES (?)", "hello"))
	require.NoError(t, b.Flush())

	out := buf.String()
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS `texts`")
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS `table_list`")
	assert.Less(t, strings.Index(out, "CREATE TABLE IF NOT EXISTS `texts`"), strings.Index(out, "INSERT IGNORE INTO `texts`"),
		"texts table must be created before anything inserts into it")
}

func TestExecContextInlinesStringArgsWithEscaping(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, nil)

	err := b.ExecContext(context.Background(), "INSERT IGNORE INTO `texts` (`value`) VALUES (?)", `say "hi"\n`)
	require.NoError(t, err)
	require.NoError(t, b.Flush())

	assert.Equal(t, `INSERT IGNORE INTO `+"`texts`"+` (`+"`value`"+`) VALUES ("say \"hi\"\\n");`+"\n", buf.String())
}

func TestExecContextRejectsPlaceholderArgMismatch(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, nil)
	err := b.ExecContext(context.Background(), "SELECT ?, ?", "only-one")
	assert.Error(t, err)
}

func TestRunQueryIsUnsupported(t *testing.T) {
	b := New(nil, nil)
	_, err := b.RunQuery(context.Background(), "SELECT 1", nil)
	assert.Error(t, err)
}

func TestConnectIsUnsupported(t *testing.T) {
	b := New(nil, nil)
	assert.Error(t, b.Connect(context.Background()))
}

func TestNewWritesManifestHeader(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, &Manifest{Database: "wdqsbe", Engine: "Aria"}).Flush()
	assert.Contains(t, buf.String(), "-- database: wdqsbe")
	assert.Contains(t, buf.String(), "-- engine: Aria")
}

func TestLoadManifestDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	require.NoError(t, os.WriteFile(path, []byte("database = \"wdqsbe\"\nengine = \"Aria\"\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "wdqsbe", m.Database)
	assert.Equal(t, "Aria", m.Engine)
}
