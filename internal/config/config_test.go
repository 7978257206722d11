package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"db_type":"mysql","tool_db":{"url":"user:pass@tcp(127.0.0.1:3306)/wdqsbe"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.InsertBatchSize)
	assert.Equal(t, 100, cfg.InsertChunkSize)
	assert.Equal(t, 100, cfg.ParallelParsing)
	assert.NotNil(t, cfg.Prefixes)
}

func TestLoadRejectsMissingDBType(t *testing.T) {
	path := writeConfig(t, `{}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDBType(t *testing.T) {
	path := writeConfig(t, `{"db_type":"postgres"}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingURLForMysql(t *testing.T) {
	path := writeConfig(t, `{"db_type":"mysql"}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAllowsStdoutBackendWithoutURL(t *testing.T) {
	path := writeConfig(t, `{"db_type":"mysql_stdout"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, MySQLStdout, cfg.DBType)
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestReplacePrefixExpandsKnownPrefix(t *testing.T) {
	cfg := &Config{Prefixes: map[string]string{"wd": "http://www.wikidata.org/entity/"}}
	assert.Equal(t, "http://www.wikidata.org/entity/Q12345", cfg.ReplacePrefix("wd:Q12345"))
}

func TestReplacePrefixNormalizesWhitespaceAndCase(t *testing.T) {
	cfg := &Config{Prefixes: map[string]string{"wd": "http://www.wikidata.org/entity/"}}
	assert.Equal(t, "http://www.wikidata.org/entity/Q12345", cfg.ReplacePrefix("  WD  :  Q12345 "))
}

func TestReplacePrefixLeavesUnknownPrefixUnchanged(t *testing.T) {
	cfg := &Config{Prefixes: map[string]string{}}
	assert.Equal(t, "foo:bar", cfg.ReplacePrefix("foo:bar"))
}

func TestReplacePrefixLeavesNoColonUnchanged(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "foo bar", cfg.ReplacePrefix("foo bar"))
}

func TestConfigJSONRoundTrip(t *testing.T) {
	cfg := Config{DBType: MySQL, ToolDB: ToolDB{URL: "dsn", MinConnections: 1, MaxConnections: 10, KeepSec: 30}}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cfg.ToolDB, decoded.ToolDB)
}
