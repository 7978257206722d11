// Package config loads the JSON configuration that selects a backend,
// sizes the connection pool and operation cache, and declares the
// prefix table used by replace_prefix.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"wdqsbe/internal/wdqserr"
)

// DBType selects which execution backend a Config wires up.
type DBType string

const (
	MySQL       DBType = "mysql"
	MySQLStdout DBType = "mysql_stdout"
)

// ToolDB is the connection-pool sizing block.
type ToolDB struct {
	URL            string `json:"url"`
	MinConnections int    `json:"min_connections"`
	MaxConnections int    `json:"max_connections"`
	KeepSec        int    `json:"keep_sec"`
}

// Config is the full set of enumerated keys from the external
// interface contract. Zero-valued optional fields get their documented
// defaults applied by Load.
type Config struct {
	DBType           DBType            `json:"db_type"`
	ToolDB           ToolDB            `json:"tool_db"`
	InsertBatchSize  int               `json:"insert_batch_size"`
	InsertChunkSize  int               `json:"insert_chunk_size"`
	ParallelParsing  int               `json:"parallel_parsing"`
	Prefixes         map[string]string `json:"prefixes"`
}

const (
	defaultInsertBatchSize = 100
	defaultInsertChunkSize = 100
	defaultParallelParsing = 100
)

// Load reads and validates the JSON config file at path, applying
// documented defaults for any omitted sizing key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wdqserr.New(wdqserr.IO, "config.Load", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, wdqserr.New(wdqserr.Config, "config.Load", err)
	}

	if cfg.DBType == "" {
		return nil, wdqserr.Configf("missing required key db_type")
	}
	if cfg.DBType != MySQL && cfg.DBType != MySQLStdout {
		return nil, wdqserr.Configf("unknown db_type %q", cfg.DBType)
	}
	if cfg.DBType == MySQL && cfg.ToolDB.URL == "" {
		return nil, wdqserr.Configf("missing required key tool_db.url for db_type=mysql")
	}

	if cfg.InsertBatchSize == 0 {
		cfg.InsertBatchSize = defaultInsertBatchSize
	}
	if cfg.InsertChunkSize == 0 {
		cfg.InsertChunkSize = defaultInsertChunkSize
	}
	if cfg.ParallelParsing == 0 {
		cfg.ParallelParsing = defaultParallelParsing
	}
	if cfg.Prefixes == nil {
		cfg.Prefixes = map[string]string{}
	}

	return &cfg, nil
}

// ReplacePrefix normalizes whitespace around the colon in "pfx:local",
// lowercases the prefix, and returns prefixes[pfx] + local. An unknown
// prefix, or input with no colon, is returned unchanged.
func (c *Config) ReplacePrefix(s string) string {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return s
	}
	prefix := strings.ToLower(strings.TrimSpace(s[:idx]))
	local := strings.TrimSpace(s[idx+1:])
	root, ok := c.Prefixes[prefix]
	if !ok {
		return s
	}
	return root + local
}
