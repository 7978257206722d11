// Package mysqlbackend is the live execution backend: a pooled
// database/sql connection to MySQL, registering every derived table's
// DDL, persisting the table_list mirror the registry rehydrates from on
// restart, and running the query planner's SELECTs. Grounded on
// internal/apply.Applier's Connect/Close and its *sql.DB usage.
package mysqlbackend

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"wdqsbe/internal/backend"
	"wdqsbe/internal/config"
	"wdqsbe/internal/ingestlog"
	"wdqsbe/internal/tabledef"
)

// Backend is a pooled MySQL connection satisfying registry.Backend,
// cache.Execer, and query.Backend.
type Backend struct {
	db  *sql.DB
	log *ingestlog.Logger
}

// Open dials cfg.ToolDB.URL and sizes the pool from min/max connections
// and the keep-alive duration, the way cmd/smf/main.go's db connection
// setup and internal/apply.Applier.Connect do. The texts and table_list
// side tables are created if missing before Open returns.
func Open(ctx context.Context, cfg *config.Config, log *ingestlog.Logger) (*Backend, error) {
	if log == nil {
		log = ingestlog.New(nil)
	}
	db, err := sql.Open("mysql", cfg.ToolDB.URL)
	if err != nil {
		return nil, fmt.Errorf("mysqlbackend: open: %w", err)
	}
	if cfg.ToolDB.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.ToolDB.MaxConnections)
	}
	if cfg.ToolDB.MinConnections > 0 {
		db.SetMaxIdleConns(cfg.ToolDB.MinConnections)
	}
	if cfg.ToolDB.KeepSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ToolDB.KeepSec) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysqlbackend: ping: %w", err)
	}

	b := &Backend{db: db, log: log}
	if err := b.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	return b.db.Close()
}

// InitSchema creates the texts and table_list side tables if they don't
// already exist. Open calls this itself, so a fresh Backend is always
// ready to provision and persist; it is also safe (and idempotent) for
// a caller to invoke again, the same way every backend's InitSchema is
// called uniformly regardless of which one is configured.
func (b *Backend) InitSchema(ctx context.Context) error {
	for _, stmt := range []string{backend.TextsDDL, backend.TableListDDL} {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysqlbackend: provisioning side table: %w", err)
		}
	}
	return nil
}

// ProvisionTable creates def's backing table and records it in
// table_list, satisfying registry.Backend.
func (b *Backend) ProvisionTable(ctx context.Context, def tabledef.TableDef) error {
	if _, err := b.db.ExecContext(ctx, def.CreateStatement(b.log.WarnFunc())); err != nil {
		return fmt.Errorf("mysqlbackend: creating table %s: %w", def.Name, err)
	}
	encoded, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("mysqlbackend: encoding table_list row for %s: %w", def.Name, err)
	}
	if _, err := b.db.ExecContext(ctx,
		"INSERT IGNORE INTO `table_list` (`name`, `def`) VALUES (?, ?)", def.Name, string(encoded)); err != nil {
		return fmt.Errorf("mysqlbackend: persisting table_list row for %s: %w", def.Name, err)
	}
	return nil
}

// LoadTableDefs reads every persisted TableDef from table_list,
// satisfying registry.Backend and enabling InitFromPersistence to
// rehydrate the registry across a restart.
func (b *Backend) LoadTableDefs(ctx context.Context) ([]tabledef.TableDef, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT `def` FROM `table_list`")
	if err != nil {
		return nil, fmt.Errorf("mysqlbackend: loading table_list: %w", err)
	}
	defer rows.Close()

	var defs []tabledef.TableDef
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("mysqlbackend: scanning table_list row: %w", err)
		}
		var def tabledef.TableDef
		if err := json.Unmarshal([]byte(encoded), &def); err != nil {
			return nil, fmt.Errorf("mysqlbackend: decoding table_list row: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// ExecContext runs one insert statement built by the operation cache,
// satisfying cache.Execer.
func (b *Backend) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := b.db.ExecContext(ctx, query, args...)
	return err
}

// RunQuery runs one query-planner group and decodes every row into its
// projected column aliases, satisfying query.Backend.
func (b *Backend) RunQuery(ctx context.Context, query string, binds []any) ([]map[string]sql.NullString, error) {
	rows, err := b.db.QueryContext(ctx, query, binds...)
	if err != nil {
		return nil, fmt.Errorf("mysqlbackend: running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("mysqlbackend: reading columns: %w", err)
	}

	var results []map[string]sql.NullString
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("mysqlbackend: scanning row: %w", err)
		}
		row := make(map[string]sql.NullString, len(cols))
		for i, c := range cols {
			row[c] = cells[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
