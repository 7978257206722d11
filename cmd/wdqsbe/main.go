// Package main is the wdqsbe CLI: ingest N-Triples dumps into a
// dynamically derived relational schema and answer triple-pattern
// queries over it. Built with cobra, following the same rootCmd +
// subcommand shape as cmd/smf/main.go.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"wdqsbe/internal/backend/mysqlbackend"
	"wdqsbe/internal/backend/stdoutbackend"
	"wdqsbe/internal/backend/stmtsplit"
	"wdqsbe/internal/cache"
	"wdqsbe/internal/config"
	"wdqsbe/internal/ingest"
	"wdqsbe/internal/ingestlog"
	"wdqsbe/internal/query"
	"wdqsbe/internal/registry"
)

// sampleSubject, samplePredicate, sampleObject are the built-in smoke
// test query named in §6: "humans" (instance-of human).
const (
	sampleSubject   = "?h"
	samplePredicate = "wdt:P31"
	sampleObject    = "wd:Q5"
)

type rootFlags struct {
	configPath string
	importPath string
	dbType     string
}

type loadFlags struct {
	dsn    string
	file   string
	dryRun bool
}

func main() {
	root := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "wdqsbe",
		Short: "Ingest Wikidata-shaped N-Triples dumps and query them",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRoot(root)
		},
	}
	rootCmd.Flags().StringVar(&root.configPath, "config", "wdqsbe.json", "path to the JSON config file")
	rootCmd.Flags().StringVar(&root.importPath, "import", "", "N-Triples file to ingest (plain, .gz, or .bz2)")
	rootCmd.Flags().StringVar(&root.dbType, "dbtype", "", "override config's db_type (mysql or mysql_stdout)")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(loadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// execBackend is what every run needs from whichever backend config
// selects: registry persistence, cache execution, and query execution.
// InitSchema is called once right after a backend is opened, for every
// db_type alike, so the texts/table_list side tables always precede any
// statement that references them — including in the stdout backend's
// emitted dump.
type execBackend interface {
	registry.Backend
	cache.Execer
	query.Backend
	InitSchema(ctx context.Context) error
	Close() error
}

type stdoutExecBackend struct{ *stdoutbackend.Backend }

func (s stdoutExecBackend) Close() error { return s.Flush() }

func openBackend(ctx context.Context, cfg *config.Config, log *ingestlog.Logger) (execBackend, error) {
	var b execBackend
	switch cfg.DBType {
	case config.MySQL:
		mb, err := mysqlbackend.Open(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b = mb
	case config.MySQLStdout:
		b = stdoutExecBackend{stdoutbackend.New(os.Stdout, nil)}
	default:
		return nil, fmt.Errorf("unknown db_type %q", cfg.DBType)
	}
	if err := b.InitSchema(ctx); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func loadConfig(path, dbTypeOverride string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbTypeOverride != "" {
		cfg.DBType = config.DBType(dbTypeOverride)
	}
	return cfg, nil
}

func runRoot(flags *rootFlags) error {
	ctx := context.Background()
	log := ingestlog.New(os.Stderr)

	cfg, err := loadConfig(flags.configPath, flags.dbType)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	reg := registry.New(b, log.WarnFunc())
	if cfg.DBType == config.MySQL {
		if err := reg.InitFromPersistence(ctx); err != nil {
			return err
		}
	}

	if flags.importPath != "" {
		return runIngest(ctx, reg, b, cfg, log, flags.importPath)
	}
	return runSampleQuery(ctx, reg, b)
}

func ingestCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest an N-Triples dump into the derived schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			if flags.importPath == "" {
				return fmt.Errorf("--import is required")
			}
			ctx := context.Background()
			log := ingestlog.New(os.Stderr)
			cfg, err := loadConfig(flags.configPath, flags.dbType)
			if err != nil {
				return err
			}
			b, err := openBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()
			reg := registry.New(b, log.WarnFunc())
			if cfg.DBType == config.MySQL {
				if err := reg.InitFromPersistence(ctx); err != nil {
					return err
				}
			}
			return runIngest(ctx, reg, b, cfg, log, flags.importPath)
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "wdqsbe.json", "path to the JSON config file")
	cmd.Flags().StringVar(&flags.importPath, "import", "", "N-Triples file to ingest (required)")
	cmd.Flags().StringVar(&flags.dbType, "dbtype", "", "override config's db_type")
	return cmd
}

func runIngest(ctx context.Context, reg *registry.Registry, b execBackend, cfg *config.Config, log *ingestlog.Logger, path string) error {
	c := cache.New(b, cfg.InsertBatchSize, cfg.InsertChunkSize)
	coord := ingest.New(reg, c, log, cfg.ParallelParsing)

	stats, err := coord.IngestFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Printf("ingested %d triples, skipped %d\n", stats.Ingested.Load(), stats.Skipped.Load())
	return nil
}

func queryCmd() *cobra.Command {
	flags := &rootFlags{}
	var subject, predicate, object string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a triple pattern query against the current schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			log := ingestlog.New(os.Stderr)
			cfg, err := loadConfig(flags.configPath, flags.dbType)
			if err != nil {
				return err
			}
			b, err := openBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()
			reg := registry.New(b, log.WarnFunc())
			if cfg.DBType == config.MySQL {
				if err := reg.InitFromPersistence(ctx); err != nil {
					return err
				}
			}
			return runQuery(ctx, cfg, reg, b, subject, predicate, object)
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "wdqsbe.json", "path to the JSON config file")
	cmd.Flags().StringVar(&flags.dbType, "dbtype", "", "override config's db_type")
	cmd.Flags().StringVar(&subject, "subject", sampleSubject, "subject term: a concrete prefixed IRI or ?variable")
	cmd.Flags().StringVar(&predicate, "predicate", samplePredicate, "predicate term")
	cmd.Flags().StringVar(&object, "object", sampleObject, "object term")
	return cmd
}

func runSampleQuery(ctx context.Context, reg *registry.Registry, b execBackend) error {
	return runQuery(ctx, &config.Config{Prefixes: defaultPrefixes()}, reg, b, sampleSubject, samplePredicate, sampleObject)
}

func runQuery(ctx context.Context, cfg *config.Config, reg *registry.Registry, b query.Backend, subject, predicate, object string) error {
	if len(cfg.Prefixes) == 0 {
		cfg.Prefixes = defaultPrefixes()
	}
	pattern := query.Pattern{
		Subject:   query.ParseTerm(cfg, subject),
		Predicate: query.ParseTerm(cfg, predicate),
		Object:    query.ParseTerm(cfg, object),
	}
	qt, err := query.From(reg, pattern)
	if err != nil {
		return err
	}
	rows, err := qt.Run(ctx, b)
	if err != nil {
		return err
	}
	for _, row := range rows {
		var parts []string
		for name, el := range row {
			parts = append(parts, fmt.Sprintf("%s=%s", name, el.Lexical()))
		}
		fmt.Println(strings.Join(parts, " "))
	}
	fmt.Printf("%d row(s)\n", len(rows))
	return nil
}

func defaultPrefixes() map[string]string {
	return map[string]string{
		"wd":  "http://www.wikidata.org/entity/",
		"wdt": "http://www.wikidata.org/prop/direct/",
	}
}

func loadCmd() *cobra.Command {
	flags := &loadFlags{}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Preflight-check and optionally apply a generated SQL dump",
		Long: `Splits a stdout-backend SQL dump into statements, warns about
destructive or non-transactional ones, and — unless --dry-run is set —
applies them one by one against --dsn.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLoad(flags)
		},
	}
	cmd.Flags().StringVar(&flags.dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&flags.file, "file", "", "path to the generated SQL dump (required)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the preflight report without applying")
	return cmd
}

func runLoad(flags *loadFlags) error {
	if flags.file == "" {
		return fmt.Errorf("--file is required")
	}
	f, err := os.Open(flags.file)
	if err != nil {
		return fmt.Errorf("opening dump file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading dump file: %w", err)
	}

	stmts := stmtsplit.New().Classify(string(content))
	fmt.Printf("found %d statement(s) in %s\n", len(stmts), flags.file)
	for i, s := range stmts {
		if s.Destructive {
			fmt.Printf("  [%d] DANGER: %s (%s)\n", i+1, s.Type, s.DestructiveReason)
		} else if !s.TransactionSafe {
			fmt.Printf("  [%d] CAUTION: %s (%s)\n", i+1, s.Type, s.UnsafeReason)
		}
	}

	if flags.dryRun {
		fmt.Println("\n=== DRY RUN MODE ===")
		return nil
	}
	if flags.dsn == "" {
		return fmt.Errorf("--dsn is required unless --dry-run")
	}

	ctx := context.Background()
	db, err := sql.Open("mysql", flags.dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	for i, s := range stmts {
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			return fmt.Errorf("statement %d failed: %w\n  %s", i+1, err, s.SQL)
		}
	}
	fmt.Println("load complete")
	return nil
}
