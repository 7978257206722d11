// Package ingest is the write-pipeline coordinator: it owns the schema
// registry and the per-table operation caches, bounds the number of
// in-flight line-parsing tasks, and applies the ingest-time best-effort
// first-error rule (log and continue past malformed lines) described by
// the concurrency model.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"wdqsbe/internal/cache"
	"wdqsbe/internal/ingestlog"
	"wdqsbe/internal/linesource"
	"wdqsbe/internal/ntriples"
	"wdqsbe/internal/registry"
	"wdqsbe/internal/sqlvalue"
	"wdqsbe/internal/wdqserr"
)

// Stats counts how a run split between cleanly ingested and skipped
// lines. Safe for concurrent use during a run; read its fields after
// IngestFile returns.
type Stats struct {
	Ingested atomic.Int64
	Skipped  atomic.Int64
}

// Coordinator drives one ingest run against a shared registry and
// cache. The same Coordinator may run several files sequentially; the
// registry and cache persist shapes and buffered rows across calls.
type Coordinator struct {
	registry    *registry.Registry
	cache       *cache.Cache
	log         *ingestlog.Logger
	maxInFlight int
}

// New builds a Coordinator. maxInFlight bounds concurrent line-parsing
// tasks (the task-explosion guard in the concurrency model); 0 applies
// the documented default of 100.
func New(reg *registry.Registry, c *cache.Cache, log *ingestlog.Logger, maxInFlight int) *Coordinator {
	if log == nil {
		log = ingestlog.New(nil)
	}
	if maxInFlight <= 0 {
		maxInFlight = 100
	}
	return &Coordinator{registry: reg, cache: c, log: log, maxInFlight: maxInFlight}
}

// IngestFile streams path line by line, parsing and buffering each
// triple concurrently up to maxInFlight in flight at once. A line that
// fails to parse, or whose shape fails to provision, is logged and
// skipped rather than aborting the run (ingest's best-effort rule); a
// failure to read the source file itself is fatal. Every table with
// pending rows is flushed before IngestFile returns.
func (c *Coordinator) IngestFile(ctx context.Context, path string) (*Stats, error) {
	src, err := linesource.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	stats := &Stats{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxInFlight)

	for src.Scan() {
		line := src.Text()
		g.Go(func() error {
			if err := c.ingestLine(gctx, line); err != nil {
				if !isBlank(line) {
					c.log.Warnf("skipping line: %v", err)
				}
				stats.Skipped.Add(1)
				return nil
			}
			stats.Ingested.Add(1)
			return nil
		})
	}
	if err := src.Err(); err != nil {
		return stats, wdqserr.New(wdqserr.IO, "ingest.IngestFile", fmt.Errorf("reading %s: %w", path, err))
	}
	// g.Wait never actually returns an error: ingestLine's failures are
	// swallowed into Stats.Skipped above, matching ingest's best-effort
	// first-error rule (queries use the strict variant, see package
	// query).
	_ = g.Wait()

	if err := c.cache.FlushAll(ctx); err != nil {
		return stats, wdqserr.New(wdqserr.Storage, "ingest.IngestFile", err)
	}
	return stats, nil
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

func (c *Coordinator) ingestLine(ctx context.Context, line string) error {
	if isBlank(line) {
		return wdqserr.Parsef("blank line")
	}
	triple, err := ntriples.ParseLine(line)
	if err != nil {
		return wdqserr.New(wdqserr.Parse, "ntriples.ParseLine", err)
	}

	def, err := c.registry.GetOrCreate(ctx, triple.Subject, triple.Predicate, triple.Object)
	if err != nil {
		return wdqserr.New(wdqserr.Storage, "registry.GetOrCreate", err)
	}

	values := make([]sqlvalue.Value, 0, len(def.KeyLayout)+len(def.ValueLayout))
	values = append(values, triple.Subject.StoredValues()...)
	values = append(values, triple.Object.StoredValues()...)

	if err := c.cache.Add(ctx, def, values); err != nil {
		return wdqserr.New(wdqserr.Schema, "cache.Add", err)
	}
	return nil
}
