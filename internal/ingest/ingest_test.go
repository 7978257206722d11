package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdqsbe/internal/cache"
	"wdqsbe/internal/registry"
	"wdqsbe/internal/tabledef"
)

type fakeBackend struct {
	mu         sync.Mutex
	provisions int
}

func (b *fakeBackend) ProvisionTable(ctx context.Context, def tabledef.TableDef) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.provisions++
	return nil
}

func (b *fakeBackend) LoadTableDefs(ctx context.Context) ([]tabledef.TableDef, error) {
	return nil, nil
}

type fakeExec struct {
	mu    sync.Mutex
	execs int
}

func (e *fakeExec) ExecContext(ctx context.Context, query string, args ...any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.execs++
	return nil
}

func writeDump(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.nt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCoordinator() (*Coordinator, *fakeBackend, *fakeExec) {
	backend := &fakeBackend{}
	exec := &fakeExec{}
	reg := registry.New(backend, nil)
	c := cache.New(exec, 0, 0)
	return New(reg, c, nil, 4), backend, exec
}

func TestIngestFileCleanTriplesAllCounted(t *testing.T) {
	path := writeDump(t,
		`<http://www.wikidata.org/entity/Q42> <http://www.wikidata.org/prop/direct/P31> <http://www.wikidata.org/entity/Q5> .`,
		`<http://www.wikidata.org/entity/Q1> <http://www.wikidata.org/prop/direct/P31> <http://www.wikidata.org/entity/Q5> .`,
	)
	coord, backend, exec := newTestCoordinator()

	stats, err := coord.IngestFile(context.Background(), path)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Ingested.Load())
	assert.EqualValues(t, 0, stats.Skipped.Load())
	assert.Equal(t, 1, backend.provisions, "both lines share one shape, provisioned once")
	assert.Greater(t, exec.execs, 0, "flush must have issued at least one insert")
}

func TestIngestFileSkipsMalformedLinesButContinues(t *testing.T) {
	path := writeDump(t,
		`<http://www.wikidata.org/entity/Q42> <http://www.wikidata.org/prop/direct/P31> <http://www.wikidata.org/entity/Q5> .`,
		`this is not a valid triple`,
		`<http://www.wikidata.org/entity/Q1> <http://www.wikidata.org/prop/direct/P31> <http://www.wikidata.org/entity/Q5> .`,
	)
	coord, _, _ := newTestCoordinator()

	stats, err := coord.IngestFile(context.Background(), path)
	require.NoError(t, err, "malformed lines are skipped, not fatal")
	assert.EqualValues(t, 2, stats.Ingested.Load())
	assert.EqualValues(t, 1, stats.Skipped.Load())
}

func TestIngestFileRejectsMissingSource(t *testing.T) {
	coord, _, _ := newTestCoordinator()
	_, err := coord.IngestFile(context.Background(), "/nonexistent/dump.nt")
	assert.Error(t, err)
}

func TestIngestFileSkipsBlankLinesSilently(t *testing.T) {
	path := writeDump(t,
		``,
		`<http://www.wikidata.org/entity/Q42> <http://www.wikidata.org/prop/direct/P31> <http://www.wikidata.org/entity/Q5> .`,
	)
	coord, _, _ := newTestCoordinator()
	stats, err := coord.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Ingested.Load())
	assert.EqualValues(t, 1, stats.Skipped.Load(), "blank line counted as skipped but not warned")
}
