// Package linesource opens an N-Triples dump for line-by-line reading,
// transparently decompressing it when its extension says it is
// gzip- or bzip2-compressed.
package linesource

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Source is an open dump file's line reader plus the underlying handles
// that must be closed once scanning is done.
type Source struct {
	scanner *bufio.Scanner
	closers []io.Closer
}

// Open detects the dump's compression from its filename extension
// (".gz" for gzip, ".bz2" for bzip2, anything else is read as plain
// text) and returns a Source ready for Scan/Text/Err.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linesource: opening %s: %w", path, err)
	}

	var r io.Reader = f
	closers := []io.Closer{f}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("linesource: opening gzip stream %s: %w", path, err)
		}
		r = gz
		closers = append(closers, gz)
	case strings.HasSuffix(path, ".bz2"):
		r = bzip2.NewReader(f)
	}

	scanner := bufio.NewScanner(r)
	// Wikidata dump lines (long literal values, IRIs) can exceed the
	// scanner's 64KB default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &Source{scanner: scanner, closers: closers}, nil
}

// Scan advances to the next line, returning false at EOF or on error.
func (s *Source) Scan() bool { return s.scanner.Scan() }

// Text returns the current line without its terminator.
func (s *Source) Text() string { return s.scanner.Text() }

// Err returns the first non-EOF error encountered by Scan.
func (s *Source) Err() error { return s.scanner.Err() }

// Close releases the underlying file (and decompressor, if any).
func (s *Source) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
