// Package jsonfile is the durable-storage collaborator for the catalog. It
// persists the full record collection as a JSONL archive, one record per
// line, and rewrites the file atomically using the temp-file, fsync, rename
// pattern.
package jsonfile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookstead/shelf/pkg/types"
)

// Store reads and writes the archive at Path. The zero value is unusable;
// construct with NewStore.
type Store struct {
	path string
}

// NewStore returns a Store backed by the archive file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the archive file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the archive and returns the persisted records in file order.
// A missing archive is not an error; it yields an empty collection (first
// run). An unrecognized record kind or an unparseable line fails the whole
// load: a silently skipped record would be dropped for good on the next
// full rewrite.
func (s *Store) Load() ([]types.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	var records []types.Record
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := DecodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.path, err)
	}
	return records, nil
}

// Save rewrites the archive with the full collection. The write goes to a
// temp file in the target directory, is fsynced, and is renamed over the
// archive, so a failed write never clobbers the previous state.
func (s *Store) Save(records []types.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".library-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		line, err := EncodeRecord(rec)
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("encoding record: %w", err)
		}
		if _, err := w.Write(line); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
