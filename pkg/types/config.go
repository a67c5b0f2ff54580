package types

import (
	"errors"
	"path/filepath"
)

// ArchiveFileName is the flat file inside DataDir that holds the persisted
// collection, one record per line.
const ArchiveFileName = "library.jsonl"

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// Config holds the storage location for a catalog.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

// ArchivePath returns the full path of the archive file inside DataDir.
func (c Config) ArchivePath() string {
	return filepath.Join(c.DataDir, ArchiveFileName)
}
