package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstead/shelf/pkg/types"
)

// runShelf executes the root command against the given config and data
// directories, returning combined output.
func runShelf(t *testing.T, configDir, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config-dir", configDir, "--data-dir", dataDir}, args...))
	err := root.Execute()
	return buf.String(), err
}

func testDirs(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	base := t.TempDir()
	return filepath.Join(base, "config"), filepath.Join(base, "data")
}

func TestVersionCommand(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runShelf(t, configDir, dataDir, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shelf v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInitCreatesConfigAndArchive(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runShelf(t, configDir, dataDir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")

	_, err = os.Stat(filepath.Join(configDir, "config.yaml"))
	assert.NoError(t, err, "config.yaml written")
	_, err = os.Stat(filepath.Join(dataDir, types.ArchiveFileName))
	assert.NoError(t, err, "empty archive written")
}

func TestAddAndList(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runShelf(t, configDir, dataDir,
		"add", "book", "--id", "b1", "--title", "Dune", "--author", "Frank Herbert",
		"--isbn", "978-0441013593", "--pages", "412")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Book: b1")

	out, err = runShelf(t, configDir, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Frank Herbert")
}

func TestAddGeneratesIdentifierWhenOmitted(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runShelf(t, configDir, dataDir,
		"add", "ebook", "--title", "Dune", "--size-mb", "3.2", "--format", "EPUB", "--json")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, "EBook", fields["type"])
	assert.NotEmpty(t, fields["resource_id"], "identifier generated")
	assert.Equal(t, "EPUB", fields["file_format"])
}

func TestAddRequiresTitle(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir, "add", "book", "--id", "b1")
	assert.Error(t, err)
}

func TestAddDuplicateFails(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	require.NoError(t, err)

	_, err = runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	assert.ErrorIs(t, err, types.ErrDuplicateID)
}

func TestGetJSON(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir,
		"add", "audiobook", "--id", "a1", "--title", "Dune", "--author", "Frank Herbert",
		"--minutes", "1266", "--narrator", "Scott Brick")
	require.NoError(t, err)

	out, err := runShelf(t, configDir, dataDir, "get", "a1", "--json")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, "Audiobook", fields["type"])
	assert.Equal(t, "Scott Brick", fields["narrator"])
	assert.Equal(t, float64(1266), fields["duration_minutes"])
}

func TestGetNotFound(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir, "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no record with id missing")
}

func TestRemoveAbsentIsLenient(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runShelf(t, configDir, dataDir, "remove", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "No record with id ghost")
}

func TestRemovePresent(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	require.NoError(t, err)

	out, err := runShelf(t, configDir, dataDir, "remove", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed: b1")

	out, err = runShelf(t, configDir, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is empty")
}

func TestExitCodeClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no error", err: nil, want: exitSuccess},
		{name: "system error", err: sysErr(errors.New("disk full")), want: exitSysError},
		{
			name: "wrapped system error",
			err:  fmt.Errorf("add record: %w", sysErr(errors.New("disk full"))),
			want: exitSysError,
		},
		{
			name: "duplicate identifier",
			err:  fmt.Errorf("add record: %w", types.ErrDuplicateID),
			want: exitUserError,
		},
		{name: "invalid identifier", err: types.ErrInvalidID, want: exitUserError},
		{name: "missing title", err: types.ErrInvalidTitle, want: exitUserError},
		{
			name: "absent record",
			err:  fmt.Errorf("no record with id x: %w", types.ErrNotFound),
			want: exitUserError,
		},
		{name: "flag misuse", err: errors.New(`unknown flag: --frobnicate`), want: exitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestStorageFailureIsSystemError(t *testing.T) {
	base := t.TempDir()
	configDir := filepath.Join(base, "config")

	// A regular file where the data directory's parent should be makes
	// every archive open and rewrite fail.
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))
	dataDir := filepath.Join(blocker, "db")

	_, err := runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	require.Error(t, err)
	assert.Equal(t, exitSysError, exitCode(err))

	_, err = runShelf(t, configDir, dataDir, "list")
	require.Error(t, err)
	assert.Equal(t, exitSysError, exitCode(err))
}

func TestCallerMistakesAreUserErrors(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	require.NoError(t, err)

	_, err = runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDuplicateID)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = runShelf(t, configDir, dataDir, "get", "missing")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = runShelf(t, configDir, dataDir, "add", "book", "--id", "b2")
	require.Error(t, err, "missing required --title")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestRootCommandsDoNotShareFlagState(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir, "add", "book", "--id", "b1", "--title", "Dune")
	require.NoError(t, err)

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	require.NoError(t, root.PersistentFlags().Set("config-dir", configDir))
	require.NoError(t, root.PersistentFlags().Set("data-dir", dataDir))

	// Building a second tree in the same process must not clobber the
	// first tree's flag values.
	_ = NewRootCmd()

	root.SetArgs([]string{"list"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "b1")
}

func TestSearchCaseInsensitive(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runShelf(t, configDir, dataDir,
		"add", "book", "--id", "h1", "--title", "The Hobbit", "--author", "J.R.R. Tolkien")
	require.NoError(t, err)

	out, err := runShelf(t, configDir, dataDir, "search", "TOLKIEN")
	require.NoError(t, err)
	assert.Contains(t, out, "The Hobbit")

	out, err = runShelf(t, configDir, dataDir, "search", "asimov")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching records")
}
