// Integration tests exercising the full catalog lifecycle through the CLI
// and the library packages against a real data directory.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstead/shelf/internal/cli"
	"github.com/bookstead/shelf/internal/jsonfile"
	"github.com/bookstead/shelf/pkg/catalog"
	"github.com/bookstead/shelf/pkg/types"
)

// shelf runs one shelf CLI invocation against the given directories.
func shelf(t *testing.T, configDir, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config-dir", configDir, "--data-dir", dataDir}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestCLILifecycle(t *testing.T) {
	base := t.TempDir()
	configDir := filepath.Join(base, "config")
	dataDir := filepath.Join(base, "data")

	_, err := shelf(t, configDir, dataDir, "init")
	require.NoError(t, err)

	steps := [][]string{
		{"add", "book", "--id", "b1", "--title", "Dune", "--author", "Frank Herbert", "--isbn", "978-0441013593", "--pages", "412"},
		{"add", "ebook", "--id", "e1", "--title", "Dune", "--author", "Frank Herbert", "--isbn", "978-0441013593", "--pages", "412", "--size-mb", "3.2", "--format", "EPUB"},
		{"add", "audiobook", "--id", "a1", "--title", "Hyperion", "--author", "Dan Simmons", "--minutes", "1284", "--narrator", "Marc Vietor"},
	}
	for _, step := range steps {
		_, err := shelf(t, configDir, dataDir, step...)
		require.NoError(t, err, "step %v", step)
	}

	out, err := shelf(t, configDir, dataDir, "search", "dune")
	require.NoError(t, err)
	assert.Contains(t, out, "b1")
	assert.Contains(t, out, "e1")
	assert.NotContains(t, out, "a1")

	_, err = shelf(t, configDir, dataDir, "remove", "b1")
	require.NoError(t, err)

	out, err = shelf(t, configDir, dataDir, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "b1")
	assert.Contains(t, out, "e1")
	assert.Contains(t, out, "a1")

	// The archive on disk mirrors every mutation: open it directly.
	cat, err := catalog.Open(jsonfile.NewStore(filepath.Join(dataDir, types.ArchiveFileName)))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	rec, err := cat.Find("e1")
	require.NoError(t, err)
	ebook, ok := rec.(types.EBook)
	require.True(t, ok)
	assert.Equal(t, "EPUB", ebook.FileFormat)
	assert.InDelta(t, 3.2, ebook.FileSizeMB, 0.001)
}

func TestArchiveSurvivesReopen(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, types.ArchiveFileName)

	cat, err := catalog.Open(jsonfile.NewStore(path))
	require.NoError(t, err)
	require.NoError(t, cat.Add(types.Audiobook{
		Resource:        types.Resource{ResourceID: "a1", Title: "Dune", Author: "Frank Herbert"},
		DurationMinutes: 1266,
		Narrator:        "Scott Brick",
	}))

	// Simulate a process restart by opening a fresh catalog on the same
	// archive.
	reopened, err := catalog.Open(jsonfile.NewStore(path))
	require.NoError(t, err)

	rec, err := reopened.Find("a1")
	require.NoError(t, err)
	assert.Equal(t, types.KindAudiobook, rec.Kind())
	assert.Equal(t, "Dune", rec.Base().Title)
}

func TestCorruptArchiveFailsLoad(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, types.ArchiveFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Scroll","resource_id":"s1","title":"?"}`+"\n"), 0o644))

	_, err := catalog.Open(jsonfile.NewStore(path))
	assert.ErrorIs(t, err, types.ErrUnknownKind)
}
