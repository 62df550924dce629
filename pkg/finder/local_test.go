package finder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestTree(t *testing.T) (string, time.Time) {
	t.Helper()

	root := t.TempDir()
	modTime := time.Date(2020, 10, 28, 20, 30, 5, 0, time.UTC)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "subdir"), 0o755))

	files := []string{
		"file1.txt",
		"file2.log",
		filepath.Join("subdir", "file3.txt"),
	}

	for _, name := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.WriteFile(path, []byte("contents"), 0o644))
		require.NoError(t, os.Chtimes(path, modTime, modTime))
	}

	return root, modTime
}

func runScanner(t *testing.T, scanner Scanner) map[string]Entry {
	t.Helper()

	entryChan := make(chan Entry, 50)
	err := scanner.Run(context.Background(), entryChan)
	require.NoError(t, err)
	close(entryChan)

	entries := map[string]Entry{}
	for entry := range entryChan {
		entries[entry.Path] = entry
	}

	return entries
}

func TestLocalScannerRecursive(t *testing.T) {
	root, modTime := makeTestTree(t)

	entries := runScanner(
		t,
		&LocalScanner{
			Paths:     []string{root},
			Recursive: true,
		},
	)
	require.Len(t, entries, 3)

	entry := entries[filepath.Join(root, "subdir", "file3.txt")]
	assert.Equal(t, 0, entry.Root)
	assert.Equal(t, int64(8), entry.Size)
	assert.True(t, entry.ModTime.Equal(modTime))
}

func TestLocalScannerNonRecursive(t *testing.T) {
	root, _ := makeTestTree(t)

	entries := runScanner(
		t,
		&LocalScanner{
			Paths:     []string{root},
			Recursive: false,
		},
	)
	require.Len(t, entries, 2)

	assert.Contains(t, entries, filepath.Join(root, "file1.txt"))
	assert.Contains(t, entries, filepath.Join(root, "file2.log"))
}

func TestLocalScannerSingleFile(t *testing.T) {
	root, _ := makeTestTree(t)

	entries := runScanner(
		t,
		&LocalScanner{
			Paths: []string{
				filepath.Join(root, "subdir", "file3.txt"),
				filepath.Join(root, "file1.txt"),
			},
		},
	)
	require.Len(t, entries, 2)

	assert.Equal(t, 0, entries[filepath.Join(root, "subdir", "file3.txt")].Root)
	assert.Equal(t, 1, entries[filepath.Join(root, "file1.txt")].Root)
}

func TestLocalScannerDepths(t *testing.T) {
	root, _ := makeTestTree(t)

	entries := runScanner(
		t,
		&LocalScanner{
			Paths:     []string{root},
			Recursive: true,
			Depths: map[int]struct{}{
				2: {},
			},
		},
	)
	require.Len(t, entries, 1)
	assert.Contains(t, entries, filepath.Join(root, "subdir", "file3.txt"))
}
