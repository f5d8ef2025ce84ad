package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"glimpse/internal/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommandC builds a fresh root command, executes it with the given
// arguments and captures its output.
func executeCommandC(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// Reset package-level flag state that may be sticky between executions.
	dirFlag = ""
	extsFlag = nil
	mgr = nil

	root := NewRootCmd(collection.NewManager)

	actualStdout := new(bytes.Buffer)
	actualStderr := new(bytes.Buffer)
	root.SetOut(actualStdout)
	root.SetErr(actualStderr)
	root.SetArgs(args)

	err := root.Execute()

	return actualStdout.String(), actualStderr.String(), err
}

// seedImages writes n tiny image files into dir.
func seedImages(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "img"+string(rune('a'+i))+".jpg")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func TestRootHelp(t *testing.T) {
	stdout, stderr, err := executeCommandC(t, "--help")
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "glimpse-cli [command]")
}

func TestListCommand(t *testing.T) {
	colDir := t.TempDir()

	t.Run("no collections", func(t *testing.T) {
		stdout, stderr, err := executeCommandC(t, "--collections-dir", colDir, "list")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "No collections found.")
	})

	t.Run("with collections", func(t *testing.T) {
		imgDir := t.TempDir()
		seedImages(t, imgDir, 3)

		_, _, err := executeCommandC(t, "--collections-dir", colDir, "create", "Vacation", imgDir)
		require.NoError(t, err)

		stdout, stderr, err := executeCommandC(t, "--collections-dir", colDir, "list")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Vacation (1 folders, 3 images)")
	})
}

func TestCreateCommand(t *testing.T) {
	t.Run("counts images recursively", func(t *testing.T) {
		colDir := t.TempDir()
		imgDir := t.TempDir()
		sub := filepath.Join(imgDir, "nested")
		require.NoError(t, os.Mkdir(sub, 0755))
		seedImages(t, imgDir, 2)
		seedImages(t, sub, 2)

		stdout, stderr, err := executeCommandC(t, "--collections-dir", colDir, "create", "Pets", imgDir)
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Created collection 'Pets' with 4 images.")

		m, err := collection.NewManager(colDir, nil)
		require.NoError(t, err)
		c, err := m.Load("Pets")
		require.NoError(t, err)
		assert.Equal(t, 4, c.ImageCount)
		assert.Equal(t, []string{imgDir}, c.Paths)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		colDir := t.TempDir()
		imgDir := t.TempDir()

		_, _, err := executeCommandC(t, "--collections-dir", colDir, "create", "Twice", imgDir)
		require.NoError(t, err)

		_, _, err = executeCommandC(t, "--collections-dir", colDir, "create", "Twice", imgDir)
		require.Error(t, err)
		assert.ErrorIs(t, err, collection.ErrExists)
	})

	t.Run("missing folder still creates with warning", func(t *testing.T) {
		colDir := t.TempDir()
		imgDir := t.TempDir()
		seedImages(t, imgDir, 1)
		missing := filepath.Join(imgDir, "does-not-exist")

		stdout, stderr, err := executeCommandC(t, "--collections-dir", colDir, "create", "Mixed", imgDir, missing)
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Created collection 'Mixed' with 1 images.")
		assert.Contains(t, stdout, "Warning:")
	})
}

func TestShowCommand(t *testing.T) {
	colDir := t.TempDir()
	imgDir := t.TempDir()
	seedImages(t, imgDir, 2)

	_, _, err := executeCommandC(t, "--collections-dir", colDir, "create", "Trips", imgDir)
	require.NoError(t, err)

	t.Run("existing collection", func(t *testing.T) {
		stdout, stderr, err := executeCommandC(t, "--collections-dir", colDir, "show", "Trips")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Collection: Trips")
		assert.Contains(t, stdout, "Images: 2")
		assert.Contains(t, stdout, imgDir)
	})

	t.Run("unknown collection", func(t *testing.T) {
		_, _, err := executeCommandC(t, "--collections-dir", colDir, "show", "Nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, collection.ErrNotFound)
	})
}

func TestDeleteCommand(t *testing.T) {
	colDir := t.TempDir()
	imgDir := t.TempDir()

	_, _, err := executeCommandC(t, "--collections-dir", colDir, "create", "Gone", imgDir)
	require.NoError(t, err)

	t.Run("deletes existing", func(t *testing.T) {
		stdout, stderr, err := executeCommandC(t, "--collections-dir", colDir, "delete", "Gone")
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Deleted collection 'Gone'.")

		m, err := collection.NewManager(colDir, nil)
		require.NoError(t, err)
		assert.False(t, m.Exists("Gone"))
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, _, err := executeCommandC(t, "--collections-dir", colDir, "delete", "Gone")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no collection named")
	})
}

func TestScanCommand(t *testing.T) {
	t.Run("counts images", func(t *testing.T) {
		imgDir := t.TempDir()
		seedImages(t, imgDir, 3)
		require.NoError(t, os.WriteFile(filepath.Join(imgDir, "notes.txt"), []byte("x"), 0644))

		stdout, stderr, err := executeCommandC(t, "scan", imgDir)
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Found 3 images.")
	})

	t.Run("extension filter", func(t *testing.T) {
		imgDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(imgDir, "a.png"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(imgDir, "b.jpg"), []byte("x"), 0644))

		stdout, stderr, err := executeCommandC(t, "scan", "--ext", ".png", imgDir)
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Found 1 images.")
	})

	t.Run("partial when a root is missing", func(t *testing.T) {
		imgDir := t.TempDir()
		seedImages(t, imgDir, 2)
		missing := filepath.Join(imgDir, "missing-root")

		stdout, stderr, err := executeCommandC(t, "scan", imgDir, missing)
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Found 2 images (partial - 1 location(s) unreadable).")
		assert.Contains(t, stdout, "Warning:")
	})

	t.Run("all roots missing is partial and empty", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		stdout, stderr, err := executeCommandC(t, "scan", missing)
		require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
		assert.Contains(t, stdout, "Found 0 images (partial - 1 location(s) unreadable).")
	})
}
