package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFileName(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":        "resume.pdf",
		"my resume (1).pdf": "my_resume_(1).pdf",
		"../../etc/passwd":  "etc_passwd",
		"---":               "attachment",
		"":                  "attachment",
		"photo-2026.JPG":    "photo-2026.JPG",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeFileName(in), in)
	}
}

func TestLocalFileStoreMaterialize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload.txt")
	assert.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	store := &LocalFileStore{Dir: dir}

	t.Run("Found", func(t *testing.T) {
		att, err := store.Materialize(context.Background(), "upload.txt")
		assert.NoError(t, err)
		assert.Equal(t, "upload.txt", att.FileName)
		assert.Equal(t, path, att.LocalPath)
	})

	t.Run("TraversalFlattened", func(t *testing.T) {
		att, err := store.Materialize(context.Background(), "../upload.txt")
		assert.NoError(t, err)
		assert.Equal(t, path, att.LocalPath)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Materialize(context.Background(), "ghost.txt")
		assert.Error(t, err)
	})
}
