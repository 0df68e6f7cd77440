package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobPutWritesUnderDir(t *testing.T) {
	ctx := context.Background()
	b, err := NewLocalBlob(t.TempDir())
	require.NoError(t, err)

	url, err := b.Put(ctx, "resumes/a.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "file://"))
	assert.Contains(t, url, "resumes/a.pdf")

	data, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestLocalBlobKeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	b, err := NewLocalBlob(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "etc", "passwd"), b.path("../../etc/passwd"))
}
