package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal valid PNG header
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestInspect_SniffsPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.bin")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, int64(len(pngHeader)), info.Size)
	assert.Equal(t, "photo.bin", info.Name)
}

func TestInspect_SniffsPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%huge document"), 0o600))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestInspect_Directory(t *testing.T) {
	_, err := Inspect(t.TempDir())
	require.Error(t, err)
}
