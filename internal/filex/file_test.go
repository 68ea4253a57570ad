package filex

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBase64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	content, mimeType, err := ReadBase64(path)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), content)
	assert.Equal(t, "image/png", mimeType)
}

func TestReadBase64_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.xyzunknown")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	_, mimeType, err := ReadBase64(path)
	require.NoError(t, err)
	assert.Empty(t, mimeType)
}

func TestReadBase64_MissingFile(t *testing.T) {
	_, _, err := ReadBase64(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}

func TestEnsureSubDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
	require.NoError(t, os.Chdir(t.TempDir()))

	dir, err := EnsureSubDir("downloads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "downloads", filepath.Base(dir))

	// Repeat calls land on the same directory.
	again, err := EnsureSubDir("downloads")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}
