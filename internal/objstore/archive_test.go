package objstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressFile_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.db")
	dstPath := filepath.Join(dir, "source.db.zst")

	payload := bytes.Repeat([]byte("turn log row data "), 1000)
	require.NoError(t, os.WriteFile(srcPath, payload, 0o644))

	require.NoError(t, CompressFile(srcPath, dstPath))

	compressed, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(payload), "compressed output should be smaller for repetitive input")

	decoder, err := zstd.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	defer decoder.Close()

	restored, err := io.ReadAll(decoder)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestCompressFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CompressFile(filepath.Join(dir, "missing.db"), filepath.Join(dir, "out.zst"))
	assert.Error(t, err)
}

func TestSnapshotKey(t *testing.T) {
	a := NewArchiver(nil, "turnlog")

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	key := a.snapshotKey("/data/turnlog.db", now)

	assert.True(t, strings.HasPrefix(key, "turnlog/turnlog.db-20260314T092653-"), "key = %s", key)
	assert.True(t, strings.HasSuffix(key, ".zst"), "key = %s", key)

	// Suffix keeps keys unique within the same second
	other := a.snapshotKey("/data/turnlog.db", now)
	assert.NotEqual(t, key, other)
}

func TestNew_RequiresAllFields(t *testing.T) {
	_, err := New(context.Background(), Config{
		Endpoint: "https://storage.example.com",
	})
	assert.Error(t, err)
}

func TestDecompressFile_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.db")
	zstPath := filepath.Join(dir, "source.db.zst")
	outPath := filepath.Join(dir, "restored.db")

	payload := bytes.Repeat([]byte("turn log row data "), 1000)
	require.NoError(t, os.WriteFile(srcPath, payload, 0o644))

	require.NoError(t, CompressFile(srcPath, zstPath))
	require.NoError(t, DecompressFile(zstPath, outPath))

	restored, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestDecompressFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := DecompressFile(filepath.Join(dir, "nope.zst"), filepath.Join(dir, "out.db"))
	assert.Error(t, err)
}

func TestDecompressFile_NotZstd(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(srcPath, []byte("not compressed"), 0o644))

	err := DecompressFile(srcPath, filepath.Join(dir, "out.db"))
	assert.Error(t, err)
}
