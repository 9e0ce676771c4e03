package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Archiver uploads zstd-compressed snapshots of a file under a key prefix.
type Archiver struct {
	client *Client
	prefix string
}

// NewArchiver creates an Archiver writing under the given key prefix.
func NewArchiver(client *Client, prefix string) *Archiver {
	return &Archiver{
		client: client,
		prefix: prefix,
	}
}

// ArchiveFile compresses srcPath and uploads it.
// Returns the object key of the uploaded snapshot.
func (a *Archiver) ArchiveFile(ctx context.Context, srcPath string) (string, error) {
	tmp, err := os.CreateTemp("", "archive-*.zst")
	if err != nil {
		return "", fmt.Errorf("objstore: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := CompressFile(srcPath, tmpPath); err != nil {
		return "", err
	}

	compressed, err := os.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("objstore: open compressed file: %w", err)
	}
	defer func() { _ = compressed.Close() }()

	key := a.snapshotKey(srcPath, time.Now())
	if _, err := a.client.Upload(ctx, key, compressed, "application/zstd"); err != nil {
		return "", err
	}

	return key, nil
}

// Restore downloads a snapshot object and decompresses it to dstPath.
func (a *Archiver) Restore(ctx context.Context, key, dstPath string) error {
	body, err := a.client.Download(ctx, key)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	return decompressTo(body, dstPath)
}

// snapshotKey builds a unique snapshot key.
// The UUID suffix disambiguates uploads within the same second.
func (a *Archiver) snapshotKey(srcPath string, now time.Time) string {
	base := filepath.Base(srcPath)
	return fmt.Sprintf("%s/%s-%s-%s.zst",
		a.prefix,
		base,
		now.UTC().Format("20060102T150405"),
		uuid.New().String()[:8],
	)
}

// CompressFile compresses a file using zstd and writes to the destination path.
func CompressFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("objstore: compress: open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("objstore: compress: create dest: %w", err)
	}
	defer func() { _ = dst.Close() }()

	encoder, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("objstore: compress: create encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("objstore: compress: copy: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("objstore: compress: close encoder: %w", err)
	}

	return nil
}

// DecompressFile decompresses a zstd file and writes to the destination path.
func DecompressFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("objstore: decompress: open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	return decompressTo(src, dstPath)
}

func decompressTo(r io.Reader, dstPath string) error {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("objstore: decompress: create decoder: %w", err)
	}
	defer decoder.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("objstore: decompress: create dest: %w", err)
	}

	if _, err := io.Copy(dst, decoder); err != nil {
		_ = dst.Close()
		return fmt.Errorf("objstore: decompress: copy: %w", err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("objstore: decompress: close dest: %w", err)
	}

	return nil
}
