// Package main restores a turn-log snapshot from object storage: it downloads
// the given object key and decompresses it to a local file. Archive settings
// come from the same environment variables the server uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/conv-showcase/assistant-webhook-go/internal/config"
	"github.com/conv-showcase/assistant-webhook-go/internal/objstore"
)

func main() {
	key := flag.String("key", "", "object key of the snapshot to restore")
	out := flag.String("out", "turnlog-restored.db", "path to write the restored database")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "restore: -key is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "restore: load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.ArchiveEnabled() {
		fmt.Fprintln(os.Stderr, "restore: archive storage is not configured (set ARCHIVE_ENDPOINT and credentials)")
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := objstore.New(ctx, objstore.Config{
		Endpoint:    cfg.ArchiveEndpoint,
		AccessKeyID: cfg.ArchiveAccessKey,
		SecretKey:   cfg.ArchiveSecretKey,
		BucketName:  cfg.ArchiveBucket,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "restore: %v\n", err)
		os.Exit(1)
	}

	archiver := objstore.NewArchiver(client, cfg.ArchivePrefix)
	if err := archiver.Restore(ctx, *key, *out); err != nil {
		fmt.Fprintf(os.Stderr, "restore: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("restored %s to %s\n", *key, *out)
}
