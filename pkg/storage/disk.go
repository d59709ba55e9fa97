// Package storage stores uploaded sweet images behind a small filesystem
// abstraction with two drivers:
//   - "local" — local filesystem (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once at startup, then hand a Disk to whatever needs it:
//
//	storage.Connect()
//	disk := storage.Default()
//	disk.Put(ctx, "sweets/abc.png", data)
//	url := disk.URL("sweets/abc.png")
package storage

import "context"

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
