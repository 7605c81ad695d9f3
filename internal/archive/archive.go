// Package archive keeps the raw uploaded report payloads, byte-for-byte as
// the client sent them. The pipeline never reads them back; they exist for
// audit and re-processing after schema changes.
package archive

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("archive: blob not found")

// Store defines operations for persisting raw report blobs.
type Store interface {
	Put(ctx context.Context, reportID, name string, content []byte) error
	Get(ctx context.Context, reportID, name string) ([]byte, error)
	GetURL(ctx context.Context, reportID, name string) (string, error)
	List(ctx context.Context, reportID string) ([]string, error)
}
