// Package store provides durable key-value persistence for application records.
//
// Records are opaque JSON documents addressed by a well-known key. Two
// backends are available: a file-based store for local single-user setups
// and a PostgreSQL store for shared deployments.
package store

import "context"

// Well-known record keys.
const (
	RecordProfile = "profile"
	RecordHistory = "history"
)

// RecordStore persists whole-document JSON records by key.
type RecordStore interface {
	// Load returns the record bytes for key, or (nil, nil) when no record
	// exists under that key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes the record bytes for key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the record for key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
