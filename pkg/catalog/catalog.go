// Package catalog persists inspected package manifests so repeated runs
// and the serve API can look up a package's structure by digest instead of
// re-reading the container. Backed by MongoDB in deployments; an in-memory
// store covers tests and single-process serving.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/opckit/opckit/pkg/manifest"
)

// ErrNotFound is returned when no catalog entry matches the query.
var ErrNotFound = errors.New("catalog: entry not found")

// Entry is one cataloged package: its manifest plus the identity needed to
// find it again. Hash is the SHA-256 of the container bytes, so the same
// file always maps to the same entry.
type Entry struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	Hash      string            `json:"hash" bson:"hash"`
	Manifest  manifest.Manifest `json:"manifest" bson:"manifest"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}

// NewEntry builds an entry with a fresh id and creation timestamp.
func NewEntry(name, hash string, m manifest.Manifest) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Hash:      hash,
		Manifest:  m,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the persistence interface for catalog entries.
type Store interface {
	// Put inserts or replaces the entry under its id.
	Put(ctx context.Context, e Entry) error

	// Get returns the entry with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Entry, error)

	// FindByHash returns the most recent entry for a container digest, or
	// ErrNotFound.
	FindByHash(ctx context.Context, hash string) (Entry, error)

	// List returns up to limit entries, newest first. limit <= 0 means no
	// limit.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Delete removes the entry with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}
