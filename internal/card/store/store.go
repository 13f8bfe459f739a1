package store

import (
	"context"
	"errors"

	"github.com/martinsdigital/tapcard/internal/card/domain"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrUnknownCounter = errors.New("store: unknown counter name")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Counters() Counters
	Settings() Settings

	ApplyMigrations() error

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos but adds
// Commit/Rollback.
type Tx interface {
	Counters() Counters
	Settings() Settings
	Commit() error
	Rollback() error
}

type Counters interface {
	// Increment atomically bumps one named counter for a slug, creating
	// the row at 1 if it does not exist, and returns the new value.
	// Unknown counter names are rejected with ErrUnknownCounter.
	Increment(ctx context.Context, slug, name string) (int64, error)

	// Set writes an absolute value for one counter (used by the legacy
	// document import).
	Set(ctx context.Context, slug, name string, value int64) error

	// Get returns the counters recorded for a slug. Slugs with no
	// recorded clicks return an empty set, not an error.
	Get(ctx context.Context, slug string) (domain.CounterSet, error)

	// All returns recorded counters for every slug, ordered by slug.
	All(ctx context.Context) ([]domain.SlugCounters, error)

	// ResetAll wipes every counter for every slug.
	ResetAll(ctx context.Context) error
}

type Settings interface {
	// Get returns a setting value or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces a setting value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a setting; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
