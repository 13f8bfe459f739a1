package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/martinsdigital/tapcard/internal/card/store"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed implementation of store.Store. All queries
// run through a querier so the same repo code serves both the root store
// and transactions.
type Store struct {
	db  *sql.DB
	dsn string
}

// querier is the subset of *sql.DB / *sql.Tx the repos need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Counters() store.Counters { return &countersRepo{q: s.db} }
func (s *Store) Settings() store.Settings { return &settingsRepo{q: s.db} }

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	tx := &storeTx{tx: sqlTx}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) Counters() store.Counters { return &countersRepo{q: t.tx} }
func (t *storeTx) Settings() store.Settings { return &settingsRepo{q: t.tx} }
func (t *storeTx) Commit() error            { return t.tx.Commit() }
func (t *storeTx) Rollback() error          { return t.tx.Rollback() }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
