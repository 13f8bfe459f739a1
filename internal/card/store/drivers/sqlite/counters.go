package sqlite

import (
	"context"
	"fmt"

	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/store"
)

type countersRepo struct {
	q querier
}

// Increment is a single upsert statement, so concurrent clicks on the same
// slug serialise inside sqlite instead of racing a read-modify-write.
func (r *countersRepo) Increment(ctx context.Context, slug, name string) (int64, error) {
	if !domain.KnownCounter(name) {
		return 0, fmt.Errorf("%w: %q", store.ErrUnknownCounter, name)
	}

	const q = `
		INSERT INTO counters (slug, name, value, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (slug, name)
		DO UPDATE SET value = value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING value;
	`

	var value int64
	if err := r.q.QueryRowContext(ctx, q, slug, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("increment counter %s/%s: %w", slug, name, err)
	}
	return value, nil
}

func (r *countersRepo) Set(ctx context.Context, slug, name string, value int64) error {
	if !domain.KnownCounter(name) {
		return fmt.Errorf("%w: %q", store.ErrUnknownCounter, name)
	}
	if value < 0 {
		return fmt.Errorf("set counter %s/%s: negative value %d", slug, name, value)
	}

	const q = `
		INSERT INTO counters (slug, name, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (slug, name)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP;
	`

	if _, err := r.q.ExecContext(ctx, q, slug, name, value); err != nil {
		return fmt.Errorf("set counter %s/%s: %w", slug, name, err)
	}
	return nil
}

func (r *countersRepo) Get(ctx context.Context, slug string) (domain.CounterSet, error) {
	const q = `SELECT name, value FROM counters WHERE slug = ?;`

	rows, err := r.q.QueryContext(ctx, q, slug)
	if err != nil {
		return nil, fmt.Errorf("get counters for %s: %w", slug, err)
	}
	defer rows.Close()

	set := domain.CounterSet{}
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		set[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

func (r *countersRepo) All(ctx context.Context) ([]domain.SlugCounters, error) {
	const q = `SELECT slug, name, value FROM counters ORDER BY slug, name;`

	rows, err := r.q.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list counters: %w", err)
	}
	defer rows.Close()

	var out []domain.SlugCounters
	for rows.Next() {
		var slug, name string
		var value int64
		if err := rows.Scan(&slug, &name, &value); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].Slug != slug {
			out = append(out, domain.SlugCounters{Slug: slug, Counters: domain.CounterSet{}})
		}
		out[len(out)-1].Counters[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *countersRepo) ResetAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM counters;`); err != nil {
		return fmt.Errorf("reset counters: %w", err)
	}
	return nil
}
