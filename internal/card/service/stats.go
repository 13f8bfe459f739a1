package service

import (
	"context"
	"sort"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/store"
)

// StatsService assembles the aggregate counter view for the admin
// dashboard and CSV export.
type StatsService struct {
	Store     store.Store
	Directory *directory.Directory
}

// Rows returns one row per slug, ordered by slug. Every card in the
// directory appears even with no recorded clicks, and recorded slugs that
// have since been removed from the directory still show up so their
// history isn't hidden. Every row carries the full counter set with
// zero defaults.
func (s *StatsService) Rows(ctx context.Context) ([]domain.SlugCounters, error) {
	recorded, err := s.Store.Counters().All(ctx)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]domain.CounterSet, len(recorded))
	for _, sc := range recorded {
		bySlug[sc.Slug] = sc.Counters
	}

	cards, err := s.Directory.All()
	if err != nil {
		return nil, err
	}
	for _, card := range cards {
		if _, ok := bySlug[card.Slug]; !ok {
			bySlug[card.Slug] = domain.CounterSet{}
		}
	}

	slugs := make([]string, 0, len(bySlug))
	for slug := range bySlug {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	rows := make([]domain.SlugCounters, 0, len(slugs))
	for _, slug := range slugs {
		rows = append(rows, domain.SlugCounters{
			Slug:     slug,
			Counters: bySlug[slug].Filled(),
		})
	}
	return rows, nil
}

// ResetAll wipes every counter for every slug.
func (s *StatsService) ResetAll(ctx context.Context) error {
	return s.Store.Counters().ResetAll(ctx)
}
