package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/domain"
)

const statsTestDocument = `{
  "default_slug": "wjm",
  "cards": {
    "wjm":   {"display_name": "Willem Martins"},
    "anita": {"display_name": "Anita Martins"}
  }
}`

func newTestDirectory(t *testing.T) *directory.Directory {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(statsTestDocument), 0o644))

	dir, err := directory.New(path)
	require.NoError(t, err)
	return dir
}

func TestStatsRows(t *testing.T) {
	ctx := context.Background()
	svc := &StatsService{Store: newTestStore(t), Directory: newTestDirectory(t)}

	t.Run("directory slugs appear zero filled", func(t *testing.T) {
		rows, err := svc.Rows(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		require.Equal(t, "anita", rows[0].Slug)
		require.Equal(t, "wjm", rows[1].Slug)
		for _, row := range rows {
			require.Len(t, row.Counters, len(domain.CounterNames))
			require.Zero(t, row.Counters.Total())
		}
	})

	t.Run("recorded clicks merge in", func(t *testing.T) {
		_, err := svc.Store.Counters().Increment(ctx, "wjm", domain.CounterWhatsAppClicks)
		require.NoError(t, err)
		_, err = svc.Store.Counters().Increment(ctx, "wjm", domain.CounterWhatsAppClicks)
		require.NoError(t, err)

		rows, err := svc.Rows(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), rows[1].Counters[domain.CounterWhatsAppClicks])
		require.Equal(t, int64(2), rows[1].Counters.Total())
	})

	t.Run("removed slugs with history still listed", func(t *testing.T) {
		_, err := svc.Store.Counters().Increment(ctx, "gone", domain.CounterNFCScans)
		require.NoError(t, err)

		rows, err := svc.Rows(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, "gone", rows[1].Slug)
		require.Equal(t, int64(1), rows[1].Counters[domain.CounterNFCScans])
	})

	t.Run("reset wipes every slug", func(t *testing.T) {
		require.NoError(t, svc.ResetAll(ctx))

		rows, err := svc.Rows(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2, "reset slugs without cards drop off entirely")
		for _, row := range rows {
			require.Zero(t, row.Counters.Total())
		}
	})
}
