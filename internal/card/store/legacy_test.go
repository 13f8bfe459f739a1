package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/store"
	"github.com/martinsdigital/tapcard/internal/card/store/drivers/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func writeLegacy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counters.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportLegacyCounters_NestedShape(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	path := writeLegacy(t, `{
		"wjm": {"whatsapp_clicks": 12, "nfc_scans": 3},
		"anita": {"email_clicks": 5, "bogus_counter": 99}
	}`)

	n, err := store.ImportLegacyCounters(ctx, s, path, "wjm")
	require.NoError(t, err)
	require.Equal(t, 3, n, "unknown counter names are skipped")

	set, err := s.Counters().Get(ctx, "wjm")
	require.NoError(t, err)
	require.EqualValues(t, 12, set[domain.CounterWhatsAppClicks])
	require.EqualValues(t, 3, set[domain.CounterNFCScans])

	set, err = s.Counters().Get(ctx, "anita")
	require.NoError(t, err)
	require.EqualValues(t, 5, set[domain.CounterEmailClicks])
	require.NotContains(t, set, "bogus_counter")
}

func TestImportLegacyCounters_FlatShapeGoesToDefaultSlug(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	path := writeLegacy(t, `{"whatsapp_clicks": 8, "contact_shared": 2}`)

	n, err := store.ImportLegacyCounters(ctx, s, path, "wjm")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	set, err := s.Counters().Get(ctx, "wjm")
	require.NoError(t, err)
	require.EqualValues(t, 8, set[domain.CounterWhatsAppClicks])
	require.EqualValues(t, 2, set[domain.CounterContactShared])
}

func TestImportLegacyCounters_RunsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	path := writeLegacy(t, `{"wjm": {"nfc_scans": 4}}`)

	n, err := store.ImportLegacyCounters(ctx, s, path, "wjm")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// Click something, then re-run the import: it must not clobber.
	_, err = s.Counters().Increment(ctx, "wjm", domain.CounterNFCScans)
	require.NoError(t, err)

	n, err = store.ImportLegacyCounters(ctx, s, path, "wjm")
	require.NoError(t, err)
	require.Zero(t, n)

	set, err := s.Counters().Get(ctx, "wjm")
	require.NoError(t, err)
	require.EqualValues(t, 5, set[domain.CounterNFCScans])
}

func TestImportLegacyCounters_MissingFileIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := store.ImportLegacyCounters(ctx, s, filepath.Join(t.TempDir(), "absent.json"), "wjm")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestImportLegacyCounters_MalformedFileErrorsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	path := writeLegacy(t, `{broken`)

	_, err := store.ImportLegacyCounters(ctx, s, path, "wjm")
	require.Error(t, err)

	all, err := s.Counters().All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	// The legacy file itself is left untouched.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{broken`, string(raw))
}

func TestImportLegacyCounters_PartialFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// One good slug, one slug whose value is not an object or number map.
	path := writeLegacy(t, `{
		"wjm": {"nfc_scans": 4},
		"bad": "not-a-map"
	}`)

	_, err := store.ImportLegacyCounters(ctx, s, path, "wjm")
	require.Error(t, err)

	all, err := s.Counters().All(ctx)
	require.NoError(t, err)
	require.Empty(t, all, "transaction rolls back the good rows too")
}
