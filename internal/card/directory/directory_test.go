package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDocument = `{
	"default_slug": "wjm",
	"cards": {
		"wjm": {
			"display_name": "Wjm Piek",
			"save_name": "Wjm Martin's Funerals",
			"org": "Martin's Funerals",
			"title": "Director",
			"whatsapp_display": "082 561 5932",
			"whatsapp_e164": "27825615932",
			"office_display": "010 448 0921",
			"office_e164": "27104480921",
			"email": "wjm@martinsdirect.com",
			"website_display": "martinsnorthcliff.com",
			"website_url": "https://www.martinsnorthcliff.com",
			"address_display": "208 Weltevreden Road, Northcliff",
			"maps_query": "208%20Weltevreden%20Road%2C%20Northcliff"
		},
		"anita": {
			"display_name": "Anita Piek",
			"org": "Martin's Funerals",
			"email": "anita@martinsdirect.com"
		}
	}
}`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_MissingFileFails(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestNew_MalformedFileFails(t *testing.T) {
	_, err := New(writeDocument(t, "{not json"))
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	dir, err := New(writeDocument(t, testDocument))
	require.NoError(t, err)

	t.Run("known slug round-trips", func(t *testing.T) {
		card, err := dir.Get("wjm")
		require.NoError(t, err)
		require.Equal(t, "wjm", card.Slug)
		require.Equal(t, "Wjm Piek", card.DisplayName)
		require.Equal(t, "27825615932", card.WhatsAppE164)
	})

	t.Run("unknown slug returns ErrNotFound", func(t *testing.T) {
		_, err := dir.Get("nobody")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGet_PicksUpOutOfBandEdits(t *testing.T) {
	path := writeDocument(t, testDocument)
	dir, err := New(path)
	require.NoError(t, err)

	_, err = dir.Get("wjm")
	require.NoError(t, err)

	// Edit the file behind the directory's back; the next read sees it.
	edited := `{"default_slug": "solo", "cards": {"solo": {"display_name": "Solo"}}}`
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o600))

	_, err = dir.Get("wjm")
	require.ErrorIs(t, err, ErrNotFound)

	card, err := dir.Get("solo")
	require.NoError(t, err)
	require.Equal(t, "Solo", card.DisplayName)
}

func TestDefaultSlug(t *testing.T) {
	t.Run("uses the document's default_slug", func(t *testing.T) {
		dir, err := New(writeDocument(t, testDocument))
		require.NoError(t, err)

		slug, err := dir.DefaultSlug()
		require.NoError(t, err)
		require.Equal(t, "wjm", slug)
	})

	t.Run("falls back to first slug when default is unset", func(t *testing.T) {
		doc := `{"cards": {"zeta": {"display_name": "Z"}, "alpha": {"display_name": "A"}}}`
		dir, err := New(writeDocument(t, doc))
		require.NoError(t, err)

		slug, err := dir.DefaultSlug()
		require.NoError(t, err)
		require.Equal(t, "alpha", slug)
	})

	t.Run("empty document reports ErrEmpty", func(t *testing.T) {
		dir, err := New(writeDocument(t, `{"cards": {}}`))
		require.NoError(t, err)

		_, err = dir.DefaultSlug()
		require.ErrorIs(t, err, ErrEmpty)
	})
}

func TestAll_OrderedBySlug(t *testing.T) {
	dir, err := New(writeDocument(t, testDocument))
	require.NoError(t, err)

	cards, err := dir.All()
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, "anita", cards[0].Slug)
	require.Equal(t, "wjm", cards[1].Slug)
}
