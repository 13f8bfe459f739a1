// Package directory provides read-only access to the cards document: a
// human-edited JSON file mapping slugs to card records. The file is read
// fresh on every lookup so out-of-band edits take effect immediately,
// trading a little file I/O per request for zero cache invalidation.
package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/martinsdigital/tapcard/internal/card/domain"
)

var (
	// ErrNotFound reports an unknown slug.
	ErrNotFound = errors.New("directory: card not found")
	// ErrEmpty reports a document with no cards at all.
	ErrEmpty = errors.New("directory: no cards defined")
)

// document is the on-disk shape of the cards file.
type document struct {
	DefaultSlug string                 `json:"default_slug"`
	Cards       map[string]domain.Card `json:"cards"`
}

// Directory reads cards from a JSON document at a fixed path.
type Directory struct {
	path string
}

// New validates that the cards document exists and parses, then returns a
// Directory bound to it. A missing or malformed file is fatal here so the
// process refuses to start without its cards.
func New(path string) (*Directory, error) {
	d := &Directory{path: path}
	if _, err := d.load(); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns the card for slug, or ErrNotFound.
func (d *Directory) Get(slug string) (domain.Card, error) {
	doc, err := d.load()
	if err != nil {
		return domain.Card{}, err
	}

	card, ok := doc.Cards[slug]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	card.Slug = slug
	return card, nil
}

// DefaultSlug returns the document's default_slug, falling back to the
// lexicographically first slug when none is set.
func (d *Directory) DefaultSlug() (string, error) {
	doc, err := d.load()
	if err != nil {
		return "", err
	}

	if doc.DefaultSlug != "" {
		if _, ok := doc.Cards[doc.DefaultSlug]; ok {
			return doc.DefaultSlug, nil
		}
	}

	slugs := sortedSlugs(doc)
	if len(slugs) == 0 {
		return "", ErrEmpty
	}
	return slugs[0], nil
}

// All returns every card ordered by slug.
func (d *Directory) All() ([]domain.Card, error) {
	doc, err := d.load()
	if err != nil {
		return nil, err
	}

	cards := make([]domain.Card, 0, len(doc.Cards))
	for _, slug := range sortedSlugs(doc) {
		card := doc.Cards[slug]
		card.Slug = slug
		cards = append(cards, card)
	}
	return cards, nil
}

// Ping reports whether the cards document is currently readable. Used by
// the readiness probe.
func (d *Directory) Ping() error {
	_, err := d.load()
	return err
}

func (d *Directory) load() (document, error) {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return document{}, fmt.Errorf("directory: read cards document %s: %w", d.path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("directory: parse cards document %s: %w", d.path, err)
	}
	return doc, nil
}

func sortedSlugs(doc document) []string {
	slugs := make([]string, 0, len(doc.Cards))
	for slug := range doc.Cards {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
