package service

import (
	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/domain"
)

// CardService answers card lookups from the directory.
type CardService struct {
	Directory *directory.Directory
}

// Get fetches a card by slug.
func (s *CardService) Get(slug string) (domain.Card, error) {
	return s.Directory.Get(slug)
}

// DefaultSlug returns the slug the root URL redirects to.
func (s *CardService) DefaultSlug() (string, error) {
	return s.Directory.DefaultSlug()
}

// List returns every card ordered by slug.
func (s *CardService) List() ([]domain.Card, error) {
	return s.Directory.All()
}
