package service

import (
	"context"
	"net/url"

	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/store"
)

// TrackService records click counters and builds the external deep links
// the tracking redirects hand off to.
type TrackService struct {
	Store store.Store
}

// Record bumps one named counter for a slug and returns the new value.
func (s *TrackService) Record(ctx context.Context, slug, name string) (int64, error) {
	return s.Store.Counters().Increment(ctx, slug, name)
}

// WhatsAppLink builds the wa.me deep link for a card, carrying an optional
// prefilled message.
func (s *TrackService) WhatsAppLink(card domain.Card, text string) string {
	link := "https://wa.me/" + card.WhatsAppE164
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

// EmailLink builds the mailto link for a card, carrying an optional
// subject.
func (s *TrackService) EmailLink(card domain.Card, subject string) string {
	link := "mailto:" + card.Email
	if subject != "" {
		link += "?subject=" + url.QueryEscape(subject)
	}
	return link
}

// MapLink builds the map-search deep link. The card's maps query is stored
// already URL-encoded, so it is appended verbatim.
func (s *TrackService) MapLink(card domain.Card) string {
	return "https://www.google.com/maps/search/?api=1&query=" + card.MapsQuery
}
