package http

import (
	"errors"
	"net/http"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// TrackHandler serves the /go/* family: each route interposes exactly one
// counter increment before handing the visitor to an external destination
// (or, for share and nfc, back to us).
type TrackHandler struct {
	CardService  *service.CardService
	TrackService *service.TrackService
}

func (h *TrackHandler) HandleWhatsApp(w http.ResponseWriter, r *http.Request) {
	card, ok := h.track(w, r, domain.CounterWhatsAppClicks)
	if !ok {
		return
	}
	http.Redirect(w, r, h.TrackService.WhatsAppLink(card, r.URL.Query().Get("text")), http.StatusFound)
}

func (h *TrackHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	card, ok := h.track(w, r, domain.CounterEmailClicks)
	if !ok {
		return
	}
	http.Redirect(w, r, h.TrackService.EmailLink(card, r.URL.Query().Get("subject")), http.StatusFound)
}

func (h *TrackHandler) HandleMap(w http.ResponseWriter, r *http.Request) {
	card, ok := h.track(w, r, domain.CounterMapClicks)
	if !ok {
		return
	}
	http.Redirect(w, r, h.TrackService.MapLink(card), http.StatusFound)
}

// HandleShare acknowledges a native share action. There is no destination
// to hand off to, so the response is an empty 204.
func (h *TrackHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.track(w, r, domain.CounterShareClicks); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleNFC records a physical card tap and lands the visitor on the card
// page. NFC tags and printed QR codes both encode this URL.
func (h *TrackHandler) HandleNFC(w http.ResponseWriter, r *http.Request) {
	card, ok := h.track(w, r, domain.CounterNFCScans)
	if !ok {
		return
	}
	http.Redirect(w, r, "/c/"+card.Slug, http.StatusFound)
}

// track resolves the slug, 404s unknown ones, and bumps the counter.
func (h *TrackHandler) track(w http.ResponseWriter, r *http.Request, counter string) (domain.Card, bool) {
	slug := r.PathValue("slug")

	card, err := h.CardService.Get(slug)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			http.NotFound(w, r)
			return domain.Card{}, false
		}
		slogx.FromContext(r.Context()).Error("load card", "slug", slug, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return domain.Card{}, false
	}

	if _, err := h.TrackService.Record(r.Context(), slug, counter); err != nil {
		// The redirect matters more than the statistic.
		slogx.FromContext(r.Context()).Warn("record click", "slug", slug, "counter", counter, "error", err)
	}
	return card, true
}
