package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/domain"
	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/httpx"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// CardHandler serves the card page and the vCard download.
type CardHandler struct {
	CardService    *service.CardService
	TrackService   *service.TrackService
	ContactService *service.ContactService
	Templates      *template.Template
}

// HandleRoot redirects the bare domain to the default card page.
func (h *CardHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	slug, err := h.CardService.DefaultSlug()
	if err != nil {
		slogx.FromContext(r.Context()).Error("resolve default slug", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/c/"+slug, http.StatusFound)
}

// HandleCard dispatches /c/{slug}: a ".vcf" suffix downloads the contact
// file, anything else renders the card page.
func (h *CardHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	if name, ok := strings.CutSuffix(slug, ".vcf"); ok {
		h.serveVCard(w, r, name)
		return
	}

	card, ok := h.lookup(w, r, slug)
	if !ok {
		return
	}

	renderTemplate(w, r, h.Templates, "card.html", map[string]any{"Card": card})
}

func (h *CardHandler) serveVCard(w http.ResponseWriter, r *http.Request, slug string) {
	card, ok := h.lookup(w, r, slug)
	if !ok {
		return
	}

	if _, err := h.TrackService.Record(r.Context(), slug, domain.CounterContactShared); err != nil {
		// Losing a counter bump should not block the download.
		slogx.FromContext(r.Context()).Warn("record contact_shared", "slug", slug, "error", err)
	}

	payload, filename := h.ContactService.Render(card)

	httpx.NoCache(w)
	httpx.Attachment(w, filename, "text/vcard; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// lookup resolves a slug to a card, writing a 404 on unknown slugs.
func (h *CardHandler) lookup(w http.ResponseWriter, r *http.Request, slug string) (domain.Card, bool) {
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
	return card, true
}
