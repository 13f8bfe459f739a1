package http

import (
	"errors"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

const qrImageSize = 512

// QRHandler renders PNG QR codes that encode the NFC-tracking URL, so a
// printed code and a physical tag hit the same counter.
type QRHandler struct {
	CardService *service.CardService
	BaseURL     string
}

// HandleDefault serves /qr.png for the default card.
func (h *QRHandler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	slug, err := h.CardService.DefaultSlug()
	if err != nil {
		slogx.FromContext(r.Context()).Error("resolve default slug", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	h.serve(w, r, slug)
}

// HandleSlug serves /qr/{slug}.png.
func (h *QRHandler) HandleSlug(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	slug, ok := strings.CutSuffix(file, ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, slug)
}

func (h *QRHandler) serve(w http.ResponseWriter, r *http.Request, slug string) {
	if _, err := h.CardService.Get(slug); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slogx.FromContext(r.Context()).Error("load card", "slug", slug, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	target := strings.TrimSuffix(h.BaseURL, "/") + "/go/nfc/" + slug
	png, err := qrcode.Encode(target, qrcode.Medium, qrImageSize)
	if err != nil {
		slogx.FromContext(r.Context()).Error("encode qr", "slug", slug, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
