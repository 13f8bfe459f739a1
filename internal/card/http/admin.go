package http

import (
	"html/template"
	"net/http"

	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/httpx"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// AdminHandler serves the counters dashboard and the full counter reset.
type AdminHandler struct {
	StatsService *service.StatsService
	Templates    *template.Template
}

func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.StatsService.Rows(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("load stats", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	httpx.NoCache(w)
	renderTemplate(w, r, h.Templates, "admin_dashboard.html", map[string]any{"Rows": rows})
}

func (h *AdminHandler) HandleResetCounters(w http.ResponseWriter, r *http.Request) {
	if err := h.StatsService.ResetAll(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Error("reset counters", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	slogx.FromContext(r.Context()).Info("all counters reset")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
