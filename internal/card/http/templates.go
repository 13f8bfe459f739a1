package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// renderTemplate executes a template into a buffer first so a render
// failure produces a clean 500 instead of a half-written page.
func renderTemplate(w http.ResponseWriter, r *http.Request, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		slogx.FromContext(r.Context()).Error("render template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
