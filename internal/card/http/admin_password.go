package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// AdminPasswordHandler runs the out-of-band password reset flow. It is
// keyed by the reset key alone and deliberately independent of the login
// session, so a lost password can be recovered.
type AdminPasswordHandler struct {
	AdminService *service.AdminService
	Templates    *template.Template
}

func (h *AdminPasswordHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, h.Templates, "admin_password_reset.html", map[string]any{})
}

func (h *AdminPasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.AdminService.ResetPassword(r.Context(),
		r.PostForm.Get("reset_key"),
		r.PostForm.Get("new_password"),
		r.PostForm.Get("confirm_password"),
	)
	if err != nil {
		var msg string
		var code int
		switch {
		case errors.Is(err, service.ErrBadResetKey):
			msg, code = "Wrong reset key.", http.StatusUnauthorized
		case errors.Is(err, service.ErrPasswordTooShort):
			msg, code = "Password must be at least 8 characters.", http.StatusBadRequest
		case errors.Is(err, service.ErrPasswordMismatch):
			msg, code = "Passwords do not match.", http.StatusBadRequest
		default:
			slogx.FromContext(r.Context()).Error("password reset", "error", err)
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(code)
		renderTemplate(w, r, h.Templates, "admin_password_reset.html", map[string]any{
			"Error": msg,
		})
		return
	}

	slogx.FromContext(r.Context()).Info("admin password updated")
	renderTemplate(w, r, h.Templates, "admin_password_reset.html", map[string]any{
		"Success": true,
	})
}
