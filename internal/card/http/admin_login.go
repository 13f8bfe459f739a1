package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/pkg/sessionx"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

// AdminLoginHandler runs the two-state login flow: a wrong password
// re-renders the form with an inline error and never touches the cookie.
type AdminLoginHandler struct {
	AdminService  *service.AdminService
	Sessions      *sessionx.Manager
	Templates     *template.Template
	SecureCookies bool
}

func (h *AdminLoginHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, h.Templates, "admin_login.html", map[string]any{})
}

func (h *AdminLoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	password := r.PostForm.Get("password")
	if err := h.AdminService.Authenticate(r.Context(), password); err != nil {
		switch {
		case errors.Is(err, service.ErrBadCredentials), errors.Is(err, service.ErrNoCredential):
			slogx.FromContext(r.Context()).Warn("admin login rejected")
			w.WriteHeader(http.StatusUnauthorized)
			renderTemplate(w, r, h.Templates, "admin_login.html", map[string]any{
				"Error": "Wrong password.",
			})
		default:
			slogx.FromContext(r.Context()).Error("admin login", "error", err)
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		}
		return
	}

	token, err := h.Sessions.Issue()
	if err != nil {
		slogx.FromContext(r.Context()).Error("issue session", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token, h.Sessions.TTL(), h.SecureCookies)
	slogx.FromContext(r.Context()).Info("admin logged in")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminLoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.SecureCookies)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
