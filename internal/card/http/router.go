package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/internal/card/store"
	"github.com/martinsdigital/tapcard/pkg/httpx"
	"github.com/martinsdigital/tapcard/pkg/sessionx"
	"github.com/martinsdigital/tapcard/pkg/slogx"
	"github.com/martinsdigital/tapcard/web"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	templates    *template.Template

	baseURL       string
	assetsDir     string
	secureCookies bool

	store     store.Store
	directory *directory.Directory
	sessions  *sessionx.Manager

	CardService    *service.CardService
	TrackService   *service.TrackService
	ContactService *service.ContactService
	AdminService   *service.AdminService
	StatsService   *service.StatsService
}

// RouterConfig carries the non-service knobs the handlers need.
type RouterConfig struct {
	BuildVersion  string
	BaseURL       string // external base URL encoded into QR images
	AssetsDir     string // photos, favicon; served under /static/
	SecureCookies bool   // mark the session cookie Secure (prod)
}

func NewRouter(
	cfg RouterConfig,
	st store.Store,
	dir *directory.Directory,
	sessions *sessionx.Manager,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  cfg.BuildVersion,
		startTime:     time.Now(),
		logger:        logger,
		templates:     template.Must(template.ParseFS(web.Templates, "templates/*.html")),
		baseURL:       cfg.BaseURL,
		assetsDir:     cfg.AssetsDir,
		secureCookies: cfg.SecureCookies,
		store:         st,
		directory:     dir,
		sessions:      sessions,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCards()
	r.registerTracking()
	r.registerQR()
	r.registerAdmin()
	r.registerSystem()

	if r.assetsDir != "" {
		r.Mux.Handle("GET /static/",
			http.StripPrefix("/static/", http.FileServer(http.Dir(r.assetsDir))))
		r.Mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(r.assetsDir, "favicon.ico"))
		})
	}
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCards() {
	h := &CardHandler{
		CardService:    r.CardService,
		TrackService:   r.TrackService,
		ContactService: r.ContactService,
		Templates:      r.templates,
	}

	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(h.HandleRoot),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// "{slug}" also matches "<slug>.vcf"; the handler dispatches on the
	// suffix so page and download share one route.
	r.Mux.Handle("GET /c/{slug}",
		httpx.Chain(http.HandlerFunc(h.HandleCard),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTracking() {
	h := &TrackHandler{
		CardService:  r.CardService,
		TrackService: r.TrackService,
	}

	// Tracking endpoints mutate counters, so they get the moderate
	// profile keyed by IP + slug to blunt counter inflation.
	limited := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIPAndSlug(httpx.ModerateLimit))
	}

	r.Mux.Handle("GET /go/whatsapp/{slug}", limited(h.HandleWhatsApp))
	r.Mux.Handle("GET /go/email/{slug}", limited(h.HandleEmail))
	r.Mux.Handle("GET /go/map/{slug}", limited(h.HandleMap))
	r.Mux.Handle("GET /go/share/{slug}", limited(h.HandleShare))
	r.Mux.Handle("GET /go/nfc/{slug}", limited(h.HandleNFC))
}

func (r *Router) registerQR() {
	h := &QRHandler{
		CardService: r.CardService,
		BaseURL:     r.baseURL,
	}

	r.Mux.Handle("GET /qr.png",
		httpx.Chain(http.HandlerFunc(h.HandleDefault),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /qr/{file}",
		httpx.Chain(http.HandlerFunc(h.HandleSlug),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	guard := r.requireAdmin()

	dashboard := &AdminHandler{
		StatsService: r.StatsService,
		Templates:    r.templates,
	}
	login := &AdminLoginHandler{
		AdminService:  r.AdminService,
		Sessions:      r.sessions,
		Templates:     r.templates,
		SecureCookies: r.secureCookies,
	}
	reset := &AdminPasswordHandler{
		AdminService: r.AdminService,
		Templates:    r.templates,
	}
	export := &AdminExportHandler{StatsService: r.StatsService}

	r.Mux.Handle("GET /admin",
		httpx.Chain(http.HandlerFunc(dashboard.HandleDashboard),
			guard,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /admin/reset-counters",
		httpx.Chain(http.HandlerFunc(dashboard.HandleResetCounters),
			guard,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /admin/export.csv",
		httpx.Chain(http.HandlerFunc(export.HandleExport),
			guard,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /admin/login", http.HandlerFunc(login.HandleForm))

	// POST /admin/login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /admin/login",
		httpx.Chain(http.HandlerFunc(login.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /admin/logout", http.HandlerFunc(login.HandleLogout))

	r.Mux.Handle("GET /admin/password-reset", http.HandlerFunc(reset.HandleForm))

	// POST /password-reset - strict rate limit (guards the reset key)
	r.Mux.Handle("POST /admin/password-reset",
		httpx.Chain(http.HandlerFunc(reset.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.directory),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
