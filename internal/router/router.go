package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"portfolio-site/internal/handlers"
	"portfolio-site/internal/middleware"
	"portfolio-site/internal/services"
)

// RequestTimeout bounds every request and stays above the assistant's outbound timeout.
const RequestTimeout = services.DefaultAssistantTimeout + 15*time.Second

func New(
	sessions *middleware.Sessions,
	assistantLimiter *middleware.RateLimiter,
	pageHandler *handlers.PageHandler,
	assistantHandler *handlers.AssistantHandler,
	themeHandler *handlers.ThemeHandler,
	static http.FileSystem,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(RequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static)))

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		// ──── Pages ────
		r.Get("/", pageHandler.Home)
		r.Get("/projects", pageHandler.Projects)
		r.Get("/about", pageHandler.About)
		r.Get("/blog", pageHandler.Blog)
		r.Get("/blog/{slug}", pageHandler.Post)
		r.Get("/contact", pageHandler.Contact)
		r.Post("/contact", pageHandler.SubmitContact)

		// ──── Theme ────
		r.Post("/set-theme", themeHandler.SetTheme)

		r.NotFound(pageHandler.NotFound)
	})

	// ──── Assistant ────
	r.With(assistantLimiter.Middleware).Post("/ask_ai", assistantHandler.Ask)

	return r
}
