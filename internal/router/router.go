package router

import (
	"fmt"
	"net/http"

	"ncfqr/internal/handlers"
	"ncfqr/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	CORSOrigin    string
	SessionCookie string
	Tokens        *middleware.SessionTokens
}

func RegisterRouter(h *handlers.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(opts.CORSOrigin))
	r.Use(middleware.LoggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/api/v1/catalog", h.Catalog)
	// Stateless generation for callers that keep their own form state.
	r.Post("/api/v1/qrcode", h.GenerateQRCode)

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(opts.Tokens, opts.SessionCookie))
		r.Get("/", h.GetSession)
		r.Patch("/fields", h.EditField)
		r.Post("/generate", h.GenerateSession)
		r.Post("/reset", h.ResetSession)
		r.Delete("/notice", h.DismissNotice)
		r.Get("/qrcode", h.DownloadQRCode)
	})
	return r
}
