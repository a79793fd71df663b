package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/adrkit/internal/adrservice"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events behind the same auth.
func NewRouter(svc *adrservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/adrs", h.ListADRs)
	r.Post("/adrs", h.CreateADR)
	r.Get("/adrs/{filename}", h.GetADR)
	r.Post("/adrs/{filename}/notes", h.LinkADR)

	r.Get("/next", h.Next)
	r.Get("/record", h.Record)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
