package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter registers the service routes on a gorilla/mux router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/history/{symbol}", h.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/symbols", h.ListSymbols).Methods(http.MethodGet)
	return r
}

// NewServerHandler wraps the router with request IDs, access logging, panic
// recovery and the CORS policy, outermost first.
func NewServerHandler(h *Handler, origins []string, base zerolog.Logger) http.Handler {
	var handler http.Handler = NewRouter(h)
	handler = NewCORS(origins)(handler)
	handler = Recover(base)(handler)
	handler = AccessLog("/health")(handler)
	handler = RequestID(base)(handler)
	return handler
}
