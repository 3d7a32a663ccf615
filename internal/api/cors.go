package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http/httpguts"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type"}
)

// ParseAllowedOrigins splits a comma-separated origin list. Blank entries are
// dropped silently; entries that are not valid header values are dropped with
// a warning. It never fails: the worst case is an empty list.
func ParseAllowedOrigins(raw string) []string {
	var origins []string
	seen := make(map[string]bool)
	for _, entry := range strings.Split(raw, ",") {
		origin := strings.TrimSpace(entry)
		if origin == "" {
			continue
		}
		if !httpguts.ValidHeaderFieldValue(origin) {
			log.Warn().Str("origin", origin).Msg("ignoring invalid allowed origin")
			continue
		}
		if seen[origin] {
			continue
		}
		seen[origin] = true
		origins = append(origins, origin)
	}
	return origins
}

// NewCORS returns middleware that answers preflight requests and tags
// responses for the given origins only. Origins are matched exactly; an
// empty list allows no cross-origin caller.
func NewCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	cors := handlers.CORS(
		handlers.AllowedOriginValidator(func(origin string) bool {
			_, ok := allowed[origin]
			return ok
		}),
		handlers.AllowedMethods(corsMethods),
		handlers.AllowedHeaders(corsHeaders),
	)

	return func(next http.Handler) http.Handler {
		h := cors(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The allowed origin varies per request, so caches must key on it.
			w.Header().Add("Vary", "Origin")
			h.ServeHTTP(w, r)
		})
	}
}
