package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminTokenMiddleware guards dashboard routes with a shared token. An empty
// token leaves the routes open.
func AdminTokenMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				log.Warn().Str("path", r.URL.Path).Str("remote_addr", r.RemoteAddr).Msg("Rejected dashboard request: bad admin token")
				respondWithError(w, http.StatusUnauthorized, "Admin token required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
