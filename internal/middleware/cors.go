package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"https://fitness.ethanswan.com",
}

// Cors allows the dashboard origins plus origin-less tools such as curl and fitnessctl.
// Extra origins come from config.
func Cors(extraOrigins ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(defaultAllowedOrigins)+len(extraOrigins))
	for _, o := range defaultAllowedOrigins {
		allowed[o] = true
	}
	for _, o := range extraOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			userAgent := r.Header.Get("User-Agent")

			switch {
			case allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Headers",
					"Accept, Content-Type, Content-Length, Accept-Encoding, X-Request-ID",
				)
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PATCH, DELETE")
			case origin == "" && (strings.HasPrefix(userAgent, "curl/") ||
				strings.HasPrefix(userAgent, "fitnessctl/") ||
				strings.HasPrefix(userAgent, "test-agent")):
			default:
				log.Warnf("CORS: origin not allowed for path [%s], origin [%s], UA [%s]", r.URL.Path, origin, userAgent)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
