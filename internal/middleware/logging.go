package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/eswan18/fitness-api-sub000/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id LogRequest attached to ctx, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogRequest tags every request with an id (taken from X-Request-ID when the client sent one)
// and logs it once the handler returns.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			begin := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID)))

			clientIP := pkg.ClientIP(r)
			fields := log.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     resp.statusCode,
				"took":       time.Since(begin).String(),
				"ua":         r.Header.Get("User-Agent"),
			}
			if clientIP != "" && !pkg.IPIsLocal(clientIP) {
				fields["ip"] = clientIP
			}
			log.WithFields(fields).Debug("request served")
		})
	}
}
