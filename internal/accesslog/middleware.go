package accesslog

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fbarbosa/hr-management/internal"
)

const auditedPrefix = "/api/"

// statusWriter captures the status code written by downstream handlers.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Middleware records one entry per audited request, whatever the
// outcome. It runs outside authentication, so the actor and company are
// read back from the audit record the inner middlewares fill in.
func Middleware(recorder *Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, auditedPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, audit := internal.ContextWithAudit(r.Context())
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r.WithContext(ctx))

			userID, companyCode := audit.Snapshot()
			recorder.Record(Entry{
				UserID:      userID,
				CompanyCode: companyCode,
				Method:      r.Method,
				Path:        r.URL.Path,
				Query:       r.URL.RawQuery,
				StatusCode:  sw.status,
				IPAddress:   clientIP(r),
				UserAgent:   r.UserAgent(),
				DurationMs:  time.Since(start).Milliseconds(),
				CreatedAt:   time.Now().UTC(),
			})
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, which is the original
// client when the service sits behind a trusted proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
