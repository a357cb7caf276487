package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
)

type ctxKey string

const subjectKey ctxKey = "subject"

// credential returns the Authorization header value. The value is the raw
// token; a "Bearer " scheme is not understood and fails verification.
func credential(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
}

func subjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey).(string)
	return s
}

// protected runs h through auth.Protect, so h only sees requests carrying a
// valid access token. The verified subject is available through subjectFrom.
func (a *API) protected(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := auth.Protect(a.accessGuard, credential(r), func(subject string) (struct{}, error) {
			h(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subject)))
			return struct{}{}, nil
		})
		if err != nil {
			a.writeError(w, r, err)
		}
	}
}

// cors answers preflight requests and decorates responses for the single
// allowed origin.
func cors(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if r.Header.Get("Origin") == origin {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loggingRecorder struct {
	http.ResponseWriter
	status int
}

func (l *loggingRecorder) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &loggingRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		a.logger.Info(r.Context(), "http request",
			"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start).String())
	})
}
