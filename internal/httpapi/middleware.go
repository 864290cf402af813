package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"todo-api/internal/ids"
	"todo-api/internal/observability/jsonlog"
)

type ctxKey string

const (
	requestIDKey    ctxKey = "request_id"
	RequestIDHeader        = "X-Request-Id"
)

// RequestIDFromContext returns the id assigned by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

// WithRequestID reuses the caller's X-Request-Id or mints one, and echoes it
// back on the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = ids.NewID()
		}
		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, rid)))
	})
}

// Logging writes one http_request entry per request. Server errors are
// logged at warn level.
func Logging(logger *jsonlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			fields := map[string]any{
				"rid":    RequestIDFromContext(r.Context()),
				"method": r.Method,
				"path":   r.URL.Path,
				"query":  r.URL.RawQuery,
				"status": rec.statusCode(),
				"bytes":  rec.bytes,
				"dur_ms": time.Since(start).Milliseconds(),
				"ua":     r.UserAgent(),
			}
			if rec.statusCode() >= http.StatusInternalServerError {
				logger.Warn("http_request", fields)
				return
			}
			logger.Info("http_request", fields)
		})
	}
}

// requestLogger returns logger tagged with the request id of r.
func requestLogger(logger *jsonlog.Logger, r *http.Request) *jsonlog.Logger {
	return logger.With(map[string]any{"rid": RequestIDFromContext(r.Context())})
}

// Recover turns a handler panic into a 500 so one bad request cannot take
// the process down. When the handler had already started its response the
// connection is aborted instead.
func Recover(logger *jsonlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w}
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				requestLogger(logger, r).Error("handler panic", map[string]any{
					"panic":   fmt.Sprint(v),
					"written": rec.status != 0,
				})
				if rec.status != 0 {
					panic(http.ErrAbortHandler)
				}
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"status": "Internal error",
					"error":  "internal server error",
				})
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// Timeout bounds the request context so store calls give up after d.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
