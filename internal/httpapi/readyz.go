package httpapi

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything that can tell whether its backing store answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const readyTimeout = 1 * time.Second

// ReadyzHandler answers 200 while p responds to a ping within a second and
// 503 otherwise.
func ReadyzHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := p.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeStatus(w, "ready")
	}
}
