package httpapi

import (
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var (
	errBodyTooLarge = errors.New("payload too large")
	errBodyRead     = errors.New("failed to read body")
)

// readTodoBody reads the whole request body, refusing anything over
// maxBodyBytes.
func readTodoBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errBodyRead
	}
	return b, nil
}
