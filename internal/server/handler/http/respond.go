// Package http provides the REST handlers and router of the studio API.
package http

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/service"
)

// maxJSONBody caps decoded JSON request bodies.
const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v. On failure it writes a 400
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// writeServiceError maps a service error to its HTTP status. Unexpected
// errors are logged and answered with the generic fallback message.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, fallback string) {
	var se *service.Error
	if errors.As(err, &se) {
		switch {
		case errors.Is(se, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, se.Message)
			return
		case errors.Is(se, service.ErrNotFound):
			writeError(w, http.StatusNotFound, se.Message)
			return
		case errors.Is(se, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, se.Message)
			return
		}
	}
	if log != nil {
		log.Error(fallback,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeError(w, http.StatusInternalServerError, fallback)
}
