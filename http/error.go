package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/ingest"
)

// internalErrorMessage is returned for every error outside the taxonomy.
const internalErrorMessage = "Failed to fetch content from URL"

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(err error) int {
	switch {
	case ingest.IsUserError(err):
		return http.StatusBadRequest
	case ingest.ErrorCode(err) == ingest.EUNAUTHORIZED:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error response. Internal errors are logged and
// reported with a generic message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := ErrorStatusCode(err)

	message := ingest.ErrorMessage(err)
	if status == http.StatusInternalServerError {
		s.logger().Error("request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		message = internalErrorMessage
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
