package http

import (
	"encoding/json"
	"net/http"
)

// ingestRequest is the body of POST /ingest.
type ingestRequest struct {
	URL string `json:"url"`
}

// handleIngest runs one ingestion. A body that does not decode is treated as
// a missing url so the caller gets the same validation error.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req)

	result, err := s.IngestService.Ingest(r.Context(), req.URL)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
