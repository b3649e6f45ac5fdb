package web

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spanlex/spanlex/dump"
)

// maxPostSize caps the body of POST /api/tokens. Playground snippets are
// small; anything larger is a mistake.
const maxPostSize = 1 << 20

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type SourceResponse struct {
	Filepath string `json:"filepath"`
	Source   string `json:"source"`
}

type VersionResponse struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commit"`
}

// handleGetSource handles GET requests to /api/source.
// Returns the served file's current content as JSON.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	content, err := os.ReadFile(s.file)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, &SourceResponse{
		Filepath: s.file,
		Source:   string(content),
	})
}

// handleGetTokens handles GET requests to /api/tokens.
// Returns the cached token stream of the served file.
func (s *Server) handleGetTokens(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	st := s.stream
	s.mu.RUnlock()

	if st == nil {
		http.Error(w, "No document loaded", http.StatusServiceUnavailable)
		return
	}

	writeJSONResponse(w, dump.ToJSON(st))
}

// handlePostTokens handles POST requests to /api/tokens.
// Tokenizes the posted text and returns the token stream without touching
// the served file.
func (s *Server) handlePostTokens(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Source string `json:"source"`
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostSize)).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	st, err := s.playground.Scan(r.Context(), []byte(request.Source))
	if err != nil {
		http.Error(w, "Failed to tokenize input", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, dump.ToJSON(st))
}

// handleGetVersion handles GET requests to /api/version.
func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, &VersionResponse{
		Version:   s.Version,
		CommitSHA: s.CommitSHA,
	})
}
