package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oasdocs/builder"
	"github.com/erraggy/oasdocs/oaserrors"
)

type updatePathRequest struct {
	Document map[string]any `json:"document"`
	PathName string         `json:"path_name"`
	Fragment string         `json:"fragment"`
}

type getPathRequest struct {
	Document map[string]any `json:"document"`
	Paths    []string       `json:"paths"`
}

// handleBuild builds a document from the raw request body (YAML or JSON text).
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		bodyError(w, err)
		return
	}
	s.writeResult(w, s.builder.Build(r.Context(), string(data)))
}

// handleBuildObject builds a document from an already parsed JSON tree.
func (s *Server) handleBuildObject(w http.ResponseWriter, r *http.Request) {
	var tree map[string]any
	if err := json.NewDecoder(r.Body).Decode(&tree); err != nil {
		bodyError(w, err)
		return
	}
	s.writeResult(w, s.builder.BuildObject(r.Context(), tree))
}

func (s *Server) handleUpdatePath(w http.ResponseWriter, r *http.Request) {
	var req updatePathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		bodyError(w, err)
		return
	}
	if req.PathName == "" {
		jsonError(w, "path_name is required", http.StatusBadRequest)
		return
	}
	s.writeResult(w, s.builder.UpdatePath(req.Fragment, req.PathName, req.Document))
}

func (s *Server) handleGetPath(w http.ResponseWriter, r *http.Request) {
	var req getPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		bodyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"paths": builder.GetPath(req.Document, req.Paths...)})
}

// writeResult sends the result envelope. Documents that built, including those
// that failed validation, are 200; every other failure is 422.
func (s *Server) writeResult(w http.ResponseWriter, result *builder.Result) {
	status := http.StatusOK
	if result.Err != nil && !errors.Is(result.Err, oaserrors.ErrValidation) {
		status = http.StatusUnprocessableEntity
		s.log.Debug("build failed", "error", result.Err)
	}
	writeJSON(w, status, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func bodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		jsonError(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return
	}
	jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
}
