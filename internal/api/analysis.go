package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/petrosight/internal/analysis"
	"github.com/MikeSquared-Agency/petrosight/internal/processor"
)

const (
	maxBodyBytes    = 1 << 20
	defaultRunLimit = 20
	maxRunLimit     = 100
)

type analysisResponse struct {
	Success    bool      `json:"success"`
	Data       any       `json:"data,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	AnalysisID string    `json:"analysisId,omitempty"`
}

// runAnalysis handles POST /api/v1/analysis.
func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, analysisResponse{
			Error:     fmt.Sprintf("invalid JSON: %v", err),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	id := req.EnsureID()

	res, err := s.exec.Execute(r.Context(), processor.TriggerHTTP, req)
	if err != nil {
		code := http.StatusInternalServerError
		if analysis.IsRequestError(err) {
			code = http.StatusBadRequest
		}
		writeJSON(w, code, analysisResponse{
			Error:      err.Error(),
			Timestamp:  time.Now().UTC(),
			AnalysisID: id.String(),
		})
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		Success:    true,
		Data:       res.Data,
		Timestamp:  time.Now().UTC(),
		AnalysisID: res.ID.String(),
	})
}

// listRuns handles GET /api/v1/analysis/runs.
func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.opts.Runs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "run store not configured"})
		return
	}

	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRunLimit)
	}

	runs, err := s.opts.Runs.RecentRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list analysis runs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// BearerAuthMiddleware requires "Authorization: Bearer <token>". An empty
// token disables the check.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
