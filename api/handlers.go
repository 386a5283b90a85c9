package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/model-bench/internal/history"
	"github.com/stellarlinkco/model-bench/internal/report"
)

const defaultRunsLimit = 20

type runResponse struct {
	ID              int64   `json:"id"`
	Model           string  `json:"model"`
	Provider        string  `json:"provider"`
	PromptsFile     string  `json:"prompts_file"`
	Total           int     `json:"total"`
	Correct         int     `json:"correct"`
	AccuracyPercent float64 `json:"accuracy_percent"`
	TotalLatencyMs  int64   `json:"total_latency_ms"`
	RunDir          string  `json:"run_dir"`
	CreatedAt       string  `json:"created_at"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusServiceUnavailable, errors.New("run store unavailable"))
		return
	}

	limit, err := parseLimitParam(c.Query("limit"), defaultRunsLimit)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var runs []history.Run
	model := strings.TrimSpace(c.Query("model"))
	if model != "" {
		runs, err = s.store.ByModel(c.Request.Context(), model, limit)
	} else {
		runs, err = s.store.List(c.Request.Context(), limit)
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]runResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, toRunResponse(&r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusServiceUnavailable, errors.New("run store unavailable"))
		return
	}

	id, err := parseRunID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	run, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(c, http.StatusNotFound, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, toRunResponse(run))
}

// handleGetRunReport serves the stored correctness report of one run.
func (s *Server) handleGetRunReport(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusServiceUnavailable, errors.New("run store unavailable"))
		return
	}

	id, err := parseRunID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	run, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(c, http.StatusNotFound, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	path := filepath.Join(run.RunDir, report.Filename)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, fmt.Errorf("report for run %d not found", id))
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "application/json", b)
}

func toRunResponse(r *history.Run) runResponse {
	return runResponse{
		ID:              r.ID,
		Model:           r.Model,
		Provider:        r.Provider,
		PromptsFile:     r.PromptsFile,
		Total:           r.Total,
		Correct:         r.Correct,
		AccuracyPercent: r.AccuracyPercent,
		TotalLatencyMs:  r.TotalLatencyMs,
		RunDir:          r.RunDir,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseRunID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q", raw)
	}
	return id, nil
}

func parseLimitParam(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}

func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
