package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportStrength struct {
	ID       string  `json:"id" example:"analyst"`
	Name     string  `json:"name" example:"Analyst"`
	Category string  `json:"category,omitempty" example:"thinking_learning"`
	Score    float64 `json:"score" example:"4.6"`
	Percent  float64 `json:"percent" example:"90"`
}

type ExportCategory struct {
	Category  string           `json:"category" example:"thinking_learning"`
	Name      string           `json:"name" example:"Thinking & Learning"`
	Strengths []ExportStrength `json:"strengths"`
}

type ExportResult struct {
	AttemptID    string           `json:"attempt_id"`
	Scheme       string           `json:"scheme" example:"likert"`
	CompletedAt  string           `json:"completed_at"`
	TopStrengths []ExportStrength `json:"top_strengths"`
	Categories   []ExportCategory `json:"categories,omitempty"`
}

type ExportData struct {
	Version    string         `json:"version"`
	ExportedAt string         `json:"exported_at"`
	UserID     string         `json:"user_id"`
	Results    []ExportResult `json:"results"`
}

func exportStrengths(scores []scoring.StrengthScore) []ExportStrength {
	out := make([]ExportStrength, len(scores))
	for i, s := range scores {
		out[i] = ExportStrength{
			ID:       s.Strength.ID,
			Name:     s.Strength.Name,
			Category: string(s.Strength.Category),
			Score:    s.Score,
			Percent:  s.Percent,
		}
	}
	return out
}

func exportResult(r *store.StoredResult) ExportResult {
	er := ExportResult{
		AttemptID:    r.AttemptID,
		Scheme:       string(r.Scheme),
		CompletedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		TopStrengths: exportStrengths(r.Result.TopStrengths),
	}
	for _, c := range r.Result.Categories {
		er.Categories = append(er.Categories, ExportCategory{
			Category:  string(c.Category),
			Name:      c.Name,
			Strengths: exportStrengths(c.Strengths),
		})
	}
	return er
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listResults returns a user's results, newest first.
// @Summary      List a user's results
// @Tags         Results
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {array}   store.StoredResult
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/results [get]
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.assessments.Results(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.logger.Error("failed to load results", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if results == nil {
		results = []*store.StoredResult{}
	}
	respondJSON(w, http.StatusOK, results)
}

// exportResults returns a user's results in the report/certificate shape.
// @Summary      Export a user's results
// @Description  Downloads every result of the user as a JSON attachment for report rendering.
// @Tags         Results
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  ExportData
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/results/export [get]
func (h *Handler) exportResults(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	results, err := h.assessments.Results(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load results", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load results")
		return
	}

	exportData := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		UserID:     userID,
		Results:    make([]ExportResult, 0, len(results)),
	}
	for _, res := range results {
		exportData.Results = append(exportData.Results, exportResult(res))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment("strengths-"+userID+".json"))
	json.NewEncoder(w).Encode(exportData)
}

// attachment builds a Content-Disposition value with filename quoted or
// RFC 2231 encoded as needed.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
