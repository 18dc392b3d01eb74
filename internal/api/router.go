// internal/api/router.go
package api

import "net/http"

// RegisterRoutes mounts every API route on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Catalog
	mux.HandleFunc("GET /catalog/strengths", h.listStrengths)
	mux.HandleFunc("GET /catalog/questions", h.listQuestions)
	mux.HandleFunc("GET /catalog/forced-choice", h.getForcedChoiceCatalog)

	// Attempts
	mux.HandleFunc("POST /attempts", h.startAttempt)
	mux.HandleFunc("GET /attempts/{attemptID}", h.getAttempt)
	mux.HandleFunc("PUT /attempts/{attemptID}/responses", h.submitResponse)
	mux.HandleFunc("POST /attempts/{attemptID}/complete", h.completeAttempt)
	mux.HandleFunc("POST /attempts/{attemptID}/retake", h.retakeAttempt)
	mux.HandleFunc("GET /attempts/{attemptID}/result", h.getResult)

	// Results
	mux.HandleFunc("GET /users/{userID}/results", h.listResults)
	mux.HandleFunc("GET /users/{userID}/results/export", h.exportResults)
}
