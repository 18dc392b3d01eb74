package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartAttemptRequest struct {
	UserID         string `json:"user_id" example:"u-42"`
	Scheme         string `json:"scheme" example:"pairwise"`
	MaxDurationMin *int   `json:"max_duration_min,omitempty" example:"30"`
}

func (r *StartAttemptRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	if _, err := scoring.ParseScheme(r.Scheme); err != nil {
		return errors.New("invalid scheme: must be likert, pairwise, or forced_choice")
	}
	if r.MaxDurationMin != nil && *r.MaxDurationMin <= 0 {
		return errors.New("max_duration_min must be positive")
	}
	return nil
}

// SubmitResponseRequest carries one answer. Likert answers set question_id
// and score, pairwise answers set pair_id and score, forced-choice answers
// set question_id and value.
type SubmitResponseRequest struct {
	QuestionID string `json:"question_id,omitempty" example:"q017"`
	PairID     string `json:"pair_id,omitempty" example:"pair-03"`
	Score      *int   `json:"score,omitempty" example:"2"`
	Value      *int   `json:"value,omitempty" example:"-3"`
}

func (r *SubmitResponseRequest) Validate() error {
	switch {
	case r.PairID != "" && r.QuestionID != "":
		return errors.New("set either question_id or pair_id, not both")
	case r.PairID == "" && r.QuestionID == "":
		return errors.New("question_id or pair_id is required")
	case r.Score != nil && r.Value != nil:
		return errors.New("set either score or value, not both")
	case r.Score == nil && r.Value == nil:
		return errors.New("score or value is required")
	case r.PairID != "" && r.Score == nil:
		return errors.New("pairwise answers need a score")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startAttempt creates a new attempt.
// @Summary      Start an attempt
// @Description  Starts an attempt under one scoring scheme. Pairwise attempts get a freshly built pair set.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        body  body      StartAttemptRequest  true  "Attempt to start"
// @Success      201   {object}  service.AttemptView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /attempts [post]
func (h *Handler) startAttempt(w http.ResponseWriter, r *http.Request) {
	var req StartAttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	scheme, _ := scoring.ParseScheme(req.Scheme)
	var maxDuration *time.Duration
	if req.MaxDurationMin != nil {
		d := time.Duration(*req.MaxDurationMin) * time.Minute
		maxDuration = &d
	}

	view, err := h.assessments.Start(r.Context(), req.UserID, scheme, maxDuration)
	if h.handleServiceError(w, err, "attempt") {
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// getAttempt returns an attempt with its items and progress.
// @Summary      Get an attempt
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  service.AttemptView
// @Failure      404        {object}  map[string]string
// @Router       /attempts/{attemptID} [get]
func (h *Handler) getAttempt(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessments.Get(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err, "attempt") {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// submitResponse records or replaces one answer.
// @Summary      Submit an answer
// @Description  Records one answer. Answering the same item again replaces the earlier answer.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        attemptID  path      string                 true  "Attempt ID"
// @Param        body       body      SubmitResponseRequest  true  "Answer"
// @Success      200        {object}  service.AnswerOutcome
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "attempt already completed"
// @Failure      410        {object}  map[string]string  "time limit exceeded"
// @Router       /attempts/{attemptID}/responses [put]
func (h *Handler) submitResponse(w http.ResponseWriter, r *http.Request) {
	var req SubmitResponseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	attemptID := r.PathValue("attemptID")

	var (
		outcome *service.AnswerOutcome
		err     error
	)
	switch {
	case req.PairID != "":
		outcome, err = h.assessments.AnswerPair(ctx, attemptID, response.Pair{PairID: req.PairID, Score: *req.Score})
	case req.Value != nil:
		outcome, err = h.assessments.AnswerForcedChoice(ctx, attemptID, response.ForcedChoice{QuestionID: req.QuestionID, Value: *req.Value})
	default:
		outcome, err = h.assessments.AnswerLikert(ctx, attemptID, response.Likert{QuestionID: req.QuestionID, Score: *req.Score})
	}
	if h.handleServiceError(w, err, "attempt") {
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// completeAttempt scores a fully answered attempt.
// @Summary      Complete an attempt
// @Description  Closes the attempt and returns its result. Every item must be answered.
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  store.StoredResult
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "unanswered items or already completed"
// @Router       /attempts/{attemptID}/complete [post]
func (h *Handler) completeAttempt(w http.ResponseWriter, r *http.Request) {
	result, err := h.assessments.Complete(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err, "attempt") {
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// retakeAttempt starts a fresh attempt with the same user and scheme.
// @Summary      Retake an attempt
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      201        {object}  service.AttemptView
// @Failure      404        {object}  map[string]string
// @Router       /attempts/{attemptID}/retake [post]
func (h *Handler) retakeAttempt(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessments.Retake(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err, "attempt") {
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// getResult returns the result of a completed attempt.
// @Summary      Get an attempt result
// @Tags         Results
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  store.StoredResult
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "attempt not completed"
// @Router       /attempts/{attemptID}/result [get]
func (h *Handler) getResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.assessments.Result(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err, "attempt") {
		return
	}
	respondJSON(w, http.StatusOK, result)
}
