package service

import (
	"time"

	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/forcedchoice"
	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/domain/strength"
	"github.com/strengthscope/backend/internal/scoring"
)

// AttemptView is a read-only snapshot of an attempt, safe to hand to callers
// outside the service lock.
type AttemptView struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"user_id"`
	Scheme      scoring.Scheme          `json:"scheme"`
	Questions   []strength.Question     `json:"questions,omitempty"`
	Pairs       []pairing.StatementPair `json:"pairs,omitempty"`
	Choices     []forcedchoice.Question `json:"choices,omitempty"`
	Answered    int                     `json:"answered"`
	Total       int                     `json:"total"`
	Missing     []string                `json:"missing"`
	Complete    bool                    `json:"complete"`
	Completed   bool                    `json:"completed"`
	StartedAt   time.Time               `json:"started_at"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	ExpiresAt   *time.Time              `json:"expires_at,omitempty"`
	// ShortPairSet is set when pair construction could not fill every slot.
	ShortPairSet bool `json:"short_pair_set,omitempty"`
}

// AnswerOutcome reports the attempt's progress after an answer.
type AnswerOutcome struct {
	Replaced bool `json:"replaced"`
	Answered int  `json:"answered"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
}

// view copies a into an AttemptView. Callers hold as.mu or own a exclusively.
func (as *AssessmentService) view(a *attempt.Attempt) *AttemptView {
	v := &AttemptView{
		ID:           a.ID,
		UserID:       a.UserID,
		Scheme:       a.Scheme,
		Questions:    append([]strength.Question(nil), a.Questions...),
		Pairs:        append([]pairing.StatementPair(nil), a.Pairs.Pairs...),
		Choices:      append([]forcedchoice.Question(nil), a.Choices...),
		Answered:     a.Answered(),
		Total:        a.ItemCount(),
		Missing:      a.Missing(),
		Complete:     a.IsComplete(),
		Completed:    a.IsCompleted(),
		StartedAt:    a.StartedAt,
		ShortPairSet: a.Scheme == scoring.SchemePairwise && !a.Pairs.Complete(),
	}
	if v.Missing == nil {
		v.Missing = []string{}
	}
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		v.CompletedAt = &t
	}
	if a.MaxDuration != nil {
		t := a.StartedAt.Add(*a.MaxDuration)
		v.ExpiresAt = &t
	}
	return v
}
