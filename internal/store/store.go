package store

import (
	"context"
	"errors"
	"time"

	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/scoring"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store persists attempts, their answers and scored results.
type Store interface {
	SaveAttempt(ctx context.Context, a *attempt.Attempt) error
	GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error)
	// SaveResponse upserts one answer; a second answer to the same item
	// replaces the first.
	SaveResponse(ctx context.Context, attemptID string, r response.Entry) error
	MarkCompleted(ctx context.Context, attemptID string, completedAt time.Time) error

	SaveResult(ctx context.Context, r *StoredResult) error
	GetResult(ctx context.Context, attemptID string) (*StoredResult, error)
	ListResults(ctx context.Context, userID string) ([]*StoredResult, error)

	Close() error
}

// StoredResult is a scored attempt as kept for a user's history.
type StoredResult struct {
	AttemptID string             `json:"attempt_id"`
	UserID    string             `json:"user_id"`
	Scheme    scoring.Scheme     `json:"scheme"`
	Result    scoring.UserResult `json:"result"`
	CreatedAt time.Time          `json:"created_at"`
}
