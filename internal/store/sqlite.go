// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/forcedchoice"
	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/domain/strength"
	"github.com/strengthscope/backend/internal/scoring"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    scheme TEXT NOT NULL,
    items TEXT NOT NULL,
    started_at TEXT NOT NULL,
    completed_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id);

CREATE TABLE IF NOT EXISTS responses (
    attempt_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (attempt_id, item_id),
    FOREIGN KEY (attempt_id) REFERENCES attempts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS results (
    attempt_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    scheme TEXT NOT NULL,
    result TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (attempt_id) REFERENCES attempts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_user ON results(user_id);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// attemptItems is the JSON shape of the items column. Exactly one field is
// set, matching the attempt scheme.
type attemptItems struct {
	Questions []strength.Question     `json:"questions,omitempty"`
	Pairs     *pairing.PairSet        `json:"pairs,omitempty"`
	Choices   []forcedchoice.Question `json:"choices,omitempty"`
}

// timeLayout is fixed width so that text columns sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// ============================================================================
// Attempts
// ============================================================================

func (s *SQLiteStore) SaveAttempt(ctx context.Context, a *attempt.Attempt) error {
	items := attemptItems{Questions: a.Questions, Choices: a.Choices}
	if a.Scheme == scoring.SchemePairwise {
		items.Pairs = &a.Pairs
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}

	var maxDuration sql.NullInt64
	if a.MaxDuration != nil {
		maxDuration = sql.NullInt64{Int64: int64(*a.MaxDuration), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO attempts (id, user_id, scheme, items, started_at, max_duration_ns) VALUES (?, ?, ?, ?, ?, ?)",
		a.ID, a.UserID, string(a.Scheme), string(itemsJSON), formatTime(a.StartedAt), maxDuration,
	)
	return err
}

func (s *SQLiteStore) GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error) {
	var (
		a           attempt.Attempt
		scheme      string
		itemsJSON   string
		startedAt   string
		completedAt sql.NullString
		maxDuration sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, scheme, items, started_at, completed_at, max_duration_ns FROM attempts WHERE id = ?", id,
	).Scan(&a.ID, &a.UserID, &scheme, &itemsJSON, &startedAt, &completedAt, &maxDuration)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Scheme = scoring.Scheme(scheme)
	if a.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("attempt %s started_at: %w", id, err)
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("attempt %s completed_at: %w", id, err)
		}
		a.CompletedAt = &t
	}
	if maxDuration.Valid {
		d := time.Duration(maxDuration.Int64)
		a.MaxDuration = &d
	}

	var items attemptItems
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, fmt.Errorf("attempt %s items: %w", id, err)
	}
	a.Questions = items.Questions
	a.Choices = items.Choices
	if items.Pairs != nil {
		a.Pairs = *items.Pairs
	}

	if err := s.loadResponses(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLiteStore) MarkCompleted(ctx context.Context, attemptID string, completedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE attempts SET completed_at = ? WHERE id = ?",
		formatTime(completedAt), attemptID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// Responses
// ============================================================================

func (s *SQLiteStore) SaveResponse(ctx context.Context, attemptID string, r response.Entry) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}

	// The upsert keeps the original rowid, so answer order survives
	// replacement.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO responses (attempt_id, item_id, payload) VALUES (?, ?, ?)
		ON CONFLICT (attempt_id, item_id) DO UPDATE SET payload = excluded.payload
	`, attemptID, r.Key(), string(payload))
	return err
}

func (s *SQLiteStore) loadResponses(ctx context.Context, a *attempt.Attempt) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM responses WHERE attempt_id = ? ORDER BY rowid", a.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var (
		likert  []response.Likert
		pairs   []response.Pair
		choices []response.ForcedChoice
	)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return err
		}

		switch a.Scheme {
		case scoring.SchemeLikert:
			var r response.Likert
			if err := json.Unmarshal([]byte(payload), &r); err != nil {
				return err
			}
			likert = append(likert, r)
		case scoring.SchemePairwise:
			var r response.Pair
			if err := json.Unmarshal([]byte(payload), &r); err != nil {
				return err
			}
			pairs = append(pairs, r)
		case scoring.SchemeForcedChoice:
			var r response.ForcedChoice
			if err := json.Unmarshal([]byte(payload), &r); err != nil {
				return err
			}
			choices = append(choices, r)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	a.RestoreResponses(likert, pairs, choices)
	return nil
}

// ============================================================================
// Results
// ============================================================================

// SaveResult stores r, replacing any earlier result for the same attempt.
func (s *SQLiteStore) SaveResult(ctx context.Context, r *StoredResult) error {
	resultJSON, err := json.Marshal(r.Result)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (attempt_id, user_id, scheme, result, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (attempt_id) DO UPDATE SET result = excluded.result, created_at = excluded.created_at
	`, r.AttemptID, r.UserID, string(r.Scheme), string(resultJSON), formatTime(r.CreatedAt))
	return err
}

func (s *SQLiteStore) GetResult(ctx context.Context, attemptID string) (*StoredResult, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT attempt_id, user_id, scheme, result, created_at FROM results WHERE attempt_id = ?", attemptID,
	)
	r, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return r, err
}

// ListResults returns a user's results, newest first.
func (s *SQLiteStore) ListResults(ctx context.Context, userID string) ([]*StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT attempt_id, user_id, scheme, result, created_at FROM results WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*StoredResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*StoredResult, error) {
	var (
		r          StoredResult
		scheme     string
		resultJSON string
		createdAt  string
	)
	if err := row.Scan(&r.AttemptID, &r.UserID, &scheme, &resultJSON, &createdAt); err != nil {
		return nil, err
	}

	r.Scheme = scoring.Scheme(scheme)
	if err := json.Unmarshal([]byte(resultJSON), &r.Result); err != nil {
		return nil, fmt.Errorf("result %s: %w", r.AttemptID, err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("result %s created_at: %w", r.AttemptID, err)
	}
	r.CreatedAt = t
	return &r, nil
}
