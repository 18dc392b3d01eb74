package store_test

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/store"
)

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newAttempt(t *testing.T, scheme scoring.Scheme) (*attempt.Attempt, *catalog.Catalogs) {
	t.Helper()
	cats, err := catalog.Default()
	require.NoError(t, err)

	config := attempt.DefaultConfig()
	config.Rand = rand.New(rand.NewSource(42))
	a, err := attempt.New("user-1", scheme, cats, config)
	require.NoError(t, err)
	return a, cats
}

func TestSQLite_AttemptRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, scheme := range []scoring.Scheme{scoring.SchemeLikert, scoring.SchemePairwise, scoring.SchemeForcedChoice} {
		t.Run(string(scheme), func(t *testing.T) {
			a, _ := newAttempt(t, scheme)
			require.NoError(t, s.SaveAttempt(ctx, a))

			got, err := s.GetAttempt(ctx, a.ID)
			require.NoError(t, err)

			assert.Equal(t, a.UserID, got.UserID)
			assert.Equal(t, a.Scheme, got.Scheme)
			assert.Equal(t, a.ItemIDs(), got.ItemIDs())
			assert.True(t, a.StartedAt.Equal(got.StartedAt))
			assert.Nil(t, got.CompletedAt)
			assert.Nil(t, got.MaxDuration)
		})
	}
}

func TestSQLite_GetAttemptNotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.GetAttempt(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_ResponsesUpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	a, _ := newAttempt(t, scoring.SchemeLikert)
	require.NoError(t, s.SaveAttempt(ctx, a))

	first, second := a.Questions[0].ID, a.Questions[1].ID
	require.NoError(t, s.SaveResponse(ctx, a.ID, response.Likert{QuestionID: first, Score: 2}))
	require.NoError(t, s.SaveResponse(ctx, a.ID, response.Likert{QuestionID: second, Score: 3}))
	require.NoError(t, s.SaveResponse(ctx, a.ID, response.Likert{QuestionID: first, Score: 5}))

	got, err := s.GetAttempt(ctx, a.ID)
	require.NoError(t, err)

	assert.Equal(t, []response.Likert{
		{QuestionID: first, Score: 5},
		{QuestionID: second, Score: 3},
	}, got.LikertResponses())
}

func TestSQLite_ForcedChoiceResponsesKeepTraits(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	a, _ := newAttempt(t, scoring.SchemeForcedChoice)
	require.NoError(t, s.SaveAttempt(ctx, a))

	q := a.Choices[0]
	r := response.ForcedChoice{QuestionID: q.ID, Value: -3, TraitA: q.TraitA, TraitB: q.TraitB}
	require.NoError(t, s.SaveResponse(ctx, a.ID, r))

	got, err := s.GetAttempt(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []response.ForcedChoice{r}, got.ForcedChoiceResponses())
}

func TestSQLite_MarkCompletedAndMaxDuration(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	a, _ := newAttempt(t, scoring.SchemePairwise)
	limit := 15 * time.Minute
	a.MaxDuration = &limit
	require.NoError(t, s.SaveAttempt(ctx, a))

	done := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkCompleted(ctx, a.ID, done))

	got, err := s.GetAttempt(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
	require.NotNil(t, got.MaxDuration)
	assert.Equal(t, limit, *got.MaxDuration)
	assert.Equal(t, len(a.Pairs.Pairs), len(got.Pairs.Pairs))

	assert.ErrorIs(t, s.MarkCompleted(ctx, "missing", done), store.ErrNotFound)
}

func TestSQLite_Results(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	older, cats := newAttempt(t, scoring.SchemeLikert)
	newer, _ := newAttempt(t, scoring.SchemeLikert)
	require.NoError(t, s.SaveAttempt(ctx, older))
	require.NoError(t, s.SaveAttempt(ctx, newer))

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, a := range []*attempt.Attempt{older, newer} {
		require.NoError(t, s.SaveResult(ctx, &store.StoredResult{
			AttemptID: a.ID,
			UserID:    a.UserID,
			Scheme:    a.Scheme,
			Result:    a.Score(cats),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := s.GetResult(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, scoring.SchemeLikert, got.Result.Scheme)
	assert.Len(t, got.Result.Ranking, 20)

	list, err := s.ListResults(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].AttemptID)
	assert.Equal(t, older.ID, list[1].AttemptID)

	none, err := s.ListResults(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.GetResult(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_ReopenRunsMigrationsIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := store.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
