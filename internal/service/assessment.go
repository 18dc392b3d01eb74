// internal/service/assessment.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/metrics"
	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/store"
	"github.com/strengthscope/backend/internal/worker"
)

// Options configures an AssessmentService. Zero values fall back to the
// defaults noted on each field.
type Options struct {
	CacheSize      int            // live attempts kept in memory, default 512
	PersistWorkers int            // background result writers, default 2
	Attempt        attempt.Config // template for new attempts
	Metrics        *metrics.Metrics
	Now            func() time.Time
}

// AssessmentService runs the attempt lifecycle. It owns the per-attempt
// WaitGroups that track background result writes, so the store stays a
// pure persistence layer.
type AssessmentService struct {
	store   store.Store
	cats    *catalog.Catalogs
	logger  *slog.Logger
	metrics *metrics.Metrics
	config  attempt.Config
	now     func() time.Time

	// mu serializes every read and mutation of cached attempts.
	mu    sync.Mutex
	cache *lru.Cache[string, *attempt.Attempt]
	rng   *rand.Rand

	pool    *worker.Pool[persistOutcome]
	drained chan struct{}

	pendingMu sync.Mutex
	pending   map[string]*pendingWrites // attemptID → writes in flight
}

// pendingWrites tracks the background writes of one attempt. It lives in
// the pending map only while n > 0.
type pendingWrites struct {
	wg sync.WaitGroup
	n  int
}

type persistOutcome struct {
	operation string
	err       error
}

// NewAssessmentService creates an AssessmentService and starts its
// persistence workers. Call Close to stop them.
func NewAssessmentService(s store.Store, cats *catalog.Catalogs, logger *slog.Logger, opts Options) (*AssessmentService, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 512
	}
	if opts.PersistWorkers <= 0 {
		opts.PersistWorkers = 2
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cache, err := lru.New[string, *attempt.Attempt](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("attempt cache: %w", err)
	}

	rng := opts.Attempt.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	as := &AssessmentService{
		store:   s,
		cats:    cats,
		logger:  logger,
		metrics: opts.Metrics,
		config:  opts.Attempt,
		now:     opts.Now,
		cache:   cache,
		rng:     rng,
		pool:    worker.NewPool[persistOutcome](opts.PersistWorkers, 64),
		drained: make(chan struct{}),
		pending: make(map[string]*pendingWrites),
	}
	go as.drain()
	return as, nil
}

// Close waits for queued writes and stops the workers.
func (as *AssessmentService) Close() {
	as.pool.Close()
	<-as.drained
}

// ── Lifecycle ──

// Start creates an attempt for userID under scheme and persists it.
func (as *AssessmentService) Start(ctx context.Context, userID string, scheme scoring.Scheme, maxDuration *time.Duration) (*AttemptView, error) {
	as.mu.Lock()
	config := as.attemptConfig(maxDuration)
	as.mu.Unlock()

	a, err := attempt.New(userID, scheme, as.cats, config)
	if err != nil {
		return nil, err
	}
	// Viewed before admit, while no other request can reach it.
	v := as.view(a)
	if err := as.admit(ctx, a); err != nil {
		return nil, err
	}

	as.logger.Info("attempt started",
		"attempt_id", a.ID,
		"user_id", userID,
		"scheme", scheme,
		"items", a.ItemCount(),
	)
	return v, nil
}

// Retake starts a fresh attempt for the same user and scheme as attemptID.
// Pairwise retakes get a newly built pair set.
func (as *AssessmentService) Retake(ctx context.Context, attemptID string) (*AttemptView, error) {
	as.mu.Lock()
	prev, err := as.load(ctx, attemptID)
	if err != nil {
		as.mu.Unlock()
		return nil, err
	}
	config := as.attemptConfig(nil)
	as.mu.Unlock()

	a, err := prev.Retake(as.cats, config)
	if err != nil {
		return nil, err
	}
	v := as.view(a)
	if err := as.admit(ctx, a); err != nil {
		return nil, err
	}

	as.logger.Info("attempt retaken",
		"attempt_id", a.ID,
		"previous_attempt_id", attemptID,
		"scheme", a.Scheme,
	)
	return v, nil
}

// Get returns the current state of an attempt.
func (as *AssessmentService) Get(ctx context.Context, attemptID string) (*AttemptView, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	a, err := as.load(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	return as.view(a), nil
}

// AnswerLikert records one Likert rating.
func (as *AssessmentService) AnswerLikert(ctx context.Context, attemptID string, r response.Likert) (*AnswerOutcome, error) {
	return answer(as, ctx, attemptID, r, (*attempt.Attempt).AnswerLikert)
}

// AnswerPair records one pairwise rating.
func (as *AssessmentService) AnswerPair(ctx context.Context, attemptID string, r response.Pair) (*AnswerOutcome, error) {
	return answer(as, ctx, attemptID, r, (*attempt.Attempt).AnswerPair)
}

// AnswerForcedChoice records one forced-choice lean.
func (as *AssessmentService) AnswerForcedChoice(ctx context.Context, attemptID string, r response.ForcedChoice) (*AnswerOutcome, error) {
	return answer(as, ctx, attemptID, r, (*attempt.Attempt).AnswerForcedChoice)
}

func answer[R response.Entry](
	as *AssessmentService,
	ctx context.Context,
	attemptID string,
	r R,
	apply func(*attempt.Attempt, R, time.Time) (bool, error),
) (*AnswerOutcome, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	a, err := as.load(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	prev, _ := a.Response(r.Key())
	replaced, err := apply(a, r, as.now())
	if err != nil {
		return nil, err
	}

	// Stored entries are what the attempt accepted, which for forced
	// choice includes the traits filled in from the question.
	stored, _ := a.Response(r.Key())
	if err := as.store.SaveResponse(ctx, a.ID, stored); err != nil {
		a.RevertResponse(r.Key(), prev)
		as.metrics.PersistError("save_response")
		return nil, fmt.Errorf("save response: %w", err)
	}

	as.metrics.ResponseRecorded(string(a.Scheme), replaced)
	return &AnswerOutcome{
		Replaced: replaced,
		Answered: a.Answered(),
		Total:    a.ItemCount(),
		Complete: a.IsComplete(),
	}, nil
}

// Complete closes the attempt and scores it. The completion time is stored
// before returning; the result is written in the background and a failed
// write is only logged, since Result can rescore a completed attempt.
func (as *AssessmentService) Complete(ctx context.Context, attemptID string) (*store.StoredResult, error) {
	as.mu.Lock()
	a, err := as.load(ctx, attemptID)
	if err != nil {
		as.mu.Unlock()
		return nil, err
	}
	now := as.now()
	if err := a.Complete(now); err != nil {
		as.mu.Unlock()
		return nil, err
	}
	if err := as.store.MarkCompleted(ctx, a.ID, now); err != nil {
		a.CompletedAt = nil
		as.mu.Unlock()
		as.metrics.PersistError("mark_completed")
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	result := &store.StoredResult{
		AttemptID: a.ID,
		UserID:    a.UserID,
		Scheme:    a.Scheme,
		Result:    a.Score(as.cats),
		CreatedAt: now.UTC(),
	}
	// Registered under mu so a later Result always sees the write.
	as.beginWrite(a.ID)
	as.mu.Unlock()

	as.metrics.ResultScored(string(a.Scheme))
	as.logger.Info("attempt completed",
		"attempt_id", a.ID,
		"user_id", a.UserID,
		"scheme", a.Scheme,
	)

	as.submitPersist(result)
	return result, nil
}

// Result returns the scored result of a completed attempt. Pending
// background writes for the attempt are awaited first.
func (as *AssessmentService) Result(ctx context.Context, attemptID string) (*store.StoredResult, error) {
	as.WaitForAttempt(attemptID)

	r, err := as.store.GetResult(ctx, attemptID)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// A completed attempt whose write failed is rescored from its log.
	as.mu.Lock()
	defer as.mu.Unlock()
	a, err := as.load(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if !a.IsCompleted() {
		return nil, fmt.Errorf("attempt %s: %w", attemptID, attempt.ErrIncomplete)
	}
	return &store.StoredResult{
		AttemptID: a.ID,
		UserID:    a.UserID,
		Scheme:    a.Scheme,
		Result:    a.Score(as.cats),
		CreatedAt: a.CompletedAt.UTC(),
	}, nil
}

// Results lists a user's stored results, newest first.
func (as *AssessmentService) Results(ctx context.Context, userID string) ([]*store.StoredResult, error) {
	return as.store.ListResults(ctx, userID)
}

// ── Background persistence ──

// WaitForAttempt blocks until all background writes for an attempt have
// finished.
func (as *AssessmentService) WaitForAttempt(attemptID string) {
	as.pendingMu.Lock()
	p, ok := as.pending[attemptID]
	as.pendingMu.Unlock()

	if ok {
		p.wg.Wait()
	}
}

// beginWrite registers one background write for attemptID. The WaitGroup
// is only ever incremented from zero while it is unreachable by waiters.
func (as *AssessmentService) beginWrite(attemptID string) {
	as.pendingMu.Lock()
	defer as.pendingMu.Unlock()
	p, ok := as.pending[attemptID]
	if !ok {
		p = &pendingWrites{}
		as.pending[attemptID] = p
	}
	p.n++
	p.wg.Add(1)
}

// endWrite marks one background write for attemptID as finished and drops
// the entry once none are left.
func (as *AssessmentService) endWrite(attemptID string) {
	as.pendingMu.Lock()
	p, ok := as.pending[attemptID]
	if !ok {
		as.pendingMu.Unlock()
		return
	}
	p.n--
	if p.n == 0 {
		delete(as.pending, attemptID)
	}
	as.pendingMu.Unlock()
	p.wg.Done()
}

// pendingCount reports how many attempts have writes in flight.
func (as *AssessmentService) pendingCount() int {
	as.pendingMu.Lock()
	defer as.pendingMu.Unlock()
	return len(as.pending)
}

// submitPersist queues the result write registered by beginWrite. It uses
// context.Background because the write must outlive the request that
// triggered it.
func (as *AssessmentService) submitPersist(result *store.StoredResult) {
	err := as.pool.Submit(result.AttemptID, func() persistOutcome {
		err := as.store.SaveResult(context.Background(), result)
		return persistOutcome{operation: "save_result", err: err}
	})
	if err != nil {
		as.metrics.PersistError("save_result")
		as.logger.Error("failed to queue result",
			"attempt_id", result.AttemptID,
			"error", err,
		)
		as.endWrite(result.AttemptID)
	}
}

func (as *AssessmentService) drain() {
	defer close(as.drained)
	for res := range as.pool.Results() {
		if res.Output.err != nil {
			as.metrics.PersistError(res.Output.operation)
			as.logger.Error("failed to persist result",
				"attempt_id", res.JobID,
				"operation", res.Output.operation,
				"error", res.Output.err,
			)
		}
		as.endWrite(res.JobID)
	}
}

// ── Internals ──

// attemptConfig derives a per-attempt config with its own random source.
// Callers hold as.mu.
func (as *AssessmentService) attemptConfig(maxDuration *time.Duration) attempt.Config {
	config := as.config
	config.Rand = rand.New(rand.NewSource(as.rng.Int63()))
	if maxDuration != nil {
		config.MaxDuration = maxDuration
	}
	return config
}

func (as *AssessmentService) admit(ctx context.Context, a *attempt.Attempt) error {
	if err := as.store.SaveAttempt(ctx, a); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}

	as.mu.Lock()
	as.cache.Add(a.ID, a)
	as.mu.Unlock()

	as.metrics.AttemptStarted(string(a.Scheme))
	if a.Scheme == scoring.SchemePairwise {
		as.metrics.PairSetBuilt(a.Pairs)
		if len(a.Pairs.Failures) > 0 {
			as.logger.Warn("pair set came out short",
				"attempt_id", a.ID,
				"pairs", len(a.Pairs.Pairs),
				"failures", len(a.Pairs.Failures),
				"rebuilds", a.Pairs.Rebuilds,
			)
		}
	}
	return nil
}

// load returns the cached attempt or rehydrates it from the store.
// Callers hold as.mu.
func (as *AssessmentService) load(ctx context.Context, attemptID string) (*attempt.Attempt, error) {
	if a, ok := as.cache.Get(attemptID); ok {
		return a, nil
	}
	a, err := as.store.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	as.cache.Add(a.ID, a)
	return a, nil
}
