package attempt

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/forcedchoice"
	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/domain/strength"
	"github.com/strengthscope/backend/internal/id"
	"github.com/strengthscope/backend/internal/scoring"
)

var (
	ErrIncomplete  = errors.New("attempt has unanswered items")
	ErrUnknownItem = errors.New("item is not part of this attempt")
	ErrCompleted   = errors.New("attempt is already completed")
	ErrExpired     = errors.New("attempt time limit exceeded")
	ErrWrongScheme = errors.New("response format does not match the attempt scheme")
)

// Attempt is one run through the assessment. It owns the items presented to
// the respondent (questions, a pair set, or forced-choice questions, by
// scheme) and the response log. Nothing in it is shared with other attempts.
type Attempt struct {
	ID          string
	UserID      string
	Scheme      scoring.Scheme
	Questions   []strength.Question     // likert
	Pairs       pairing.PairSet         // pairwise
	Choices     []forcedchoice.Question // forced choice
	StartedAt   time.Time
	CompletedAt *time.Time
	MaxDuration *time.Duration

	likert   *response.Log[response.Likert]
	pairwise *response.Log[response.Pair]
	choices  *response.Log[response.ForcedChoice]
}

// New starts an attempt for the given scheme.
func New(userID string, scheme scoring.Scheme, cats *catalog.Catalogs, config Config) (*Attempt, error) {
	switch scheme {
	case scoring.SchemeLikert:
		return NewLikert(userID, cats.Strengths, config), nil
	case scoring.SchemePairwise:
		return NewPairwise(userID, cats.Strengths, config), nil
	case scoring.SchemeForcedChoice:
		return NewForcedChoice(userID, cats.ForcedChoice, config), nil
	}
	return nil, fmt.Errorf("unknown scheme %q", scheme)
}

// NewLikert presents every question of the bank once.
func NewLikert(userID string, bank *strength.Bank, config Config) *Attempt {
	a := newAttempt(userID, scoring.SchemeLikert, config)
	a.Questions = bank.Questions()
	if config.Shuffle {
		shuffle(config.rng(), a.Questions)
	}
	return a
}

// NewPairwise builds a fresh pair set for this attempt. The set may be
// shorter than requested; see Pairs.Failures.
func NewPairwise(userID string, bank *strength.Bank, config Config) *Attempt {
	a := newAttempt(userID, scoring.SchemePairwise, config)
	c := pairing.NewConstructor(bank, config.rng(), pairing.DefaultOptions())
	a.Pairs = c.BuildComplete(config.Rebuilds)
	return a
}

// NewForcedChoice presents the curated forced-choice questions.
func NewForcedChoice(userID string, fc *forcedchoice.Catalog, config Config) *Attempt {
	a := newAttempt(userID, scoring.SchemeForcedChoice, config)
	a.Choices = fc.Questions()
	if config.Shuffle {
		shuffle(config.rng(), a.Choices)
	}
	return a
}

func newAttempt(userID string, scheme scoring.Scheme, config Config) *Attempt {
	return &Attempt{
		ID:          id.GenerateAttemptID(),
		UserID:      userID,
		Scheme:      scheme,
		StartedAt:   time.Now().UTC(),
		MaxDuration: config.MaxDuration,
	}
}

// shuffle reorders items in place.
func shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// ItemIDs lists the ids a complete response log must cover, in
// presentation order.
func (a *Attempt) ItemIDs() []string {
	var ids []string
	switch a.Scheme {
	case scoring.SchemeLikert:
		for _, q := range a.Questions {
			ids = append(ids, q.ID)
		}
	case scoring.SchemePairwise:
		for _, p := range a.Pairs.Pairs {
			ids = append(ids, p.ID)
		}
	case scoring.SchemeForcedChoice:
		for _, q := range a.Choices {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// ItemCount is the number of answers required, which for pairwise is the
// size of the pair set actually built.
func (a *Attempt) ItemCount() int {
	switch a.Scheme {
	case scoring.SchemeLikert:
		return len(a.Questions)
	case scoring.SchemePairwise:
		return len(a.Pairs.Pairs)
	case scoring.SchemeForcedChoice:
		return len(a.Choices)
	}
	return 0
}

// Answered counts distinct answered items.
func (a *Attempt) Answered() int {
	switch a.Scheme {
	case scoring.SchemeLikert:
		return a.likertLog().Len()
	case scoring.SchemePairwise:
		return a.pairLog().Len()
	case scoring.SchemeForcedChoice:
		return a.choiceLog().Len()
	}
	return 0
}

// Missing lists unanswered item ids in presentation order.
func (a *Attempt) Missing() []string {
	var missing []string
	for _, itemID := range a.ItemIDs() {
		if !a.hasAnswer(itemID) {
			missing = append(missing, itemID)
		}
	}
	return missing
}

func (a *Attempt) IsComplete() bool {
	return a.ItemCount() > 0 && len(a.Missing()) == 0
}

func (a *Attempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// Expired reports whether the time limit, if any, has passed at now.
func (a *Attempt) Expired(now time.Time) bool {
	if a.MaxDuration == nil {
		return false
	}
	return now.After(a.StartedAt.Add(*a.MaxDuration))
}

func (a *Attempt) hasAnswer(itemID string) bool {
	switch a.Scheme {
	case scoring.SchemeLikert:
		return a.likertLog().Has(itemID)
	case scoring.SchemePairwise:
		return a.pairLog().Has(itemID)
	case scoring.SchemeForcedChoice:
		return a.choiceLog().Has(itemID)
	}
	return false
}

func (a *Attempt) checkOpen(scheme scoring.Scheme, now time.Time) error {
	if a.Scheme != scheme {
		return ErrWrongScheme
	}
	if a.IsCompleted() {
		return ErrCompleted
	}
	if a.Expired(now) {
		return ErrExpired
	}
	return nil
}

// AnswerLikert records r, replacing an earlier answer to the same question.
func (a *Attempt) AnswerLikert(r response.Likert, now time.Time) (bool, error) {
	if err := a.checkOpen(scoring.SchemeLikert, now); err != nil {
		return false, err
	}
	if !a.hasQuestion(r.QuestionID) {
		return false, fmt.Errorf("question %q: %w", r.QuestionID, ErrUnknownItem)
	}
	return a.likertLog().Put(r)
}

// AnswerPair records r, replacing an earlier answer to the same pair.
func (a *Attempt) AnswerPair(r response.Pair, now time.Time) (bool, error) {
	if err := a.checkOpen(scoring.SchemePairwise, now); err != nil {
		return false, err
	}
	if _, ok := a.Pairs.Pair(r.PairID); !ok {
		return false, fmt.Errorf("pair %q: %w", r.PairID, ErrUnknownItem)
	}
	return a.pairLog().Put(r)
}

// AnswerForcedChoice records r. Traits are taken from the presented
// question; a response naming different traits is rejected.
func (a *Attempt) AnswerForcedChoice(r response.ForcedChoice, now time.Time) (bool, error) {
	if err := a.checkOpen(scoring.SchemeForcedChoice, now); err != nil {
		return false, err
	}
	q, ok := a.choice(r.QuestionID)
	if !ok {
		return false, fmt.Errorf("question %q: %w", r.QuestionID, ErrUnknownItem)
	}
	if (r.TraitA != "" && r.TraitA != q.TraitA) || (r.TraitB != "" && r.TraitB != q.TraitB) {
		return false, &response.ValidationError{
			Field:  "trait",
			Value:  r.TraitA + "/" + r.TraitB,
			Reason: fmt.Sprintf("question %s compares %s and %s", q.ID, q.TraitA, q.TraitB),
		}
	}
	r.TraitA, r.TraitB = q.TraitA, q.TraitB
	return a.choiceLog().Put(r)
}

func (a *Attempt) hasQuestion(questionID string) bool {
	for _, q := range a.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

func (a *Attempt) choice(questionID string) (forcedchoice.Question, bool) {
	for _, q := range a.Choices {
		if q.ID == questionID {
			return q, true
		}
	}
	return forcedchoice.Question{}, false
}

// Complete marks the attempt finished. Every item must be answered.
func (a *Attempt) Complete(now time.Time) error {
	if a.IsCompleted() {
		return ErrCompleted
	}
	if !a.IsComplete() {
		return fmt.Errorf("%d of %d answered: %w", a.Answered(), a.ItemCount(), ErrIncomplete)
	}
	t := now.UTC()
	a.CompletedAt = &t
	return nil
}

// Score runs the scorer matching the attempt scheme over the current log.
// It does not check completeness.
func (a *Attempt) Score(cats *catalog.Catalogs) scoring.UserResult {
	switch a.Scheme {
	case scoring.SchemePairwise:
		return scoring.NewPairwiseScorer(cats.Strengths, a.Pairs).Aggregate(a.PairResponses())
	case scoring.SchemeForcedChoice:
		return scoring.NewForcedChoiceScorer(cats.ForcedChoice).Aggregate(a.ForcedChoiceResponses())
	default:
		return scoring.NewLikertScorer(cats.Strengths).Aggregate(a.LikertResponses())
	}
}

// Retake starts a new attempt for the same user and scheme with fresh items
// and an empty log.
func (a *Attempt) Retake(cats *catalog.Catalogs, config Config) (*Attempt, error) {
	if config.MaxDuration == nil {
		config.MaxDuration = a.MaxDuration
	}
	return New(a.UserID, a.Scheme, cats, config)
}

func (a *Attempt) LikertResponses() []response.Likert {
	return a.likertLog().Entries()
}

func (a *Attempt) PairResponses() []response.Pair {
	return a.pairLog().Entries()
}

func (a *Attempt) ForcedChoiceResponses() []response.ForcedChoice {
	return a.choiceLog().Entries()
}

// Response returns the accepted answer for itemID.
func (a *Attempt) Response(itemID string) (response.Entry, bool) {
	switch a.Scheme {
	case scoring.SchemeLikert:
		if r, ok := a.likertLog().Get(itemID); ok {
			return r, true
		}
	case scoring.SchemePairwise:
		if r, ok := a.pairLog().Get(itemID); ok {
			return r, true
		}
	case scoring.SchemeForcedChoice:
		if r, ok := a.choiceLog().Get(itemID); ok {
			return r, true
		}
	}
	return nil, false
}

// RevertResponse undoes the latest answer to itemID. prev is the answer it
// replaced, as returned by Response beforehand; nil drops the answer.
func (a *Attempt) RevertResponse(itemID string, prev response.Entry) {
	switch a.Scheme {
	case scoring.SchemeLikert:
		revert(a.likertLog(), itemID, prev)
	case scoring.SchemePairwise:
		revert(a.pairLog(), itemID, prev)
	case scoring.SchemeForcedChoice:
		revert(a.choiceLog(), itemID, prev)
	}
}

func revert[E response.Entry](l *response.Log[E], key string, prev response.Entry) {
	if e, ok := prev.(E); ok {
		l.Put(e)
		return
	}
	l.Delete(key)
}

// RestoreResponses reloads persisted answers without the open/expiry checks
// that guard live answering. Invalid entries are dropped.
func (a *Attempt) RestoreResponses(likert []response.Likert, pairs []response.Pair, choices []response.ForcedChoice) {
	for _, r := range likert {
		a.likertLog().Put(r)
	}
	for _, r := range pairs {
		a.pairLog().Put(r)
	}
	for _, r := range choices {
		a.choiceLog().Put(r)
	}
}

func (a *Attempt) likertLog() *response.Log[response.Likert] {
	if a.likert == nil {
		a.likert = response.NewLog[response.Likert]()
	}
	return a.likert
}

func (a *Attempt) pairLog() *response.Log[response.Pair] {
	if a.pairwise == nil {
		a.pairwise = response.NewLog[response.Pair]()
	}
	return a.pairwise
}

func (a *Attempt) choiceLog() *response.Log[response.ForcedChoice] {
	if a.choices == nil {
		a.choices = response.NewLog[response.ForcedChoice]()
	}
	return a.choices
}
