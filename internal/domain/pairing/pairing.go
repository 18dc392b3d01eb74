package pairing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/strengthscope/backend/internal/domain/strength"
)

const (
	DefaultPairCount      = 50
	DefaultMaxAttempts    = 100
	DefaultMaxAppearances = 6
)

// StatementPair puts two Likert statements from different strengths side by
// side. TraitA and TraitB are strength IDs and never equal.
type StatementPair struct {
	ID        string            `json:"id"`
	QuestionA strength.Question `json:"question_a"`
	QuestionB strength.Question `json:"question_b"`
	TraitA    string            `json:"trait_a"`
	TraitB    string            `json:"trait_b"`
}

// ConstructionFailure is returned for a slot that could not be filled within
// the attempt budget. The slot is skipped; the set comes out shorter.
type ConstructionFailure struct {
	Slot      int `json:"slot"`
	Attempts  int `json:"attempts"`
	Remaining int `json:"remaining"` // unused questions when the slot gave up
}

func (f *ConstructionFailure) Error() string {
	return fmt.Sprintf("pair slot %d: no valid draw after %d attempts (%d questions left)", f.Slot, f.Attempts, f.Remaining)
}

// PairSet is the outcome of one construction run. len(Pairs) is the number of
// responses an attempt needs, whatever PairCount was requested.
type PairSet struct {
	Pairs    []StatementPair       `json:"pairs"`
	Failures []ConstructionFailure `json:"failures,omitempty"`
	Rebuilds int                   `json:"rebuilds,omitempty"`
}

// Complete reports whether every requested slot produced a pair.
func (ps PairSet) Complete() bool {
	return len(ps.Failures) == 0
}

func (ps PairSet) Pair(id string) (StatementPair, bool) {
	for _, p := range ps.Pairs {
		if p.ID == id {
			return p, true
		}
	}
	return StatementPair{}, false
}

// Appearances counts how often each strength occurs across the set.
func (ps PairSet) Appearances() map[string]int {
	counts := make(map[string]int)
	for _, p := range ps.Pairs {
		counts[p.TraitA]++
		counts[p.TraitB]++
	}
	return counts
}

// Options bound the construction. Zero values fall back to defaults.
type Options struct {
	PairCount      int // 0 = half the bank
	MaxAttempts    int
	MaxAppearances int
}

func DefaultOptions() Options {
	return Options{
		PairCount:      DefaultPairCount,
		MaxAttempts:    DefaultMaxAttempts,
		MaxAppearances: DefaultMaxAppearances,
	}
}

// Constructor draws statement pairs from a strengths bank with a randomized
// greedy search. It is not safe for concurrent use; create one per attempt.
type Constructor struct {
	bank *strength.Bank
	rng  *rand.Rand
	opts Options
}

// NewConstructor creates a Constructor. A nil rng is seeded from the clock.
func NewConstructor(bank *strength.Bank, rng *rand.Rand, opts Options) *Constructor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.PairCount <= 0 {
		opts.PairCount = len(bank.Questions()) / 2
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.MaxAppearances <= 0 {
		opts.MaxAppearances = DefaultMaxAppearances
	}
	return &Constructor{bank: bank, rng: rng, opts: opts}
}

// draw holds the mutable state of one construction run.
type draw struct {
	unused []strength.Question
	counts map[string]int
}

// Build runs one construction pass. Slots that exhaust their attempt budget
// are recorded in Failures and produce no pair.
func (c *Constructor) Build() PairSet {
	st := &draw{
		unused: c.bank.Questions(),
		counts: make(map[string]int),
	}

	var ps PairSet
	for slot := 0; slot < c.opts.PairCount; slot++ {
		pair, err := c.buildSlot(st, slot, len(ps.Pairs)+1)
		if err != nil {
			ps.Failures = append(ps.Failures, *err)
			continue
		}
		ps.Pairs = append(ps.Pairs, pair)
	}
	return ps
}

// BuildComplete runs Build and, while the set is short, rebuilds from scratch
// up to rebuilds more times. It returns the first complete set, or the
// largest one seen if the budget runs out.
func (c *Constructor) BuildComplete(rebuilds int) PairSet {
	best := c.Build()
	for i := 0; i < rebuilds && !best.Complete(); i++ {
		next := c.Build()
		next.Rebuilds = i + 1
		if len(next.Pairs) > len(best.Pairs) {
			best = next
		} else {
			best.Rebuilds = i + 1
		}
	}
	return best
}

func (c *Constructor) buildSlot(st *draw, slot, seq int) (StatementPair, *ConstructionFailure) {
	attempts := 0
	for ; attempts < c.opts.MaxAttempts; attempts++ {
		n := len(st.unused)
		if n < 2 {
			break
		}

		i := c.rng.Intn(n)
		j := c.rng.Intn(n - 1)
		if j >= i {
			j++
		}

		qa, qb := st.unused[i], st.unused[j]
		if qa.StrengthID == qb.StrengthID {
			continue
		}
		if st.counts[qa.StrengthID] >= c.opts.MaxAppearances || st.counts[qb.StrengthID] >= c.opts.MaxAppearances {
			continue
		}

		st.remove(i, j)
		st.counts[qa.StrengthID]++
		st.counts[qb.StrengthID]++

		return StatementPair{
			ID:        fmt.Sprintf("pair-%02d", seq),
			QuestionA: qa,
			QuestionB: qb,
			TraitA:    qa.StrengthID,
			TraitB:    qb.StrengthID,
		}, nil
	}

	return StatementPair{}, &ConstructionFailure{
		Slot:      slot,
		Attempts:  attempts,
		Remaining: len(st.unused),
	}
}

// remove drops indexes i and j (i != j) with swap-delete, higher index first
// so the lower one stays valid.
func (st *draw) remove(i, j int) {
	if i < j {
		i, j = j, i
	}
	for _, k := range []int{i, j} {
		last := len(st.unused) - 1
		st.unused[k] = st.unused[last]
		st.unused = st.unused[:last]
	}
}
