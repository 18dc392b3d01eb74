package scoring

import (
	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/domain/strength"
)

// MaxPairPoints is what the preferred side gets for the strongest answer.
const MaxPairPoints = 6

// pairPoints maps a 1..7 answer to (pointsA, pointsB). This is a lookup
// table, not a formula, and must stay exactly as is.
var pairPoints = map[int][2]int{
	1: {6, 0},
	2: {5, 1},
	3: {4, 2},
	4: {3, 3},
	5: {2, 4},
	6: {1, 5},
	7: {0, 6},
}

// Points returns the allocation for a pair answer. Values outside the table
// get the neutral (3, 3).
func Points(score int) (pointsA, pointsB int) {
	p, ok := pairPoints[score]
	if !ok {
		p = pairPoints[response.PairNeutral]
	}
	return p[0], p[1]
}

// PairwiseScorer distributes points between the two strengths of every
// answered pair and averages per appearance.
type PairwiseScorer struct {
	bank  *strength.Bank
	pairs pairing.PairSet
}

var _ Scorer[response.Pair] = (*PairwiseScorer)(nil)

// NewPairwiseScorer binds the scorer to the pair set the answers refer to.
func NewPairwiseScorer(bank *strength.Bank, pairs pairing.PairSet) *PairwiseScorer {
	return &PairwiseScorer{bank: bank, pairs: pairs}
}

func (s *PairwiseScorer) Scheme() Scheme { return SchemePairwise }

// Aggregate skips answers whose pair is not in the bound pair set. A partial
// log is scored as-is.
func (s *PairwiseScorer) Aggregate(responses []response.Pair) UserResult {
	t := newTallies(s.bank.Strengths(), byID)

	for _, r := range responses {
		pair, ok := s.pairs.Pair(r.PairID)
		if !ok {
			continue
		}
		a, okA := t.get(pair.TraitA)
		b, okB := t.get(pair.TraitB)
		if !okA || !okB {
			continue
		}

		pointsA, pointsB := Points(r.Score)
		a.total += pointsA
		a.appearances++
		b.total += pointsB
		b.appearances++
	}

	return t.rank(rankOptions{
		scheme: SchemePairwise,
		score:  average,
		percent: func(tl *tally) float64 {
			return average(tl) / MaxPairPoints * 100
		},
		categories: true,
	})
}
