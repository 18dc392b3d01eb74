package scoring

import (
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/domain/strength"
)

// LikertScorer averages 1..5 ratings per strength.
type LikertScorer struct {
	bank *strength.Bank
}

var _ Scorer[response.Likert] = (*LikertScorer)(nil)

func NewLikertScorer(bank *strength.Bank) *LikertScorer {
	return &LikertScorer{bank: bank}
}

func (s *LikertScorer) Scheme() Scheme { return SchemeLikert }

// Aggregate skips answers for unknown questions and ratings outside 1..5.
func (s *LikertScorer) Aggregate(responses []response.Likert) UserResult {
	t := newTallies(s.bank.Strengths(), byID)

	for _, r := range responses {
		if r.Score < response.LikertMin || r.Score > response.LikertMax {
			continue
		}
		q, ok := s.bank.Question(r.QuestionID)
		if !ok {
			continue
		}
		tl, ok := t.get(q.StrengthID)
		if !ok {
			continue
		}
		tl.total += r.Score
		tl.appearances++
	}

	return t.rank(rankOptions{
		scheme: SchemeLikert,
		score:  average,
		percent: func(tl *tally) float64 {
			if tl.appearances == 0 {
				return 0
			}
			return (average(tl) - response.LikertMin) / (response.LikertMax - response.LikertMin) * 100
		},
		categories: true,
	})
}

func byID(s strength.Strength) string { return s.ID }

func byName(s strength.Strength) string { return s.Name }

func average(tl *tally) float64 {
	return TraitScore{TotalScore: tl.total, Appearances: tl.appearances}.Average()
}
