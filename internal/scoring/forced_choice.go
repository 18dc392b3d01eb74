package scoring

import (
	"github.com/strengthscope/backend/internal/domain/forcedchoice"
	"github.com/strengthscope/backend/internal/domain/response"
)

// ForcedChoiceScorer accumulates raw totals per trait. It does not average:
// trait appearance counts in the curated catalog are deliberately uneven.
type ForcedChoiceScorer struct {
	catalog *forcedchoice.Catalog
}

var _ Scorer[response.ForcedChoice] = (*ForcedChoiceScorer)(nil)

func NewForcedChoiceScorer(catalog *forcedchoice.Catalog) *ForcedChoiceScorer {
	return &ForcedChoiceScorer{catalog: catalog}
}

func (s *ForcedChoiceScorer) Scheme() Scheme { return SchemeForcedChoice }

// Aggregate credits |value| to TraitA for positive values and to TraitB for
// negative ones; zero credits nobody. Answers naming a trait outside the
// catalog are skipped.
func (s *ForcedChoiceScorer) Aggregate(responses []response.ForcedChoice) UserResult {
	t := newTallies(s.catalog.Traits(), byName)

	for _, r := range responses {
		a, okA := t.get(r.TraitA)
		b, okB := t.get(r.TraitB)
		if !okA || !okB {
			continue
		}
		a.appearances++
		b.appearances++

		switch {
		case r.Value > 0:
			a.total += r.Value
		case r.Value < 0:
			b.total += -r.Value
		}
	}

	return t.rank(rankOptions{
		scheme: SchemeForcedChoice,
		score: func(tl *tally) float64 {
			return float64(tl.total)
		},
		percent: func(tl *tally) float64 {
			ceiling := s.catalog.Appearances(tl.strength.Name) * response.ForcedChoiceMax
			if ceiling == 0 {
				return 0
			}
			return float64(tl.total) / float64(ceiling) * 100
		},
	})
}
