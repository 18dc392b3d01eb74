package scoring

import (
	"math"
	"sort"

	"github.com/strengthscope/backend/internal/domain/category"
	"github.com/strengthscope/backend/internal/domain/strength"
)

// tally accumulates one trait while scoring. Tallies are created in catalog
// order, which is also the tie-break order of the ranking.
type tally struct {
	strength    strength.Strength
	total       int
	appearances int
}

type tallies struct {
	list []*tally
	byID map[string]*tally
}

func newTallies(strengths []strength.Strength, key func(strength.Strength) string) *tallies {
	t := &tallies{
		list: make([]*tally, len(strengths)),
		byID: make(map[string]*tally, len(strengths)),
	}
	for i, s := range strengths {
		t.list[i] = &tally{strength: s}
		t.byID[key(s)] = t.list[i]
	}
	return t
}

func (t *tallies) get(key string) (*tally, bool) {
	v, ok := t.byID[key]
	return v, ok
}

// rankOptions describe how a scheme turns a tally into a score.
type rankOptions struct {
	scheme     Scheme
	score      func(*tally) float64
	percent    func(*tally) float64
	categories bool
}

func (t *tallies) rank(opts rankOptions) UserResult {
	ranking := make([]StrengthScore, len(t.list))
	traits := make([]TraitScore, len(t.list))
	for i, tl := range t.list {
		ranking[i] = StrengthScore{
			Strength: tl.strength,
			Score:    opts.score(tl),
			Percent:  roundPercent(opts.percent(tl)),
		}
		traits[i] = TraitScore{
			TraitID:     tl.strength.ID,
			TotalScore:  tl.total,
			Appearances: tl.appearances,
		}
	}

	sortDescending(ranking)

	top := ranking
	if len(top) > TopN {
		top = top[:TopN]
	}

	result := UserResult{
		Scheme:       opts.scheme,
		TopStrengths: append([]StrengthScore(nil), top...),
		Ranking:      ranking,
		Traits:       traits,
	}
	if opts.categories {
		result.Categories = groupByCategory(ranking)
	}
	return result
}

// sortDescending is stable so equal scores keep catalog order.
func sortDescending(scores []StrengthScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
}

// groupByCategory expects an already sorted ranking, so each group comes out
// sorted as well.
func groupByCategory(ranking []StrengthScore) []CategoryResult {
	groups := make(map[category.Category][]StrengthScore)
	for _, s := range ranking {
		groups[s.Strength.Category] = append(groups[s.Strength.Category], s)
	}

	var out []CategoryResult
	for _, c := range category.All() {
		if len(groups[c]) == 0 {
			continue
		}
		out = append(out, CategoryResult{
			Category:  c,
			Name:      c.Name(),
			Strengths: groups[c],
		})
	}
	return out
}

func roundPercent(p float64) float64 {
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}
	return math.Round(p*10) / 10
}
