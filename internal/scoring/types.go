package scoring

import (
	"fmt"

	"github.com/strengthscope/backend/internal/domain/category"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/domain/strength"
)

// TopN is how many strengths a result highlights.
const TopN = 5

// Scheme tags which response format produced a result.
type Scheme string

const (
	SchemeLikert       Scheme = "likert"
	SchemePairwise     Scheme = "pairwise"
	SchemeForcedChoice Scheme = "forced_choice"
)

func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeLikert, SchemePairwise, SchemeForcedChoice:
		return Scheme(s), nil
	}
	return "", fmt.Errorf("unknown scheme %q: must be likert, pairwise, or forced_choice", s)
}

// UsesAverages is false for forced choice, whose scores are raw totals and
// must not be compared with the other schemes.
func (s Scheme) UsesAverages() bool {
	return s != SchemeForcedChoice
}

// Scorer turns one attempt's answers into a ranked result. Implementations
// are pure: the same input always gives the same UserResult.
type Scorer[R response.Entry] interface {
	Scheme() Scheme
	Aggregate(responses []R) UserResult
}

// TraitScore is the raw accumulator for one trait.
type TraitScore struct {
	TraitID     string `json:"trait_id"`
	TotalScore  int    `json:"total_score"`
	Appearances int    `json:"appearances"`
}

// Average is TotalScore/Appearances, or 0 for a trait that never appeared.
func (t TraitScore) Average() float64 {
	if t.Appearances == 0 {
		return 0
	}
	return float64(t.TotalScore) / float64(t.Appearances)
}

// StrengthScore is one ranked entry. Score is an average for the Likert and
// pairwise schemes and a raw total for forced choice. Percent rescales Score
// to 0..100 within its own scheme.
type StrengthScore struct {
	Strength strength.Strength `json:"strength"`
	Score    float64           `json:"score"`
	Percent  float64           `json:"percent"`
}

// CategoryResult lists one category's strengths, best first.
type CategoryResult struct {
	Category  category.Category `json:"category"`
	Name      string            `json:"name"`
	Strengths []StrengthScore   `json:"strengths"`
}

// UserResult is the outcome of one completed attempt. It is never mutated
// after scoring; a retake produces a new one.
type UserResult struct {
	Scheme       Scheme           `json:"scheme"`
	TopStrengths []StrengthScore  `json:"top_strengths"`
	Ranking      []StrengthScore  `json:"ranking"`
	Categories   []CategoryResult `json:"categories,omitempty"`
	Traits       []TraitScore     `json:"traits"`
}

// Top returns the first entry of the ranking, if any.
func (r UserResult) Top() (StrengthScore, bool) {
	if len(r.TopStrengths) == 0 {
		return StrengthScore{}, false
	}
	return r.TopStrengths[0], true
}
