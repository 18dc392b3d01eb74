package category

import "fmt"

// Category groups strengths for the per-category breakdown of a result.
type Category string

const (
	ThinkingLearning      Category = "thinking_learning"
	Interpersonal         Category = "interpersonal"
	LeadershipInfluence   Category = "leadership_influence"
	ExecutionDiscipline   Category = "execution_discipline"
	IdentityPurposeValues Category = "identity_purpose_values"
)

var ordered = []Category{
	ThinkingLearning,
	Interpersonal,
	LeadershipInfluence,
	ExecutionDiscipline,
	IdentityPurposeValues,
}

var names = map[Category]string{
	ThinkingLearning:      "Thinking & Learning",
	Interpersonal:         "Interpersonal",
	LeadershipInfluence:   "Leadership & Influence",
	ExecutionDiscipline:   "Execution & Discipline",
	IdentityPurposeValues: "Identity, Purpose & Values",
}

// All returns the five categories in display order.
func All() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

// Parse converts a stored identifier into a Category.
func Parse(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := names[c]
	return ok
}

// Name is the human readable label.
func (c Category) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}
