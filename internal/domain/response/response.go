package response

import "fmt"

const (
	LikertMin = 1
	LikertMax = 5

	PairMin     = 1
	PairMax     = 7
	PairNeutral = 4

	ForcedChoiceMax = 3
)

// Entry is anything the Log can hold: it has a unique key and can check its
// own value range.
type Entry interface {
	Key() string
	Validate() error
}

// ValidationError rejects a response before it reaches a log.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Likert is one 1..5 rating of a single statement.
type Likert struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
}

func (r Likert) Key() string { return r.QuestionID }

func (r Likert) Validate() error {
	if r.QuestionID == "" {
		return &ValidationError{Field: "question_id", Value: `""`, Reason: "required"}
	}
	if r.Score < LikertMin || r.Score > LikertMax {
		return &ValidationError{Field: "score", Value: r.Score, Reason: "must be between 1 and 5"}
	}
	return nil
}

// Pair is a 1..7 rating between two statements: 1 strongly A, 4 neutral,
// 7 strongly B.
type Pair struct {
	PairID string `json:"pair_id"`
	Score  int    `json:"score"`
}

func (r Pair) Key() string { return r.PairID }

func (r Pair) Validate() error {
	if r.PairID == "" {
		return &ValidationError{Field: "pair_id", Value: `""`, Reason: "required"}
	}
	if r.Score < PairMin || r.Score > PairMax {
		return &ValidationError{Field: "score", Value: r.Score, Reason: "must be between 1 and 7"}
	}
	return nil
}

// ForcedChoice is a signed lean: positive picks TraitA, negative picks
// TraitB, the magnitude (1..3) is the strength of the preference.
type ForcedChoice struct {
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
	TraitA     string `json:"trait_a"`
	TraitB     string `json:"trait_b"`
}

func (r ForcedChoice) Key() string { return r.QuestionID }

func (r ForcedChoice) Validate() error {
	if r.QuestionID == "" {
		return &ValidationError{Field: "question_id", Value: `""`, Reason: "required"}
	}
	if r.Value == 0 || r.Value < -ForcedChoiceMax || r.Value > ForcedChoiceMax {
		return &ValidationError{Field: "value", Value: r.Value, Reason: "must be -3..-1 or 1..3"}
	}
	if r.TraitA == "" || r.TraitB == "" {
		return &ValidationError{Field: "trait", Value: r.TraitA + "/" + r.TraitB, Reason: "both traits are required"}
	}
	return nil
}
