package strength_test

import (
	"fmt"
	"testing"

	"github.com/strengthscope/backend/internal/domain/category"
	"github.com/strengthscope/backend/internal/domain/strength"
)

func smallBank(t *testing.T) *strength.Bank {
	t.Helper()
	strengths := []strength.Strength{
		{ID: "analyst", Name: "Analyst", Category: category.ThinkingLearning},
		{ID: "mentor", Name: "Mentor", Category: category.Interpersonal},
	}
	questions := []strength.Question{
		{ID: "q1", Text: "I like data.", StrengthID: "analyst"},
		{ID: "q2", Text: "I like teaching.", StrengthID: "mentor"},
		{ID: "q3", Text: "I like proof.", StrengthID: "analyst"},
	}
	bank, err := strength.NewBank(strengths, questions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return bank
}

func TestNewBank_Lookups(t *testing.T) {
	bank := smallBank(t)

	s, ok := bank.Strength("mentor")
	if !ok || s.Name != "Mentor" {
		t.Errorf("expected mentor strength, got %+v (found=%v)", s, ok)
	}

	q, ok := bank.Question("q3")
	if !ok || q.StrengthID != "analyst" {
		t.Errorf("expected q3 to belong to analyst, got %+v", q)
	}

	if got := len(bank.QuestionsFor("analyst")); got != 2 {
		t.Errorf("expected 2 analyst questions, got %d", got)
	}

	if _, ok := bank.Strength("nobody"); ok {
		t.Error("expected unknown strength lookup to fail")
	}
}

func TestNewBank_Rejects(t *testing.T) {
	good := []strength.Strength{{ID: "a", Category: category.Interpersonal}}

	cases := []struct {
		name      string
		strengths []strength.Strength
		questions []strength.Question
	}{
		{"no strengths", nil, nil},
		{"bad category", []strength.Strength{{ID: "a", Category: "nope"}}, nil},
		{"duplicate strength", append(good, good[0]), nil},
		{"unknown strength ref", good, []strength.Question{{ID: "q", Text: "t", StrengthID: "b"}}},
		{"empty text", good, []strength.Question{{ID: "q", StrengthID: "a"}}},
		{"duplicate question", good, []strength.Question{
			{ID: "q", Text: "t", StrengthID: "a"},
			{ID: "q", Text: "u", StrengthID: "a"},
		}},
	}

	for _, c := range cases {
		if _, err := strength.NewBank(c.strengths, c.questions); err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
		}
	}
}

func TestValidateStandard(t *testing.T) {
	if err := smallBank(t).ValidateStandard(); err == nil {
		t.Error("expected small bank to fail standard validation")
	}

	var strengths []strength.Strength
	var questions []strength.Question
	for i := 0; i < strength.StandardStrengthCount; i++ {
		sid := fmt.Sprintf("s%02d", i)
		strengths = append(strengths, strength.Strength{ID: sid, Category: category.All()[i%5]})
		for j := 0; j < strength.QuestionsPerStrength; j++ {
			questions = append(questions, strength.Question{
				ID:         fmt.Sprintf("%s-q%d", sid, j),
				Text:       "statement",
				StrengthID: sid,
			})
		}
	}

	bank, err := strength.NewBank(strengths, questions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bank.ValidateStandard(); err != nil {
		t.Errorf("expected standard bank to validate, got %v", err)
	}
}
