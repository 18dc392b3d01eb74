package strength

import (
	"errors"
	"fmt"

	"github.com/strengthscope/backend/internal/domain/category"
)

const (
	StandardStrengthCount = 20
	QuestionsPerStrength  = 5
)

// Strength is one trait the assessment measures. The forced-choice catalog
// reuses the same shape with its own id space.
type Strength struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Tagline         string            `json:"tagline" yaml:"tagline"`
	Description     string            `json:"description" yaml:"description"`
	Category        category.Category `json:"category" yaml:"category"`
	Recommendations []string          `json:"recommendations" yaml:"recommendations"`
}

// Question is a single Likert statement that measures exactly one strength.
type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	StrengthID string `json:"strength_id"`
}

// Bank is the read-only strengths/questions catalog. Build it once with
// NewBank and pass it to whatever needs it.
type Bank struct {
	strengths  []Strength
	questions  []Question
	strengthAt map[string]int
	questionAt map[string]int
	byStrength map[string][]Question
}

// NewBank validates and indexes the catalog. Strength order is preserved and
// used as the tie-break order when ranking.
func NewBank(strengths []Strength, questions []Question) (*Bank, error) {
	if len(strengths) == 0 {
		return nil, errors.New("bank needs at least one strength")
	}

	b := &Bank{
		strengths:  make([]Strength, len(strengths)),
		questions:  make([]Question, len(questions)),
		strengthAt: make(map[string]int, len(strengths)),
		questionAt: make(map[string]int, len(questions)),
		byStrength: make(map[string][]Question, len(strengths)),
	}
	copy(b.strengths, strengths)
	copy(b.questions, questions)

	for i, s := range b.strengths {
		if s.ID == "" {
			return nil, fmt.Errorf("strength %d: id cannot be empty", i)
		}
		if !s.Category.Valid() {
			return nil, fmt.Errorf("strength %q: unknown category %q", s.ID, s.Category)
		}
		if _, dup := b.strengthAt[s.ID]; dup {
			return nil, fmt.Errorf("duplicate strength id %q", s.ID)
		}
		b.strengthAt[s.ID] = i
	}

	for i, q := range b.questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: id cannot be empty", i)
		}
		if q.Text == "" {
			return nil, fmt.Errorf("question %q: text cannot be empty", q.ID)
		}
		if _, ok := b.strengthAt[q.StrengthID]; !ok {
			return nil, fmt.Errorf("question %q: unknown strength %q", q.ID, q.StrengthID)
		}
		if _, dup := b.questionAt[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		b.questionAt[q.ID] = i
		b.byStrength[q.StrengthID] = append(b.byStrength[q.StrengthID], q)
	}

	return b, nil
}

// ValidateStandard checks the shape the production assessment relies on:
// 20 strengths with exactly 5 questions each.
func (b *Bank) ValidateStandard() error {
	if len(b.strengths) != StandardStrengthCount {
		return fmt.Errorf("expected %d strengths, got %d", StandardStrengthCount, len(b.strengths))
	}
	for _, s := range b.strengths {
		if n := len(b.byStrength[s.ID]); n != QuestionsPerStrength {
			return fmt.Errorf("strength %q has %d questions, want %d", s.ID, n, QuestionsPerStrength)
		}
	}
	return nil
}

// Strengths returns the strengths in catalog order.
func (b *Bank) Strengths() []Strength {
	out := make([]Strength, len(b.strengths))
	copy(out, b.strengths)
	return out
}

// Questions returns every question in catalog order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func (b *Bank) Strength(id string) (Strength, bool) {
	i, ok := b.strengthAt[id]
	if !ok {
		return Strength{}, false
	}
	return b.strengths[i], true
}

func (b *Bank) Question(id string) (Question, bool) {
	i, ok := b.questionAt[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// QuestionsFor returns the questions measuring one strength.
func (b *Bank) QuestionsFor(strengthID string) []Question {
	qs := b.byStrength[strengthID]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// ByCategory groups strengths by category, keeping catalog order inside
// each group.
func (b *Bank) ByCategory() map[category.Category][]Strength {
	out := make(map[category.Category][]Strength)
	for _, s := range b.strengths {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}
