package forcedchoice

import (
	"errors"
	"fmt"

	"github.com/strengthscope/backend/internal/domain/strength"
)

// Question asks the respondent to lean towards one of two statements, each
// describing a different trait. Traits are referenced by name.
type Question struct {
	ID         string `json:"id" yaml:"id"`
	StatementA string `json:"statement_a" yaml:"statement_a"`
	StatementB string `json:"statement_b" yaml:"statement_b"`
	TraitA     string `json:"trait_a" yaml:"trait_a"`
	TraitB     string `json:"trait_b" yaml:"trait_b"`
}

// Catalog is the forced-choice trait list and its curated question list.
// Its ids are independent from the Likert strengths bank.
type Catalog struct {
	traits      []strength.Strength
	questions   []Question
	traitByName map[string]int
	questionAt  map[string]int
	appearances map[string]int
}

func NewCatalog(traits []strength.Strength, questions []Question) (*Catalog, error) {
	if len(traits) == 0 {
		return nil, errors.New("catalog needs at least one trait")
	}

	c := &Catalog{
		traits:      make([]strength.Strength, len(traits)),
		questions:   make([]Question, len(questions)),
		traitByName: make(map[string]int, len(traits)),
		questionAt:  make(map[string]int, len(questions)),
		appearances: make(map[string]int, len(traits)),
	}
	copy(c.traits, traits)
	copy(c.questions, questions)

	ids := make(map[string]bool, len(traits))
	for i, t := range c.traits {
		if t.ID == "" || t.Name == "" {
			return nil, fmt.Errorf("trait %d: id and name are required", i)
		}
		if ids[t.ID] {
			return nil, fmt.Errorf("duplicate trait id %q", t.ID)
		}
		if _, dup := c.traitByName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate trait name %q", t.Name)
		}
		ids[t.ID] = true
		c.traitByName[t.Name] = i
	}

	for i, q := range c.questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: id cannot be empty", i)
		}
		if _, dup := c.questionAt[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if _, ok := c.traitByName[q.TraitA]; !ok {
			return nil, fmt.Errorf("question %q: unknown trait %q", q.ID, q.TraitA)
		}
		if _, ok := c.traitByName[q.TraitB]; !ok {
			return nil, fmt.Errorf("question %q: unknown trait %q", q.ID, q.TraitB)
		}
		if q.TraitA == q.TraitB {
			return nil, fmt.Errorf("question %q: both statements measure %q", q.ID, q.TraitA)
		}
		c.questionAt[q.ID] = i
		c.appearances[q.TraitA]++
		c.appearances[q.TraitB]++
	}

	return c, nil
}

// Traits returns the traits in catalog order.
func (c *Catalog) Traits() []strength.Strength {
	out := make([]strength.Strength, len(c.traits))
	copy(out, c.traits)
	return out
}

// Questions returns the curated questions in catalog order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

func (c *Catalog) Trait(name string) (strength.Strength, bool) {
	i, ok := c.traitByName[name]
	if !ok {
		return strength.Strength{}, false
	}
	return c.traits[i], true
}

func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.questionAt[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Appearances reports how many questions mention the trait. The counts are
// curated, not uniform.
func (c *Catalog) Appearances(traitName string) int {
	return c.appearances[traitName]
}
