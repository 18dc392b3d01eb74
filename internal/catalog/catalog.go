// Package catalog loads the static strengths and forced-choice catalogs.
//
// Both catalogs ship embedded in the binary; an operator can point CATALOG_DIR
// at a directory holding replacement strengths.yaml / forced_choice.yaml files.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strengthscope/backend/internal/domain/category"
	"github.com/strengthscope/backend/internal/domain/forcedchoice"
	"github.com/strengthscope/backend/internal/domain/strength"
)

const (
	StrengthsFile    = "strengths.yaml"
	ForcedChoiceFile = "forced_choice.yaml"

	ForcedChoiceTraitCount    = 20
	ForcedChoiceQuestionCount = 50
)

//go:embed strengths.yaml forced_choice.yaml
var embedded embed.FS

// Catalogs bundles both read-only catalogs. Load it once at startup and pass
// it down explicitly.
type Catalogs struct {
	Strengths    *strength.Bank
	ForcedChoice *forcedchoice.Catalog
}

// LoadError reports which catalog file failed to load.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type strengthsDoc struct {
	Strengths []struct {
		strength.Strength `yaml:",inline"`
		Questions         []struct {
			ID   string `yaml:"id"`
			Text string `yaml:"text"`
		} `yaml:"questions"`
	} `yaml:"strengths"`
}

type forcedChoiceDoc struct {
	Traits    []strength.Strength     `yaml:"traits"`
	Questions []forcedchoice.Question `yaml:"questions"`
}

// Default loads the embedded catalogs.
func Default() (*Catalogs, error) {
	return LoadFS(embedded)
}

// Load reads catalogs from dir, or the embedded copies when dir is empty.
func Load(dir string) (*Catalogs, error) {
	if dir == "" {
		return Default()
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads and validates both catalogs from fsys.
func LoadFS(fsys fs.FS) (*Catalogs, error) {
	bank, err := loadStrengths(fsys)
	if err != nil {
		return nil, &LoadError{File: StrengthsFile, Err: err}
	}
	fc, err := loadForcedChoice(fsys)
	if err != nil {
		return nil, &LoadError{File: ForcedChoiceFile, Err: err}
	}
	return &Catalogs{Strengths: bank, ForcedChoice: fc}, nil
}

func loadStrengths(fsys fs.FS) (*strength.Bank, error) {
	raw, err := fs.ReadFile(fsys, StrengthsFile)
	if err != nil {
		return nil, err
	}

	var doc strengthsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var (
		strengths []strength.Strength
		questions []strength.Question
	)
	for _, s := range doc.Strengths {
		strengths = append(strengths, s.Strength)
		for _, q := range s.Questions {
			questions = append(questions, strength.Question{
				ID:         q.ID,
				Text:       q.Text,
				StrengthID: s.ID,
			})
		}
	}

	bank, err := strength.NewBank(strengths, questions)
	if err != nil {
		return nil, err
	}
	if err := bank.ValidateStandard(); err != nil {
		return nil, err
	}
	if err := checkCategoriesCovered(strengths); err != nil {
		return nil, err
	}
	return bank, nil
}

func loadForcedChoice(fsys fs.FS) (*forcedchoice.Catalog, error) {
	raw, err := fs.ReadFile(fsys, ForcedChoiceFile)
	if err != nil {
		return nil, err
	}

	var doc forcedChoiceDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if len(doc.Traits) != ForcedChoiceTraitCount {
		return nil, fmt.Errorf("expected %d traits, got %d", ForcedChoiceTraitCount, len(doc.Traits))
	}
	if len(doc.Questions) != ForcedChoiceQuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", ForcedChoiceQuestionCount, len(doc.Questions))
	}

	return forcedchoice.NewCatalog(doc.Traits, doc.Questions)
}

func checkCategoriesCovered(strengths []strength.Strength) error {
	seen := make(map[category.Category]bool)
	for _, s := range strengths {
		seen[s.Category] = true
	}
	for _, c := range category.All() {
		if !seen[c] {
			return fmt.Errorf("category %q has no strengths", c)
		}
	}
	return nil
}
