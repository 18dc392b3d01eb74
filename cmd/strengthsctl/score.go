package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/scoring"
)

// scoreInput is the response file format. Only the list matching the scheme
// is read; pairwise scoring also needs the pair set the answers refer to.
type scoreInput struct {
	PairSet      *pairing.PairSet        `json:"pair_set,omitempty"`
	Likert       []response.Likert       `json:"likert,omitempty"`
	Pairwise     []response.Pair         `json:"pairwise,omitempty"`
	ForcedChoice []response.ForcedChoice `json:"forced_choice,omitempty"`
}

var (
	scoreScheme string
	scoreFile   string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a JSON response file offline",
	Long: `Score a JSON response file with one of the three schemes and print the
result as JSON. Pairwise files carry the pair set the answers refer to, as
printed by "strengthsctl pairs".

FILE FORMAT:

  {
    "pair_set": {"pairs": [...]},
    "likert": [{"question_id": "q001", "score": 4}],
    "pairwise": [{"pair_id": "pair-01", "score": 2}],
    "forced_choice": [{"question_id": "fc01", "value": -2}]
  }

Forced-choice answers without trait_a/trait_b take them from the catalog.

EXAMPLES:

  strengthsctl score --scheme likert --file answers.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scheme, err := scoring.ParseScheme(scoreScheme)
		if err != nil {
			return err
		}
		cats, err := loadCatalogs()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(scoreFile)
		if err != nil {
			return fmt.Errorf("error reading responses: %w", err)
		}
		var in scoreInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("error parsing %s: %w", scoreFile, err)
		}

		var result scoring.UserResult
		switch scheme {
		case scoring.SchemeLikert:
			result = scoring.NewLikertScorer(cats.Strengths).Aggregate(in.Likert)
		case scoring.SchemePairwise:
			if in.PairSet == nil {
				return fmt.Errorf("pairwise scoring needs a pair_set in %s", scoreFile)
			}
			result = scoring.NewPairwiseScorer(cats.Strengths, *in.PairSet).Aggregate(in.Pairwise)
		case scoring.SchemeForcedChoice:
			for i, r := range in.ForcedChoice {
				if r.TraitA != "" && r.TraitB != "" {
					continue
				}
				if q, ok := cats.ForcedChoice.Question(r.QuestionID); ok {
					in.ForcedChoice[i].TraitA, in.ForcedChoice[i].TraitB = q.TraitA, q.TraitB
				}
			}
			result = scoring.NewForcedChoiceScorer(cats.ForcedChoice).Aggregate(in.ForcedChoice)
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreScheme, "scheme", "likert", "Scoring scheme (likert|pairwise|forced_choice)")
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Response file")
	scoreCmd.MarkFlagRequired("file")
}
