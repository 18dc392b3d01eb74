// simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/scoring"
)

// Options control a simulation run.
type Options struct {
	Scheme      scoring.Scheme
	Respondents int
	Workers     int
	Seed        int64
	Rebuilds    int
}

// Report summarizes a run. Every respondent has one favourite strength it
// always answers for at full strength and answers everything else at
// random, so Recovered counts how often scoring puts the favourite first.
type Report struct {
	Scheme        scoring.Scheme `json:"scheme"`
	Respondents   int            `json:"respondents"`
	Recovered     int            `json:"recovered"`
	RecoveryRate  float64        `json:"recovery_rate"`
	ShortPairSets int            `json:"short_pair_sets,omitempty"`
	ShortRate     float64        `json:"short_rate,omitempty"`
	TopCounts     []TopCount     `json:"top_counts"`
	Elapsed       time.Duration  `json:"elapsed_ns"`
}

// TopCount is how often a strength ranked first.
type TopCount struct {
	Strength string `json:"strength"`
	Count    int    `json:"count"`
}

type outcome struct {
	top       string
	recovered bool
	short     bool
}

// Run simulates opts.Respondents independent attempts concurrently. Each
// respondent gets its own random source derived from opts.Seed, so a run is
// reproducible whatever the worker count.
func Run(ctx context.Context, cats *catalog.Catalogs, opts Options) (*Report, error) {
	if opts.Respondents <= 0 {
		return nil, fmt.Errorf("respondents must be positive, got %d", opts.Respondents)
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	outcomes := make([]outcome, opts.Respondents)
	for i := 0; i < opts.Respondents; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := respond(cats, opts, opts.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("respondent %d: %w", i, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(opts, outcomes, time.Since(start)), nil
}

func respond(cats *catalog.Catalogs, opts Options, seed int64) (outcome, error) {
	rng := rand.New(rand.NewSource(seed))
	config := attempt.DefaultConfig()
	config.Rand = rng
	config.Rebuilds = opts.Rebuilds

	a, err := attempt.New(fmt.Sprintf("sim-%d", seed), opts.Scheme, cats, config)
	if err != nil {
		return outcome{}, err
	}

	now := a.StartedAt
	var favourite string
	switch opts.Scheme {
	case scoring.SchemeLikert:
		strengths := cats.Strengths.Strengths()
		favourite = strengths[rng.Intn(len(strengths))].ID
		for _, q := range a.Questions {
			score := 1 + rng.Intn(response.LikertMax)
			if q.StrengthID == favourite {
				score = response.LikertMax
			}
			if _, err := a.AnswerLikert(response.Likert{QuestionID: q.ID, Score: score}, now); err != nil {
				return outcome{}, err
			}
		}
	case scoring.SchemePairwise:
		strengths := cats.Strengths.Strengths()
		favourite = strengths[rng.Intn(len(strengths))].ID
		for _, p := range a.Pairs.Pairs {
			score := response.PairMin + rng.Intn(response.PairMax)
			switch favourite {
			case p.TraitA:
				score = response.PairMin
			case p.TraitB:
				score = response.PairMax
			}
			if _, err := a.AnswerPair(response.Pair{PairID: p.ID, Score: score}, now); err != nil {
				return outcome{}, err
			}
		}
	case scoring.SchemeForcedChoice:
		traits := cats.ForcedChoice.Traits()
		favourite = traits[rng.Intn(len(traits))].Name
		for _, q := range a.Choices {
			value := 1 + rng.Intn(response.ForcedChoiceMax)
			if rng.Intn(2) == 0 {
				value = -value
			}
			switch favourite {
			case q.TraitA:
				value = response.ForcedChoiceMax
			case q.TraitB:
				value = -response.ForcedChoiceMax
			}
			if _, err := a.AnswerForcedChoice(response.ForcedChoice{QuestionID: q.ID, Value: value}, now); err != nil {
				return outcome{}, err
			}
		}
	}

	if err := a.Complete(now); err != nil {
		return outcome{}, err
	}
	top, ok := a.Score(cats).Top()
	if !ok {
		return outcome{}, fmt.Errorf("empty ranking")
	}

	key := top.Strength.ID
	if opts.Scheme == scoring.SchemeForcedChoice {
		key = top.Strength.Name
	}
	return outcome{
		top:       top.Strength.Name,
		recovered: key == favourite,
		short:     opts.Scheme == scoring.SchemePairwise && !a.Pairs.Complete(),
	}, nil
}

func summarize(opts Options, outcomes []outcome, elapsed time.Duration) *Report {
	r := &Report{
		Scheme:      opts.Scheme,
		Respondents: len(outcomes),
		Elapsed:     elapsed,
	}

	counts := make(map[string]int)
	for _, o := range outcomes {
		counts[o.top]++
		if o.recovered {
			r.Recovered++
		}
		if o.short {
			r.ShortPairSets++
		}
	}
	r.RecoveryRate = float64(r.Recovered) / float64(r.Respondents)
	r.ShortRate = float64(r.ShortPairSets) / float64(r.Respondents)

	for name, n := range counts {
		r.TopCounts = append(r.TopCounts, TopCount{Strength: name, Count: n})
	}
	sort.Slice(r.TopCounts, func(i, j int) bool {
		if r.TopCounts[i].Count != r.TopCounts[j].Count {
			return r.TopCounts[i].Count > r.TopCounts[j].Count
		}
		return r.TopCounts[i].Strength < r.TopCounts[j].Strength
	})
	return r
}
