package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/simulation"
)

func TestRun_RecoversFavouriteStrength(t *testing.T) {
	cats, err := catalog.Default()
	require.NoError(t, err)

	tests := []struct {
		scheme  scoring.Scheme
		minRate float64
	}{
		{scoring.SchemeLikert, 0.9},
		{scoring.SchemePairwise, 0.9},
		{scoring.SchemeForcedChoice, 0.8},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			report, err := simulation.Run(context.Background(), cats, simulation.Options{
				Scheme:      tt.scheme,
				Respondents: 60,
				Workers:     4,
				Seed:        1,
				Rebuilds:    10,
			})
			require.NoError(t, err)

			assert.Equal(t, 60, report.Respondents)
			assert.GreaterOrEqual(t, report.RecoveryRate, tt.minRate)

			total := 0
			for _, tc := range report.TopCounts {
				total += tc.Count
			}
			assert.Equal(t, 60, total)
		})
	}
}

func TestRun_ReproducibleAcrossWorkerCounts(t *testing.T) {
	cats, err := catalog.Default()
	require.NoError(t, err)

	run := func(workers int) *simulation.Report {
		r, err := simulation.Run(context.Background(), cats, simulation.Options{
			Scheme:      scoring.SchemePairwise,
			Respondents: 20,
			Workers:     workers,
			Seed:        99,
			Rebuilds:    10,
		})
		require.NoError(t, err)
		return r
	}

	one, many := run(1), run(8)
	assert.Equal(t, one.TopCounts, many.TopCounts)
	assert.Equal(t, one.Recovered, many.Recovered)
	assert.Equal(t, one.ShortPairSets, many.ShortPairSets)
}

func TestRun_RejectsBadInput(t *testing.T) {
	cats, err := catalog.Default()
	require.NoError(t, err)

	_, err = simulation.Run(context.Background(), cats, simulation.Options{Scheme: scoring.SchemeLikert})
	assert.Error(t, err)

	_, err = simulation.Run(context.Background(), cats, simulation.Options{Scheme: "tarot", Respondents: 1})
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	cats, err := catalog.Default()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = simulation.Run(ctx, cats, simulation.Options{Scheme: scoring.SchemeLikert, Respondents: 5})
	assert.ErrorIs(t, err, context.Canceled)
}
