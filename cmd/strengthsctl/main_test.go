package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/scoring"
	"github.com/strengthscope/backend/internal/simulation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Strengths: 20 strengths, 100 statements")
	assert.Contains(t, out, "Forced choice: 20 traits, 50 questions")
	assert.Contains(t, out, "Justice Seeker")
}

func TestCatalogCommand_BadDir(t *testing.T) {
	_, err := run(t, "catalog", "--catalog-dir", t.TempDir())
	assert.Error(t, err)
	catalogDir = ""
}

func TestPairsCommand(t *testing.T) {
	out, err := run(t, "pairs", "--seed", "7", "--rebuilds", "10")
	require.NoError(t, err)

	var set pairing.PairSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	require.NotEmpty(t, set.Pairs)
	assert.LessOrEqual(t, len(set.Pairs), pairing.DefaultPairCount)
	for _, p := range set.Pairs {
		assert.NotEqual(t, p.TraitA, p.TraitB, p.ID)
	}

	again, err := run(t, "pairs", "--seed", "7", "--rebuilds", "10")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestScoreCommand_Likert(t *testing.T) {
	path := writeFile(t, map[string]any{
		"likert": []map[string]any{
			{"question_id": "q001", "score": 5},
			{"question_id": "q002", "score": 5},
		},
	})

	out, err := run(t, "score", "--scheme", "likert", "--file", path)
	require.NoError(t, err)

	var result scoring.UserResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	top, ok := result.Top()
	require.True(t, ok)
	assert.Equal(t, "analyst", top.Strength.ID)
}

func TestScoreCommand_ForcedChoiceFillsTraits(t *testing.T) {
	path := writeFile(t, map[string]any{
		"forced_choice": []map[string]any{
			{"question_id": "fc01", "value": 3},
		},
	})

	out, err := run(t, "score", "--scheme", "forced_choice", "--file", path)
	require.NoError(t, err)

	var result scoring.UserResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	top, ok := result.Top()
	require.True(t, ok)
	assert.Equal(t, "Justice Seeker", top.Strength.Name)
	assert.Equal(t, 3.0, top.Score)
}

func TestScoreCommand_Errors(t *testing.T) {
	path := writeFile(t, map[string]any{"pairwise": []map[string]any{{"pair_id": "pair-01", "score": 4}}})

	_, err := run(t, "score", "--scheme", "pairwise", "--file", path)
	assert.ErrorContains(t, err, "pair_set")

	_, err = run(t, "score", "--scheme", "tarot", "--file", path)
	assert.ErrorContains(t, err, "unknown scheme")

	_, err = run(t, "score", "--scheme", "likert", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "--scheme", "likert", "-n", "12", "-w", "3", "--seed", "5", "--json")
	require.NoError(t, err)

	var report simulation.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, scoring.SchemeLikert, report.Scheme)
	assert.Equal(t, 12, report.Respondents)
	assert.NotEmpty(t, report.TopCounts)

	out, err = run(t, "simulate", "--scheme", "pairwise", "-n", "4", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Short sets:")
	assert.Contains(t, out, "Top strengths:")
}
