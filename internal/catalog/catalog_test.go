package catalog_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strengthscope/backend/internal/catalog"
)

func TestDefault_LoadsEmbeddedCatalogs(t *testing.T) {
	cats, err := catalog.Default()
	require.NoError(t, err)

	assert.Len(t, cats.Strengths.Strengths(), 20)
	assert.Len(t, cats.Strengths.Questions(), 100)
	for _, s := range cats.Strengths.Strengths() {
		assert.Len(t, cats.Strengths.QuestionsFor(s.ID), 5, "strength %s", s.ID)
	}

	analyst, ok := cats.Strengths.Strength("analyst")
	require.True(t, ok)
	assert.Equal(t, "Analyst", analyst.Name)
	assert.NotEmpty(t, analyst.Recommendations)

	assert.Len(t, cats.ForcedChoice.Traits(), 20)
	assert.Len(t, cats.ForcedChoice.Questions(), 50)

	total := 0
	for _, tr := range cats.ForcedChoice.Traits() {
		n := cats.ForcedChoice.Appearances(tr.Name)
		assert.Greater(t, n, 0, "trait %s never appears", tr.Name)
		total += n
	}
	assert.Equal(t, 100, total)

	_, ok = cats.ForcedChoice.Trait("Strategic Mind")
	assert.True(t, ok)
}

func TestLoadFS_MissingFile(t *testing.T) {
	_, err := catalog.LoadFS(fstest.MapFS{})
	require.Error(t, err)

	var loadErr *catalog.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, catalog.StrengthsFile, loadErr.File)
}

func TestLoadFS_RejectsShortCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		catalog.StrengthsFile: &fstest.MapFile{Data: []byte(`
strengths:
  - id: analyst
    name: Analyst
    category: thinking_learning
    questions:
      - id: q1
        text: I like data.
`)},
	}

	_, err := catalog.LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 20 strengths")
}
