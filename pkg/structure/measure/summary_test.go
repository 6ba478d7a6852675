package measure_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leekokhow/azureml/pkg/structure"
	"github.com/leekokhow/azureml/pkg/structure/measure"
	"github.com/leekokhow/azureml/pkg/structure/model"
)

func samplePipeline() *model.Pipeline {
	return model.MustPipeline(
		model.Step{Name: "scaler", Estimator: &model.Plain{}},
		model.Step{Name: "ens", Estimator: &model.Voting{
			Estimators: []model.Member{
				{Name: "a", Pipeline: model.MustPipeline(model.Step{Name: "lgbm", Estimator: &model.Plain{}})},
				{Name: "b", Pipeline: model.MustPipeline(model.Step{Name: "stack", Estimator: &model.Stacking{
					MetaLearner: &model.Plain{Type: "LogisticRegression", Params: map[string]any{"C": 1.0}},
					BaseLearners: []model.Member{
						{Name: "x", Pipeline: model.MustPipeline(model.Step{Name: "xgb", Estimator: &model.Plain{}})},
					},
				}})},
			},
			Weights: []float64{0.25, 0.75},
		}},
	)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	summary := measure.NewSummary()
	err := structure.Walk(samplePipeline(), []model.Visitor{summary})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Steps)
	assert.Equal(t, 3, summary.Members)
	assert.Equal(t, 2, summary.MaxDepth)
	assert.Equal(t, map[string]int{"plain": 3, "voting": 1, "stacking": 1}, summary.Kinds)
	assert.Equal(t, []measure.Ensemble{
		{ID: "model/ens", Kind: "voting", Members: 2, TotalWeight: 1},
		{ID: "model/ens/b/stack", Kind: "stacking", Members: 1, MetaLearner: "LogisticRegression(C=1)"},
	}, summary.Ensembles)
}

func TestSummaryReset(t *testing.T) {
	t.Parallel()

	summary := measure.NewSummary()
	require.NoError(t, structure.Walk(samplePipeline(), []model.Visitor{summary}))
	require.NoError(t, structure.Walk(samplePipeline(), []model.Visitor{summary}))
	assert.Equal(t, 5, summary.Steps)
	assert.Len(t, summary.Ensembles, 2)
}

func TestSummaryWriteText(t *testing.T) {
	t.Parallel()

	summary := measure.NewSummary()
	require.NoError(t, structure.Walk(samplePipeline(), []model.Visitor{summary}))

	var buf bytes.Buffer
	require.NoError(t, summary.WriteText(&buf))
	assert.Equal(t, "steps: 5 (plain 3, voting 1, stacking 1)\n"+
		"members: 3\n"+
		"max depth: 2\n"+
		"ensemble model/ens: voting, 2 members, total weight 1\n"+
		"ensemble model/ens/b/stack: stacking, 1 members, meta learner LogisticRegression(C=1)\n",
		buf.String())
}

func TestSummaryWriteYAML(t *testing.T) {
	t.Parallel()

	summary := measure.NewSummary()
	require.NoError(t, structure.Walk(samplePipeline(), []model.Visitor{summary}))

	var buf bytes.Buffer
	require.NoError(t, summary.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "max_depth: 2\n")
	assert.Contains(t, buf.String(), "total_weight: 1\n")
	assert.Contains(t, buf.String(), "meta_learner: LogisticRegression(C=1)\n")
	assert.NotContains(t, buf.String(), "ensembleAt")
}

func TestSummaryEmpty(t *testing.T) {
	t.Parallel()

	summary := measure.NewSummary()
	require.NoError(t, structure.Walk(model.MustPipeline(), []model.Visitor{summary}))

	var buf bytes.Buffer
	require.NoError(t, summary.WriteText(&buf))
	assert.Equal(t, "steps: 0 (plain 0, voting 0, stacking 0)\nmembers: 0\nmax depth: 0\n", buf.String())
}

func TestNewSummaryWithoutWalk(t *testing.T) {
	t.Parallel()

	summary := measure.NewSummary()
	require.NotNil(t, summary.Kinds)
	assert.Empty(t, summary.Ensembles)

	var buf bytes.Buffer
	require.NoError(t, summary.WriteText(&buf))
	assert.Equal(t, "steps: 0 (plain 0, voting 0, stacking 0)\nmembers: 0\nmax depth: 0\n", buf.String())
}
