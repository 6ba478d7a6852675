package structure_test

import (
	"testing"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

func plainPipeline(t *testing.T, name string, params map[string]any) *model.Pipeline {
	t.Helper()

	return model.MustPipeline(model.Step{Name: name, Estimator: &model.Plain{Params: params}})
}

// nestedPipeline builds a voting ensemble holding a stacking ensemble holding a voting ensemble.
func nestedPipeline(t *testing.T) *model.Pipeline {
	t.Helper()

	deep := model.MustPipeline(model.Step{
		Name: "deep",
		Estimator: &model.Voting{
			Estimators: []model.Member{{Name: "m3", Pipeline: plainPipeline(t, "leaf", nil)}},
			Weights:    []float64{1},
		},
	})
	inner := model.MustPipeline(model.Step{
		Name: "inner",
		Estimator: &model.Stacking{
			MetaLearner:  &model.Plain{},
			BaseLearners: []model.Member{{Name: "m2", Pipeline: deep}},
		},
	})

	return model.MustPipeline(model.Step{
		Name: "outer",
		Estimator: &model.Voting{
			Estimators: []model.Member{{Name: "m1", Pipeline: inner}},
			Weights:    []float64{1},
		},
	})
}
