package source

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

type rawPipeline struct {
	Steps []rawStep `yaml:"steps"`
}

type rawStep struct {
	Estimator *rawEstimator `yaml:"estimator"`
	Name      string        `yaml:"name"`
}

type rawMember struct {
	Name  string    `yaml:"name"`
	Steps []rawStep `yaml:"steps"`
}

// rawEstimator holds every field an exported estimator may carry. Which of them are
// present decides the variant.
type rawEstimator struct {
	Params       map[string]any `yaml:"params"`
	MetaLearner  *rawEstimator  `yaml:"meta_learner"`
	Type         string         `yaml:"type"`
	Estimators   []rawMember    `yaml:"estimators"`
	Weights      []float64      `yaml:"weights"`
	BaseLearners []rawMember    `yaml:"base_learners"`
}

// Decode reads a model description, YAML or JSON, and classifies its estimators.
// An empty document is an empty pipeline.
func Decode(r io.Reader) (*model.Pipeline, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	raw := rawPipeline{}

	err := dec.Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "unable to parse model description")
	}

	return buildPipeline(raw.Steps, "")
}

func buildPipeline(raws []rawStep, path string) (*model.Pipeline, error) {
	steps := make([]model.Step, len(raws))

	for i, raw := range raws {
		stepPath := path + raw.Name

		if raw.Estimator == nil {
			return nil, errors.Wrapf(ErrMissingEstimator, "step %q", stepPath)
		}

		est, err := classify(raw.Estimator, stepPath)
		if err != nil {
			return nil, err
		}

		steps[i] = model.Step{Name: raw.Name, Estimator: est}
	}

	pipe, err := model.NewPipeline(steps...)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline %q", strings.TrimSuffix(model.RootID+"/"+path, "/"))
	}

	return pipe, nil
}

// classify keeps the platform's probing order: voting, then stacking, then plain.
func classify(raw *rawEstimator, path string) (model.Estimator, error) {
	switch {
	case raw.Estimators != nil && raw.Weights != nil:
		members, err := buildMembers(raw.Estimators, path)
		if err != nil {
			return nil, err
		}

		return &model.Voting{Estimators: members, Weights: raw.Weights}, nil
	case raw.BaseLearners != nil && raw.MetaLearner != nil:
		meta, err := classify(raw.MetaLearner, path+"/meta_learner")
		if err != nil {
			return nil, err
		}

		members, err := buildMembers(raw.BaseLearners, path)
		if err != nil {
			return nil, err
		}

		return &model.Stacking{MetaLearner: meta, BaseLearners: members}, nil
	case raw.Params != nil || raw.Type != "":
		return &model.Plain{Type: raw.Type, Params: raw.Params}, nil
	default:
		return nil, errors.Wrapf(ErrUnrecognizedEstimator, "step %q", path)
	}
}

func buildMembers(raws []rawMember, path string) ([]model.Member, error) {
	members := make([]model.Member, len(raws))

	for i, raw := range raws {
		pipe, err := buildPipeline(raw.Steps, path+"/"+raw.Name+"/")
		if err != nil {
			return nil, err
		}

		members[i] = model.Member{Name: raw.Name, Pipeline: pipe}
	}

	return members, nil
}
