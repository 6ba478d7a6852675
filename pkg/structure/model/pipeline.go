package model

import (
	"github.com/pkg/errors"
)

var ErrDuplicateStep = errors.New("step name must be unique")

// Step is a named processing step of a pipeline.
type Step struct {
	Estimator Estimator
	Name      string
}

// Pipeline is an ordered sequence of named steps, in execution order.
type Pipeline struct {
	Steps []Step
}

// NewPipeline creates a pipeline from steps, rejecting repeated step names.
func NewPipeline(steps ...Step) (*Pipeline, error) {
	seen := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		if _, ok := seen[step.Name]; ok {
			return nil, errors.Wrapf(ErrDuplicateStep, "step %q", step.Name)
		}

		seen[step.Name] = struct{}{}
	}

	return &Pipeline{Steps: steps}, nil
}

// MustPipeline is like NewPipeline but panics on error.
func MustPipeline(steps ...Step) *Pipeline {
	pipe, err := NewPipeline(steps...)
	if err != nil {
		panic(err)
	}

	return pipe
}
