package structure

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet  = errors.New("pipeline must be set")
	ErrMalformedEstimator = errors.New("malformed estimator")
	ErrCyclicStructure    = errors.New("cyclic structure")
	ErrMaxDepthExceeded   = errors.New("maximum nesting depth exceeded")
)
