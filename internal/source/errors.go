package source

import (
	"github.com/pkg/errors"
)

var (
	ErrUnrecognizedEstimator = errors.New("estimator matches no known shape")
	ErrMissingEstimator      = errors.New("step has no estimator")
)
