// Package model provides the data structures describing a fitted model.
// It defines the pipeline of named steps, the three estimator variants a step can hold,
// and the visitor hooks fired while the structure is traversed.
package model
