// Package structure renders the structure of a fitted model.
//
// A fitted model is a pipeline of named steps. A step holds either a plain estimator, a voting ensemble of
// sub-pipelines with one weight each, or a stacking ensemble made of a meta learner and base learner pipelines.
// Walk traverses this tree depth first and fires the hooks of every model.Visitor it is given, so the same
// traversal drives the text printer, the DOT drawer and the summary measure.
//
// The traversal stops on the first error. Ensembles that contain themselves are rejected instead of recursing
// forever, and the nesting depth is bounded. Print buffers its rendering and writes nothing when the traversal
// fails, which also makes two calls on the same model produce identical bytes.
package structure
