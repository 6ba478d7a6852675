// Package source loads fitted models exported by the training platform.
//
// The platform hands over the best pipeline of a run as a YAML or JSON description. Decode classifies every
// estimator of that description once, so the rest of the code works on the model package's variants only.
package source
