package model

// Kind identifies the variant of an estimator.
type Kind int

const (
	KindPlain Kind = iota + 1
	KindVoting
	KindStacking
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindVoting:
		return "voting"
	case KindStacking:
		return "stacking"
	default:
		return "unknown"
	}
}

// Estimator is a fitted model component.
// The only implementations are *Plain, *Voting and *Stacking.
type Estimator interface {
	Kind() Kind
	estimator()
}

// Plain is a single estimator exposing its parameters.
type Plain struct {
	Params map[string]any
	// Type is the estimator class name reported by the platform, e.g. "LightGBMClassifier".
	Type string
}

// Voting combines sibling sub-estimators through a weighted vote.
// Weights holds one weight per entry of Estimators.
type Voting struct {
	Estimators []Member
	Weights    []float64
}

// Stacking combines base learners through a meta learner trained on their outputs.
type Stacking struct {
	MetaLearner  Estimator
	BaseLearners []Member
}

// Member is a named child of an ensemble. Children are fitted pipelines themselves.
type Member struct {
	Pipeline *Pipeline
	Name     string
}

func (*Plain) Kind() Kind    { return KindPlain }
func (*Voting) Kind() Kind   { return KindVoting }
func (*Stacking) Kind() Kind { return KindStacking }

func (*Plain) estimator()    {}
func (*Voting) estimator()   {}
func (*Stacking) estimator() {}

var (
	_ Estimator = (*Plain)(nil)
	_ Estimator = (*Voting)(nil)
	_ Estimator = (*Stacking)(nil)
)
