package model

// RootID is the identifier of the top-level pipeline container.
const RootID = "model"

// StepInfo describes a step as it is reached during traversal.
type StepInfo struct {
	// ID identifies the step within the whole model, e.g. "model/ensemble/a/scaler".
	// Names are escaped, so a step named "a/b" gets the segment "a%2Fb".
	ID string
	// ParentID is the previous step of the same pipeline, or the container
	// (RootID or a member ID) for the first step.
	ParentID string
	Name     string
	Prefix   string
	Kind     Kind
	Depth    int
}

// Label is the name as printed, prefix included.
func (s *StepInfo) Label() string {
	return s.Prefix + s.Name
}

// MemberRole tells which ensemble sequence a member belongs to.
type MemberRole string

const (
	RoleEstimator   MemberRole = "estimator"
	RoleBaseLearner MemberRole = "base_learner"
)

// MemberInfo describes an ensemble child pipeline before it is traversed.
type MemberInfo struct {
	ID string
	// ParentID is the ID of the ensemble step owning the member.
	ParentID string
	Name     string
	Role     MemberRole
	// Weight is only meaningful for voting members.
	Weight float64
	Depth  int
}
