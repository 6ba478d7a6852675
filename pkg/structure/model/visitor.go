package model

// Visitor defines the hooks fired while a model structure is traversed.
type Visitor interface {
	// New initialises the visitor before the first step.
	New() error

	plainVisitor
	ensembleVisitor

	// Finish runs after the whole structure has been traversed.
	Finish() error
}

// plainVisitor defines the hooks for plain estimators.
type plainVisitor interface {
	// OnPlain runs when a step holding a plain estimator is reached.
	OnPlain(step *StepInfo, est *Plain) error
}

// ensembleVisitor defines the hooks for ensembles and their members.
type ensembleVisitor interface {
	// OnVoting runs when a voting ensemble step is reached, before its members.
	OnVoting(step *StepInfo, est *Voting) error
	// OnStacking runs when a stacking ensemble step is reached, before its base learners.
	OnStacking(step *StepInfo, est *Stacking) error
	// OnMember runs before the pipeline of an ensemble member is traversed.
	OnMember(member *MemberInfo) error
}
