package structure

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

const memberSeparator = " - "

// segmentEscaper escapes the characters IDs reserve: "/" between segments and "#" for drawer suffixes.
var segmentEscaper = strings.NewReplacer("%", "%25", "/", "%2F", "#", "%23")

// childID returns the ID of name inside the container parentID.
func childID(parentID, name string) string {
	return parentID + "/" + segmentEscaper.Replace(name)
}

type walker struct {
	onPath   map[*model.Pipeline]struct{}
	prefix   string
	visitors []model.Visitor
	maxDepth int
	lineage  bool
}

func newWalker(visitors []model.Visitor, opts ...Option) *walker {
	w := &walker{
		onPath:   make(map[*model.Pipeline]struct{}),
		visitors: visitors,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk traverses pipe depth first, in step order, and fires the hooks of every visitor.
// It returns early on the first error.
func Walk(pipe *model.Pipeline, visitors []model.Visitor, opts ...Option) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}

	w := newWalker(visitors, opts...)

	for _, v := range w.visitors {
		err := v.New()
		if err != nil {
			return errors.Wrap(err, "unable to initialise visitor")
		}
	}

	err := w.walkPipeline(pipe, w.prefix, model.RootID, 0)
	if err != nil {
		return err
	}

	for _, v := range w.visitors {
		err := v.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish visitor")
		}
	}

	return nil
}

func (w *walker) visit(fn func(v model.Visitor) error) error {
	for _, v := range w.visitors {
		err := fn(v)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) walkPipeline(pipe *model.Pipeline, prefix, containerID string, depth int) error {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return errors.Wrapf(ErrMaxDepthExceeded, "%s is nested %d levels deep", containerID, depth)
	}

	if _, ok := w.onPath[pipe]; ok {
		return errors.Wrapf(ErrCyclicStructure, "%s contains itself", containerID)
	}

	w.onPath[pipe] = struct{}{}
	defer delete(w.onPath, pipe)

	parentID := containerID
	seen := make(map[string]struct{}, len(pipe.Steps))

	for _, step := range pipe.Steps {
		if _, ok := seen[step.Name]; ok {
			return errors.Wrapf(model.ErrDuplicateStep, "step %q", prefix+step.Name)
		}

		seen[step.Name] = struct{}{}

		info := &model.StepInfo{
			ID:       childID(containerID, step.Name),
			ParentID: parentID,
			Name:     step.Name,
			Prefix:   prefix,
			Depth:    depth,
		}

		err := w.walkStep(info, step.Estimator)
		if err != nil {
			return errors.Wrapf(err, "step %q", info.Label())
		}

		parentID = info.ID
	}

	return nil
}

// walkStep keeps the voting, stacking, plain order in which the platform result is classified.
func (w *walker) walkStep(info *model.StepInfo, est model.Estimator) error {
	if model.IsNil(est) {
		return errors.Wrap(ErrMalformedEstimator, "step has no estimator")
	}

	switch est := est.(type) {
	case *model.Voting:
		if len(est.Weights) != len(est.Estimators) {
			return errors.Wrapf(ErrMalformedEstimator, "voting ensemble has %d estimators but %d weights",
				len(est.Estimators), len(est.Weights))
		}

		info.Kind = model.KindVoting

		err := uniqueMembers(est.Estimators)
		if err != nil {
			return err
		}

		err = w.visit(func(v model.Visitor) error { return v.OnVoting(info, est) })
		if err != nil {
			return err
		}

		for i, member := range est.Estimators {
			err := w.walkMember(info, member, model.RoleEstimator, est.Weights[i])
			if err != nil {
				return err
			}
		}

		return nil
	case *model.Stacking:
		if model.IsNil(est.MetaLearner) {
			return errors.Wrap(ErrMalformedEstimator, "stacking ensemble has no meta learner")
		}

		info.Kind = model.KindStacking

		err := uniqueMembers(est.BaseLearners)
		if err != nil {
			return err
		}

		err = w.visit(func(v model.Visitor) error { return v.OnStacking(info, est) })
		if err != nil {
			return err
		}

		for _, member := range est.BaseLearners {
			err := w.walkMember(info, member, model.RoleBaseLearner, 0)
			if err != nil {
				return err
			}
		}

		return nil
	case *model.Plain:
		info.Kind = model.KindPlain

		return w.visit(func(v model.Visitor) error { return v.OnPlain(info, est) })
	default:
		return errors.Wrapf(ErrMalformedEstimator, "unsupported estimator %T", est)
	}
}

func uniqueMembers(members []model.Member) error {
	seen := make(map[string]struct{}, len(members))

	for _, member := range members {
		if _, ok := seen[member.Name]; ok {
			return errors.Wrapf(ErrMalformedEstimator, "member %q appears twice", member.Name)
		}

		seen[member.Name] = struct{}{}
	}

	return nil
}

func (w *walker) walkMember(parent *model.StepInfo, member model.Member, role model.MemberRole, weight float64) error {
	if member.Pipeline == nil {
		return errors.Wrapf(ErrMalformedEstimator, "member %q has no pipeline", member.Name)
	}

	info := &model.MemberInfo{
		ID:       childID(parent.ID, member.Name),
		ParentID: parent.ID,
		Name:     member.Name,
		Role:     role,
		Weight:   weight,
		Depth:    parent.Depth + 1,
	}

	err := w.visit(func(v model.Visitor) error { return v.OnMember(info) })
	if err != nil {
		return err
	}

	prefix := member.Name + memberSeparator
	if w.lineage {
		prefix = parent.Prefix + prefix
	}

	return w.walkPipeline(member.Pipeline, prefix, info.ID, info.Depth)
}
