package drawer

import (
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

const (
	metaLearnerLabel  = "Meta Learner"
	metaLearnerSuffix = "#meta"
)

type structureDrawer struct {
	Drawer
	maxWeights map[string]float64
}

func (sd *structureDrawer) New() error {
	err := sd.AddNode(Node{ID: model.RootID, Label: model.RootID, Kind: RootNode})
	if err != nil {
		return errors.Wrap(err, "unable to add root node to drawer")
	}

	return nil
}

func (sd *structureDrawer) addStep(step *model.StepInfo, kind NodeKind, detail string) error {
	err := sd.AddNode(Node{ID: step.ID, Label: step.Name, Detail: detail, Kind: kind})
	if err != nil {
		return err
	}

	return sd.AddLink(Link{From: step.ParentID, To: step.ID})
}

func (sd *structureDrawer) OnPlain(step *model.StepInfo, est *model.Plain) error {
	return sd.addStep(step, PlainNode, est.Type)
}

func (sd *structureDrawer) OnVoting(step *model.StepInfo, est *model.Voting) error {
	if len(est.Weights) > 0 {
		sd.maxWeights[step.ID] = floats.Max(est.Weights)
	}

	return sd.addStep(step, VotingNode, "weights: "+model.FormatWeights(est.Weights))
}

func (sd *structureDrawer) OnStacking(step *model.StepInfo, est *model.Stacking) error {
	err := sd.addStep(step, StackingNode, "")
	if err != nil {
		return err
	}

	metaID := step.ID + metaLearnerSuffix

	err = sd.AddNode(Node{ID: metaID, Label: metaLearnerLabel, Detail: model.Describe(est.MetaLearner), Kind: MetaNode})
	if err != nil {
		return err
	}

	return sd.AddLink(Link{From: step.ID, To: metaID, Dashed: true})
}

func (sd *structureDrawer) OnMember(member *model.MemberInfo) error {
	err := sd.AddNode(Node{ID: member.ID, Label: member.Name, Kind: MemberNode})
	if err != nil {
		return err
	}

	link := Link{From: member.ParentID, To: member.ID}
	if member.Role == model.RoleEstimator {
		link.Label = strconv.FormatFloat(member.Weight, 'g', -1, 64)
		link.Weighted = true
		link.Share = share(member.Weight, sd.maxWeights[member.ParentID])
	}

	return sd.AddLink(link)
}

func (sd *structureDrawer) Finish() error {
	err := sd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw structure")
	}

	return nil
}

func share(weight, maxWeight float64) float64 {
	if maxWeight <= 0 || weight <= 0 {
		return 0
	}

	return min(weight/maxWeight, 1)
}

// StructureDrawer returns a visitor feeding the model structure to drawer.
func StructureDrawer(drawer Drawer) model.Visitor {
	return &structureDrawer{Drawer: drawer, maxWeights: make(map[string]float64)}
}
