package measure

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

// Ensemble summarises one ensemble step.
type Ensemble struct {
	ID          string  `yaml:"id"`
	Kind        string  `yaml:"kind"`
	MetaLearner string  `yaml:"meta_learner,omitempty"`
	Members     int     `yaml:"members"`
	TotalWeight float64 `yaml:"total_weight,omitempty"`
}

// Summary counts what a model structure is made of. It is filled by traversing the structure.
type Summary struct {
	Kinds      map[string]int `yaml:"kinds"`
	Ensembles  []Ensemble     `yaml:"ensembles"`
	Steps      int            `yaml:"steps"`
	Members    int            `yaml:"members"`
	MaxDepth   int            `yaml:"max_depth"`
	ensembleAt map[string]int
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	s := &Summary{}
	s.reset()

	return s
}

func (s *Summary) reset() {
	s.Kinds = make(map[string]int)
	s.Ensembles = []Ensemble{}
	s.Steps = 0
	s.Members = 0
	s.MaxDepth = 0
	s.ensembleAt = make(map[string]int)
}

// New clears the counts of a previous traversal.
func (s *Summary) New() error {
	s.reset()

	return nil
}

func (s *Summary) addStep(step *model.StepInfo) {
	s.Steps++
	s.Kinds[step.Kind.String()]++
	s.MaxDepth = max(s.MaxDepth, step.Depth)
}

func (s *Summary) addEnsemble(ensemble Ensemble) {
	s.ensembleAt[ensemble.ID] = len(s.Ensembles)
	s.Ensembles = append(s.Ensembles, ensemble)
}

func (s *Summary) OnPlain(step *model.StepInfo, _ *model.Plain) error {
	s.addStep(step)

	return nil
}

func (s *Summary) OnVoting(step *model.StepInfo, est *model.Voting) error {
	s.addStep(step)
	s.addEnsemble(Ensemble{
		ID:          step.ID,
		Kind:        step.Kind.String(),
		TotalWeight: floats.Sum(est.Weights),
	})

	return nil
}

func (s *Summary) OnStacking(step *model.StepInfo, est *model.Stacking) error {
	s.addStep(step)
	s.addEnsemble(Ensemble{
		ID:          step.ID,
		Kind:        step.Kind.String(),
		MetaLearner: model.Describe(est.MetaLearner),
	})

	return nil
}

func (s *Summary) OnMember(member *model.MemberInfo) error {
	idx, ok := s.ensembleAt[member.ParentID]
	if !ok {
		return errors.Errorf("member %s reached before its ensemble", member.ID)
	}

	s.Members++
	s.Ensembles[idx].Members++

	return nil
}

func (s *Summary) Finish() error {
	return nil
}

// WriteText writes a short human readable report.
func (s *Summary) WriteText(out io.Writer) error {
	_, err := fmt.Fprintf(out, "steps: %d (plain %d, voting %d, stacking %d)\nmembers: %d\nmax depth: %d\n",
		s.Steps, s.Kinds[model.KindPlain.String()], s.Kinds[model.KindVoting.String()],
		s.Kinds[model.KindStacking.String()], s.Members, s.MaxDepth)
	if err != nil {
		return errors.Wrap(err, "unable to write summary")
	}

	for _, ensemble := range s.Ensembles {
		detail := fmt.Sprintf("total weight %g", ensemble.TotalWeight)
		if ensemble.MetaLearner != "" {
			detail = "meta learner " + ensemble.MetaLearner
		}

		_, err := fmt.Fprintf(out, "ensemble %s: %s, %d members, %s\n",
			ensemble.ID, ensemble.Kind, ensemble.Members, detail)
		if err != nil {
			return errors.Wrap(err, "unable to write summary")
		}
	}

	return nil
}

// WriteYAML writes the summary as a YAML document.
func (s *Summary) WriteYAML(out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	err := enc.Encode(s)
	if err != nil {
		return errors.Wrap(err, "unable to encode summary")
	}

	return errors.Wrap(enc.Close(), "unable to close summary encoder")
}

var _ model.Visitor = (*Summary)(nil)
