package structure

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

const metaLearnerHeader = "Meta Learner"

// textPrinter renders each step as its name followed by a description block and a blank line.
type textPrinter struct {
	out io.Writer
}

func newTextPrinter(out io.Writer) *textPrinter {
	return &textPrinter{out: out}
}

func (p *textPrinter) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(p.out, format, args...)
	if err != nil {
		return errors.Wrap(err, "unable to write structure")
	}

	return nil
}

func (p *textPrinter) New() error {
	return nil
}

func (p *textPrinter) OnPlain(step *model.StepInfo, est *model.Plain) error {
	return p.printf("%s\n%s\n\n", step.Label(), model.FormatParams(est.Params))
}

func (p *textPrinter) OnVoting(step *model.StepInfo, est *model.Voting) error {
	return p.printf("%s\n{estimators: %s, weights: %s}\n\n",
		step.Label(), model.FormatNames(est.Estimators), model.FormatWeights(est.Weights))
}

func (p *textPrinter) OnStacking(step *model.StepInfo, est *model.Stacking) error {
	return p.printf("%s\n\n%s\n%s\n\n", step.Label(), metaLearnerHeader, model.Describe(est.MetaLearner))
}

func (p *textPrinter) OnMember(*model.MemberInfo) error {
	return nil
}

func (p *textPrinter) Finish() error {
	return nil
}

var _ model.Visitor = (*textPrinter)(nil)

// Print writes a human readable tree of pipe to out.
// Nothing is written when the structure cannot be traversed.
func Print(out io.Writer, pipe *model.Pipeline, opts ...Option) error {
	var buf bytes.Buffer

	err := Walk(pipe, []model.Visitor{newTextPrinter(&buf)}, opts...)
	if err != nil {
		return err
	}

	_, err = out.Write(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "unable to write structure")
	}

	return nil
}

// PrintStructure writes the structure of pipe to the standard output,
// prepending prefix to every top-level step name.
func PrintStructure(pipe *model.Pipeline, prefix string) error {
	return Print(os.Stdout, pipe, Prefix(prefix))
}
