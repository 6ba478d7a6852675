package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leekokhow/azureml/pkg/structure"
	"github.com/leekokhow/azureml/pkg/structure/drawer"
	"github.com/leekokhow/azureml/pkg/structure/model"
)

func newDrawCmd(c *cli) *cobra.Command {
	var (
		output  string
		rankdir string
	)

	cmd := &cobra.Command{
		Use:   "draw FILE",
		Short: "Draw the structure of a fitted model as a Graphviz DOT graph",
		Long: `Writes a DOT graph of the model. Nodes are coloured by estimator kind and
voting members are shaded by weight.

Example:
  printmodel draw best_run.yaml -o model.dot && dot -Tsvg model.dot > model.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipes, err := c.load(cmd, args)
			if err != nil {
				return err
			}

			// The graph is written only after the walk succeeds.
			var buf bytes.Buffer

			dotDrawer := drawer.NewDOTDrawer(&buf, drawer.GraphAttribute("rankdir", rankdir))

			err = structure.Walk(pipes[0], []model.Visitor{drawer.StructureDrawer(dotDrawer)}, c.walkOptions()...)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				if err != nil {
					return errors.Wrap(err, "unable to write graph")
				}
			} else {
				err = os.WriteFile(output, buf.Bytes(), 0o644) //nolint:gosec
				if err != nil {
					return errors.Wrapf(err, "unable to write %s", output)
				}
			}

			c.logger.Info("structure drawn", zap.String("model", args[0]), zap.String("output", output))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "DOT file to write, - for standard output")
	cmd.Flags().StringVar(&rankdir, "rankdir", "LR", "Graphviz rank direction (TB, LR, BT, RL)")

	return cmd
}
