package main

import (
	"github.com/spf13/cobra"

	"github.com/leekokhow/azureml/pkg/structure"
	"github.com/leekokhow/azureml/pkg/structure/model"
)

func newPrintCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "print FILE...",
		Short: "Print the step tree of fitted models",
		Long: `Prints every step of the pipeline followed by its parameters.
Voting ensembles show their members with weights, stacking ensembles
show their meta learner, and members are expanded recursively.

Example:
  printmodel print best_run.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipes, err := c.load(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			return forEach(out, args, pipes, func(pipe *model.Pipeline) error {
				return structure.Print(out, pipe, c.walkOptions()...)
			})
		},
	}
}
