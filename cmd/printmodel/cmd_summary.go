package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/leekokhow/azureml/pkg/structure"
	"github.com/leekokhow/azureml/pkg/structure/measure"
	"github.com/leekokhow/azureml/pkg/structure/model"
)

func newSummaryCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary FILE...",
		Short: "Count the estimators and ensembles of fitted models",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return errors.Errorf("unknown format %q, expected text or yaml", format)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pipes, err := c.load(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			return forEach(out, args, pipes, func(pipe *model.Pipeline) error {
				summary := measure.NewSummary()

				err := structure.Walk(pipe, []model.Visitor{summary}, c.walkOptions()...)
				if err != nil {
					return err
				}

				if format == "yaml" {
					return summary.WriteYAML(out)
				}

				return summary.WriteText(out)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")

	return cmd
}
