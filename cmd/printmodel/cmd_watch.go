package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leekokhow/azureml/internal/source"
	"github.com/leekokhow/azureml/pkg/structure"
	"github.com/leekokhow/azureml/pkg/structure/model"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Print the structure of a model again every time its file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			c.logger.Info("watching model", zap.String("path", args[0]))

			return source.Watch(ctx, args[0], func(pipe *model.Pipeline) error {
				return structure.Print(out, pipe, c.walkOptions()...)
			}, source.Logger(c.logger))
		},
	}
}
