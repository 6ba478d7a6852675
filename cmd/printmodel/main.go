package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leekokhow/azureml/internal/source"
	"github.com/leekokhow/azureml/pkg/structure"
	"github.com/leekokhow/azureml/pkg/structure/model"
)

// cli holds the flags shared by every subcommand.
type cli struct {
	logger      *zap.Logger
	prefix      string
	verbose     bool
	lineage     bool
	concurrency int
	maxDepth    int
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "printmodel",
		Short: "Inspect the structure of fitted AutoML models",
		Long: `printmodel reads the best pipeline exported from an AutoML run (YAML or JSON)
and renders its structure: every step with its parameters, voting ensembles with
their weights, and stacking ensembles with their meta learner.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			logger, err := config.Build()
			if err != nil {
				return errors.Wrap(err, "unable to initialise logger")
			}

			c.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVar(&c.concurrency, "concurrency", 4, "Maximum number of models loaded at once")
	rootCmd.PersistentFlags().StringVar(&c.prefix, "prefix", "", "String prepended to every top-level step name")
	rootCmd.PersistentFlags().BoolVar(&c.lineage, "lineage", false, "Accumulate member names through nested ensembles")
	rootCmd.PersistentFlags().IntVar(&c.maxDepth, "max-depth", structure.DefaultMaxDepth,
		"Maximum ensemble nesting depth (0 disables the bound)")

	rootCmd.AddCommand(
		newPrintCmd(c),
		newDrawCmd(c),
		newSummaryCmd(c),
		newWatchCmd(c),
	)

	return rootCmd
}

func (c *cli) walkOptions() []structure.Option {
	opts := []structure.Option{structure.Prefix(c.prefix), structure.MaxDepth(c.maxDepth)}
	if c.lineage {
		opts = append(opts, structure.Lineage())
	}

	return opts
}

// load reads every file concurrently, keeping the argument order.
func (c *cli) load(cmd *cobra.Command, paths []string) ([]*model.Pipeline, error) {
	providers := make([]source.Provider, len(paths))
	for i, path := range paths {
		providers[i] = source.NewFile(path, source.Logger(c.logger))
	}

	pipes, err := source.LoadAll(cmd.Context(), providers, c.concurrency)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("models loaded", zap.Int("count", len(pipes)))

	return pipes, nil
}

// forEach runs render for every model, with a header line when there is more than one.
func forEach(out io.Writer, paths []string, pipes []*model.Pipeline, render func(*model.Pipeline) error) error {
	for i, pipe := range pipes {
		if len(pipes) > 1 {
			err := writeHeader(out, paths[i], i > 0)
			if err != nil {
				return err
			}
		}

		err := render(pipe)
		if err != nil {
			return errors.Wrap(err, paths[i])
		}
	}

	return nil
}

func writeHeader(out io.Writer, path string, separate bool) error {
	header := "==> " + path + " <==\n"
	if separate {
		header = "\n" + header
	}

	_, err := io.WriteString(out, header)
	if err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
