// Command lbp runs loopy belief propagation on YAML factor-graph models.
//
//	lbp grid --rows 8 --cols 8 --coupling 0.4 --seed 7 > ising.yaml
//	lbp stats -f ising.yaml
//	lbp run -f ising.yaml --mode max
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries state shared by all subcommands.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires the command tree around a. A preset a.logger is kept;
// otherwise a production logger is built before each command runs.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lbp",
		Short:         "Loopy belief propagation on discrete factor graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCmd(a), newStatsCmd(a), newGridCmd(a))

	return root
}
