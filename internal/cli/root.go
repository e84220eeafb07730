package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-x12/internal/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug  bool
	logDir string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "x12flat",
		Short:        "Tokenize X12 interchanges and flatten them into delimited reports",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&g.logDir, "log-dir", "", "write logs to <dir>/"+logger.FileName+" instead of stderr")

	cmd.AddCommand(flattenCmd(g))
	cmd.AddCommand(segmentsCmd(g))
	cmd.AddCommand(sniffCmd())
	return cmd
}

// setupLogger initializes logging for a command and returns its cleanup.
// A logger that cannot be set up is reported on stderr and the command runs
// without logs.
func setupLogger(cmd *cobra.Command, dir string, debug bool) func() {
	cleanup, err := logger.Setup(logger.Config{Dir: dir, Debug: debug})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		return func() {}
	}
	return func() { _ = cleanup() }
}
