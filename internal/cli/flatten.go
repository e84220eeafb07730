package cli

import (
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-x12/internal/config"
	"github.com/shapestone/shape-x12/internal/logger"
	"github.com/shapestone/shape-x12/internal/report"
)

func flattenCmd(g *globalFlags) *cobra.Command {
	var configPath string
	var o config.Overrides
	var maxSegmentSize int
	var quiet bool

	c := &cobra.Command{
		Use:   "flatten",
		Short: "Flatten matching X12 files into one delimited report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("max-segment-size") {
				o.MaxSegmentSize = &maxSegmentSize
			}
			o.LogDir = g.logDir
			o.Debug = g.debug

			cfg, err := config.Resolve(configPath, o)
			if err != nil {
				return err
			}

			defer setupLogger(cmd, cfg.LogDir, cfg.Debug)()
			log := logger.L()

			sum, err := report.Run(cmd.Context(), cfg.ReportOptions(logger.RunID()), log)
			if err != nil {
				log.Error("report.run.failed", "err", err)
				return err
			}
			if !quiet {
				sum.Print(cmd.OutOrStdout())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (optional)")
	c.Flags().StringVarP(&o.InputDir, "dir", "d", "", "Directory holding the X12 files (default: current directory)")
	c.Flags().StringVarP(&o.Pattern, "pattern", "p", "", "File glob (default: the profile's pattern)")
	c.Flags().StringVarP(&o.Output, "out", "o", "", "Report file (default: x12flat_<profile>.txt in the input directory)")
	c.Flags().StringVar(&o.Profile, "profile", "", "Report profile: 837|TA1 (default: 837)")
	c.Flags().StringVar(&o.OnBadFile, "on-bad-file", "", "Corrupt file handling: abort|skip (default: abort)")
	c.Flags().IntVar(&maxSegmentSize, "max-segment-size", 0, "Reject segments larger than this many bytes (0: no limit)")
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the run summary")
	return c
}
