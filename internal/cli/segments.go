package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-x12/internal/logger"
	"github.com/shapestone/shape-x12/pkg/x12"
)

func segmentsCmd(g *globalFlags) *cobra.Command {
	var tag string
	var count bool

	c := &cobra.Command{
		Use:   "segments FILE",
		Short: "Print the bare segments of an X12 file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupLogger(cmd, g.logDir, g.debug)()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := printSegments(cmd.OutOrStdout(), f, strings.ToUpper(tag), count)
			logger.L().Debug("segments.done", "file", args[0], "segments", n, "err", err)
			return err
		},
	}

	c.Flags().StringVarP(&tag, "tag", "t", "", "Only print segments with this tag")
	c.Flags().BoolVar(&count, "count", false, "Print the number of matching segments instead")
	return c
}

func printSegments(out io.Writer, r io.Reader, tag string, count bool) (int, error) {
	w := bufio.NewWriter(out)
	defer w.Flush()

	n := 0
	scanner := x12.NewScanner(r)
	for scanner.Scan() {
		seg := scanner.Segment()
		if tag != "" && seg.Tag() != tag {
			continue
		}
		n++
		if !count {
			fmt.Fprintln(w, seg.String())
		}
	}
	if count {
		fmt.Fprintln(w, n)
	}
	return n, scanner.Err()
}
