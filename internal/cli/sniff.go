package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-x12/pkg/x12"
)

func sniffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff FILE",
		Short: "Print the delimiters and version of the first interchange in an X12 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			delims, version, err := x12.SniffReader(bufio.NewReader(f))
			if err != nil {
				return err
			}
			printDelimiters(cmd.OutOrStdout(), delims, version)
			return nil
		},
	}
}

func printDelimiters(w io.Writer, d x12.Delimiters, version string) {
	fmt.Fprintf(w, "Version:    %s\n", version)
	fmt.Fprintf(w, "Segment:    %q\n", d.Segment)
	fmt.Fprintf(w, "Element:    %q\n", d.Element)
	fmt.Fprintf(w, "Component:  %q\n", d.Component)
	printOptional(w, "Repetition:", d.Repetition)
	printOptional(w, "Repeat:    ", d.Repeat)
}

func printOptional(w io.Writer, label string, r rune) {
	if r == 0 {
		fmt.Fprintln(w, label, "none")
		return
	}
	fmt.Fprintf(w, "%s %q\n", label, r)
}
