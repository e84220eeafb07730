package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/elliotchance/orderedmap/v3"
)

// Summary accumulates the results of one run.
type Summary struct {
	RunID   string
	Profile string
	Output  string

	Files    int
	Segments int
	Rows     int
	Skipped  []string
	// Tags counts rows per segment tag across all files in first-seen order.
	Tags *orderedmap.OrderedMap[string, int]
}

// NewSummary creates an empty Summary.
func NewSummary(runID, profile string) *Summary {
	return &Summary{
		RunID:   runID,
		Profile: profile,
		Tags:    orderedmap.NewOrderedMap[string, int](),
	}
}

// Add records a flattened file.
func (s *Summary) Add(res FileResult) {
	s.Files++
	s.Segments += res.Segments
	s.Rows += res.Rows
	if res.Tags == nil {
		return
	}
	for tag, n := range res.Tags.AllFromFront() {
		cur, _ := s.Tags.Get(tag)
		s.Tags.Set(tag, cur+n)
	}
}

// Skip records a file whose rows were discarded.
func (s *Summary) Skip(name string) {
	s.Skipped = append(s.Skipped, name)
}

// LogValue implements slog.LogValuer.
func (s *Summary) LogValue() slog.Value {
	tags := make([]slog.Attr, 0, s.Tags.Len())
	for tag, n := range s.Tags.AllFromFront() {
		tags = append(tags, slog.Int(tag, n))
	}
	return slog.GroupValue(
		slog.String("profile", s.Profile),
		slog.String("output", s.Output),
		slog.Int("files", s.Files),
		slog.Int("skipped", len(s.Skipped)),
		slog.Int("segments", s.Segments),
		slog.Int("rows", s.Rows),
		slog.Attr{Key: "tags", Value: slog.GroupValue(tags...)},
	)
}

// Print writes a human readable summary.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Run ID:   %s\n", s.RunID)
	fmt.Fprintf(w, "Profile:  %s\n", s.Profile)
	fmt.Fprintf(w, "Output:   %s\n", s.Output)
	fmt.Fprintf(w, "Files:    %d (%d skipped)\n", s.Files, len(s.Skipped))
	fmt.Fprintf(w, "Segments: %d\n", s.Segments)
	fmt.Fprintf(w, "Rows:     %d\n", s.Rows)
	for _, name := range s.Skipped {
		fmt.Fprintf(w, "  skipped: %s\n", name)
	}
	if s.Tags.Len() == 0 {
		return
	}
	fmt.Fprintln(w, "Rows per segment:")
	for tag, n := range s.Tags.AllFromFront() {
		fmt.Fprintf(w, "  %-4s %d\n", tag, n)
	}
}
