package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// BadFileMode specifies how a run handles a corrupt input file.
type BadFileMode int

const (
	// BadFileAbort stops the run and leaves no output (default).
	BadFileAbort BadFileMode = iota
	// BadFileSkip logs the corruption, discards the file's rows and continues.
	BadFileSkip
)

// String returns the string representation of BadFileMode.
func (m BadFileMode) String() string {
	switch m {
	case BadFileAbort:
		return "abort"
	case BadFileSkip:
		return "skip"
	default:
		return fmt.Sprintf("BadFileMode(%d)", m)
	}
}

// ParseBadFileMode parses "abort" or "skip". An empty string is abort.
func ParseBadFileMode(s string) (BadFileMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return BadFileAbort, nil
	case "skip":
		return BadFileSkip, nil
	default:
		return BadFileAbort, fmt.Errorf("unknown bad file mode %q (expected abort|skip)", s)
	}
}

// ErrNoFiles is returned when no input file matches the pattern.
var ErrNoFiles = errors.New("no input files")

// Options configures a flatten run.
type Options struct {
	RunID    string
	InputDir string
	// Pattern overrides Profile.Pattern when set.
	Pattern   string
	Output    string
	Profile   Profile
	OnBadFile BadFileMode
	// MaxSegmentSize limits a single bare segment in bytes. 0 means no limit.
	MaxSegmentSize int
}

// FileError reports a file that could not be flattened.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Run flattens every matching file in opts.InputDir into opts.Output.
//
// Files are processed in name order. The output is committed only when the
// run finishes; on error or cancellation the previous output, if any, is left
// untouched.
func Run(ctx context.Context, opts Options, log *slog.Logger) (*Summary, error) {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = opts.Profile.Pattern
	}

	sum := NewSummary(opts.RunID, opts.Profile.Name)
	sum.Output = opts.Output

	files, err := Discover(opts.InputDir, pattern)
	if err != nil {
		return sum, err
	}
	if len(files) == 0 {
		return sum, fmt.Errorf("%w: %s in %s", ErrNoFiles, pattern, opts.InputDir)
	}

	log.Info("report.run.start",
		"profile", opts.Profile.Name,
		"dir", opts.InputDir,
		"pattern", pattern,
		"files", len(files),
		"on_bad_file", opts.OnBadFile.String(),
	)
	started := time.Now()

	out, err := CreateOutput(opts.Output)
	if err != nil {
		return sum, err
	}
	defer out.Close()

	if opts.Profile.Header {
		if _, err := fmt.Fprintln(out, opts.Profile.HeaderRow()); err != nil {
			return sum, err
		}
	}

	flattener := NewFlattener(opts.Profile).SetMaxSegmentSize(opts.MaxSegmentSize)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res, err := flattenFile(flattener, path, out, log)
		if err == nil {
			sum.Add(res)
			continue
		}

		ferr := &FileError{Path: path, Err: err}
		if opts.OnBadFile != BadFileSkip {
			log.Error("report.file.failed", "file", path, "err", err)
			return sum, ferr
		}
		log.Warn("report.file.skipped", "file", path, "err", err)
		sum.Skip(path)
	}

	if err := out.Commit(); err != nil {
		return sum, err
	}

	log.Info("report.run.done", "summary", sum, "duration_ms", time.Since(started).Milliseconds())
	return sum, nil
}

func flattenFile(f *Flattener, path string, out *Output, log *slog.Logger) (FileResult, error) {
	log.Debug("report.file.start", "file", path)

	input, release, err := openInput(path)
	if err != nil {
		return FileResult{}, err
	}
	defer release()

	res, err := f.Flatten(filepath.Base(path), input, out)
	if err != nil {
		return res, err
	}

	log.Debug("report.file.done", "file", path, "segments", res.Segments, "rows", res.Rows)
	return res, nil
}
