package report

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Output is a report file written through a temporary file in the same
// directory. The final path only ever holds a complete report: Commit renames
// the temporary file into place, and Close removes it if Commit never ran.
type Output struct {
	path      string
	tmp       *os.File
	committed bool
	closed    bool
}

// CreateOutput opens a temporary file next to path.
func CreateOutput(path string) (*Output, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp in %s: %w", dir, err)
	}
	return &Output{path: path, tmp: tmp}, nil
}

// Write appends to the temporary file.
func (o *Output) Write(p []byte) (int, error) {
	if o.closed {
		return 0, fmt.Errorf("write %s: output already closed", o.path)
	}
	return o.tmp.Write(p)
}

// Path returns the final path of the report.
func (o *Output) Path() string {
	return o.path
}

// Commit fsyncs the temporary file, renames it to the final path and fsyncs
// the parent directory.
func (o *Output) Commit() error {
	if o.closed {
		return fmt.Errorf("commit %s: output already closed", o.path)
	}
	o.closed = true

	tmpPath := o.tmp.Name()
	if err := o.tmp.Sync(); err != nil {
		o.tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("commit fsync: %w", err)
	}
	if err := o.tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit close: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit chmod: %w", err)
	}
	if err := os.Rename(tmpPath, o.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit rename %s to %s: %w", tmpPath, o.path, err)
	}
	o.committed = true

	if err := fsyncDir(filepath.Dir(o.path)); err != nil {
		return fmt.Errorf("commit fsync parent dir: %w", err)
	}
	return nil
}

// Close discards the temporary file unless Commit succeeded. It is safe to
// call after Commit and more than once.
func (o *Output) Close() error {
	if o.committed {
		return nil
	}
	tmpPath := o.tmp.Name()
	var cerr error
	if !o.closed {
		o.closed = true
		cerr = o.tmp.Close()
	}
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return cerr
}

// fsyncDir makes directory entries (file names) durable.
func fsyncDir(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fsync dir open %s: %w", path, err)
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return fmt.Errorf("fsync dir sync %s: %w", path, err)
	}
	return d.Close()
}
