//go:build unix

package report

import (
	"bytes"
	"fmt"
	"os"
	"syscall"
)

// openInput maps an input file read-only and returns a reader over it.
// release unmaps the file; the reader must not be used afterwards.
func openInput(path string) (*bytes.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat input: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		return bytes.NewReader(nil), func() {}, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap input: %w", err)
	}

	release := func() { _ = syscall.Munmap(data) }
	return bytes.NewReader(data), release, nil
}
