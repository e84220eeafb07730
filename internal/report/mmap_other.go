//go:build !unix

package report

import (
	"bytes"
	"os"
)

// openInput reads an input file into memory on platforms without mmap.
func openInput(path string) (*bytes.Reader, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return bytes.NewReader(data), func() {}, nil
}
