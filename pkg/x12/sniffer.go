// Package x12 provides delimiter and version detection from interchange headers.
package x12

import (
	"bufio"
	"errors"
	"io"

	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// sniffLimit bounds how much input SniffReader inspects. It leaves room for a
// header hard-wrapped at short line lengths.
const sniffLimit = 1024

// Sniff detects the delimiters and ISA12 version of the first interchange in sample.
//
// The sample must hold at least the full ISA header and its terminator.
// Returns ErrNoInterchange if the sample is empty or does not start with ISA.
//
// Example:
//
//	delims, version, err := x12.Sniff(sample)
//	fmt.Printf("terminator %q, version %s\n", delims.Segment, version)
func Sniff(sample string) (Delimiters, string, error) {
	r := tokenizer.NewSegmentReaderFromString(sample)
	res := r.Next()
	switch res.Kind {
	case tokenizer.KindExhausted:
		return Delimiters{}, "", ErrNoInterchange
	case tokenizer.KindCorrupt:
		return Delimiters{}, "", &ParseError{Segment: 1, Offset: r.Offset(), Err: res.Err}
	}

	delims := r.Delimiters()
	if tokenizer.SegmentTag(res.Segment, delims.Element) != tokenizer.TagISA {
		return Delimiters{}, "", ErrNoInterchange
	}
	return delims, r.Version(), nil
}

// SniffReader detects the delimiters and version of the first interchange read from reader.
//
// When reader is a *bufio.Reader the sample is peeked, so nothing is consumed
// and the caller can go on to parse from the same reader. Any other reader is
// consumed by up to 1 KiB.
func SniffReader(reader io.Reader) (Delimiters, string, error) {
	var sample []byte
	if br, ok := reader.(*bufio.Reader); ok {
		peeked, err := br.Peek(sniffLimit)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return Delimiters{}, "", err
		}
		sample = peeked
	} else {
		data, err := io.ReadAll(io.LimitReader(reader, sniffLimit))
		if err != nil {
			return Delimiters{}, "", err
		}
		sample = data
	}
	return Sniff(string(sample))
}
