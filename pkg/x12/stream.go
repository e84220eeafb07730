package x12

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// Scanner provides a streaming interface for reading X12 segments one at a time.
// Segments are framed as the input is read, so memory use does not grow with
// the size of the file.
//
// Example usage:
//
//	file, _ := os.Open("claims.837")
//	defer file.Close()
//
//	scanner := x12.NewScanner(file)
//	for scanner.Scan() {
//	    seg := scanner.Segment()
//	    if seg.Tag() == "CLM" {
//	        id, _ := seg.Element(1)
//	        fmt.Println(id)
//	    }
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader         *tokenizer.SegmentReader
	maxSegmentSize int
	segment        Segment
	count          int
	err            error
	done           bool
}

// NewScanner creates a new Scanner that reads X12 from the given io.Reader.
//
// Example:
//
//	scanner := x12.NewScanner(reader)
func NewScanner(reader io.Reader) *Scanner {
	return &Scanner{
		reader: tokenizer.NewSegmentReader(reader),
	}
}

// NewScannerFromString creates a new Scanner over in-memory input.
func NewScannerFromString(input string) *Scanner {
	return &Scanner{
		reader: tokenizer.NewSegmentReaderFromString(input),
	}
}

// SetMaxSegmentSize limits the size of a single bare segment in bytes.
// 0 means no limit. Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := x12.NewScanner(reader).SetMaxSegmentSize(4096)
func (s *Scanner) SetMaxSegmentSize(n int) *Scanner {
	s.maxSegmentSize = n
	return s
}

// Scan advances the scanner to the next segment.
// It returns false when the input is exhausted or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	res := s.reader.Next()
	switch res.Kind {
	case tokenizer.KindExhausted:
		s.done = true
		return false
	case tokenizer.KindCorrupt:
		s.fail(res.Err)
		return false
	}

	s.count++
	if s.maxSegmentSize > 0 && len(res.Segment) > s.maxSegmentSize {
		s.fail(fmt.Errorf("%w (%d > %d)", ErrSegmentTooLarge, len(res.Segment), s.maxSegmentSize))
		return false
	}

	s.segment = NewSegment(res.Segment, s.reader.Delimiters())
	return true
}

func (s *Scanner) fail(err error) {
	segment := s.count
	if s.reader.State() == tokenizer.StateFailed {
		segment++
	}
	s.err = &ParseError{Segment: segment, Offset: s.reader.Offset(), Err: err}
	s.done = true
}

// Segment returns the current segment.
// This should only be called after Scan() returns true.
func (s *Scanner) Segment() Segment {
	return s.segment
}

// Text returns the current bare segment as a string.
func (s *Scanner) Text() string {
	return s.segment.String()
}

// Count returns the number of segments scanned so far.
func (s *Scanner) Count() int {
	return s.count
}

// Delimiters returns the delimiters of the current interchange.
func (s *Scanner) Delimiters() Delimiters {
	return s.reader.Delimiters()
}

// Version returns the ISA12 version of the current interchange.
func (s *Scanner) Version() string {
	return s.reader.Version()
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or the input was exhausted cleanly.
func (s *Scanner) Err() error {
	return s.err
}
