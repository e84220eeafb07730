package tokenizer

import (
	"bufio"
	"io"
)

const readerBufferSize = 64 * 1024

// charSource is the character-level view a SegmentReader consumes.
// shape-core streams satisfy it, as does readerSource.
type charSource interface {
	PeekChar() (rune, bool)
	NextChar() (rune, bool)
}

// readerSource decodes UTF-8 from an io.Reader one rune at a time.
//
// Undecodable bytes come back as utf8.RuneError so the segment reader can
// report them. Runes split across reads are reassembled by bufio.
type readerSource struct {
	r      *bufio.Reader
	peeked rune
	has    bool
	err    error
}

func newReaderSource(r io.Reader) *readerSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, readerBufferSize)
	}
	return &readerSource{r: br}
}

func (s *readerSource) PeekChar() (rune, bool) {
	if !s.has {
		c, ok := s.read()
		if !ok {
			return 0, false
		}
		s.peeked, s.has = c, true
	}
	return s.peeked, true
}

func (s *readerSource) NextChar() (rune, bool) {
	if s.has {
		s.has = false
		return s.peeked, true
	}
	return s.read()
}

func (s *readerSource) read() (rune, bool) {
	if s.err != nil {
		return 0, false
	}
	c, _, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, false
	}
	return c, true
}

// Err returns the read error that ended the input, or nil at a clean io.EOF.
func (s *readerSource) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
