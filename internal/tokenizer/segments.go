package tokenizer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// State is the envelope state of a SegmentReader.
type State int

const (
	// StateAwaitingEnvelope expects an ISA header next. Initial state.
	StateAwaitingEnvelope State = iota
	// StateInBody reads body segments with the current delimiters.
	StateInBody
	// StateFailed is terminal; the reader returns its corruption forever.
	StateFailed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateAwaitingEnvelope:
		return "awaiting-envelope"
	case StateInBody:
		return "in-body"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Kind classifies a Result.
type Kind int

const (
	// KindSegment carries a bare segment.
	KindSegment Kind = iota
	// KindExhausted means the stream ended cleanly between interchanges.
	KindExhausted
	// KindCorrupt carries a *CorruptionError, or the error that ended reading
	// the input.
	KindCorrupt
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindExhausted:
		return "exhausted"
	case KindCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Result is one pull from a SegmentReader.
type Result struct {
	Kind Kind
	// Segment is the bare segment, terminator stripped. Set for KindSegment.
	Segment string
	// Err is the corruption or read error. Set for KindCorrupt.
	Err error
}

// SegmentReader splits an X12 character stream into bare segments.
//
// Delimiters are discovered from each ISA header, so several interchanges with
// different delimiter sets may follow each other in one stream. The reader is
// forward-only and not safe for concurrent use.
//
// Example usage:
//
//	r := tokenizer.NewSegmentReader(file)
//	for {
//	    res := r.Next()
//	    if res.Kind != tokenizer.KindSegment {
//	        break
//	    }
//	    fmt.Println(res.Segment)
//	}
type SegmentReader struct {
	stream  charSource
	source  *readerSource
	state   State
	delims  Delimiters
	version string
	offset  int
	err     error
	buf     []rune
}

// NewSegmentReader creates a SegmentReader over an io.Reader.
// Input is decoded as UTF-8; an undecodable byte is corruption, and an error
// from the reader other than io.EOF ends the stream with that error.
func NewSegmentReader(reader io.Reader) *SegmentReader {
	src := newReaderSource(reader)
	r := newSegmentReader(src)
	r.source = src
	return r
}

// NewSegmentReaderFromString creates a SegmentReader over in-memory input.
func NewSegmentReaderFromString(input string) *SegmentReader {
	return NewSegmentReaderFromStream(tokenizer.NewStream(input))
}

// NewSegmentReaderFromStream creates a SegmentReader over a pre-configured stream.
func NewSegmentReaderFromStream(stream tokenizer.Stream) *SegmentReader {
	return newSegmentReader(stream)
}

func newSegmentReader(stream charSource) *SegmentReader {
	return &SegmentReader{
		stream: stream,
		state:  StateAwaitingEnvelope,
		buf:    make([]rune, 0, HeaderLength+1),
	}
}

// Next returns the next bare segment, clean exhaustion, or corruption.
// Once corruption or a read error is returned, every later call returns it again.
func (r *SegmentReader) Next() Result {
	var (
		segment string
		ok      bool
		err     error
	)

	switch r.state {
	case StateFailed:
		return Result{Kind: KindCorrupt, Err: r.err}
	case StateAwaitingEnvelope:
		segment, ok, err = r.readHeader()
	default:
		segment, err = r.readSegment()
		ok = true
	}

	if r.source != nil {
		if rerr := r.source.Err(); rerr != nil {
			err = fmt.Errorf("x12: read input at offset %d: %w", r.offset, rerr)
		}
	}
	if err != nil {
		r.state = StateFailed
		r.err = err
		return Result{Kind: KindCorrupt, Err: err}
	}
	if !ok {
		return Result{Kind: KindExhausted}
	}
	return Result{Kind: KindSegment, Segment: segment}
}

// ReadSegment returns the next bare segment, or io.EOF once the stream is exhausted.
func (r *SegmentReader) ReadSegment() (string, error) {
	res := r.Next()
	switch res.Kind {
	case KindSegment:
		return res.Segment, nil
	case KindExhausted:
		return "", io.EOF
	default:
		return "", res.Err
	}
}

// Delimiters returns the delimiters of the current interchange.
// The zero value is returned before the first header is read.
func (r *SegmentReader) Delimiters() Delimiters {
	return r.delims
}

// Version returns the ISA12 version of the current interchange.
func (r *SegmentReader) Version() string {
	return r.version
}

// State returns the envelope state.
func (r *SegmentReader) State() State {
	return r.state
}

// Offset returns the number of characters consumed so far.
func (r *SegmentReader) Offset() int {
	return r.offset
}

// readSegment reads one body segment with the current delimiters.
//
// Line breaks that are not the terminator are formatting and are dropped,
// as are NULs.
func (r *SegmentReader) readSegment() (string, error) {
	if isLineBreak(r.delims.Segment) {
		return r.readLine()
	}

	seg := r.buf[:0]
	for {
		c, ok := r.next()
		if !ok {
			return "", r.corrupt(PhaseSegment, 0, "stream ended unexpectedly inside segment")
		}
		switch {
		case c == 0:
			continue
		case c == r.delims.Segment:
			return r.finish(seg), nil
		case isLineBreak(c):
			continue
		case c == utf8.RuneError:
			return "", r.corrupt(PhaseSegment, c, "invalid character in segment data")
		}
		seg = append(seg, c)
	}
}

// readLine reads one body segment when the terminator is a line break.
// CR, LF and CRLF all end a line; empty lines are skipped. A final line
// without a trailing break is still a segment.
func (r *SegmentReader) readLine() (string, error) {
	line := r.buf[:0]
	for {
		c, ok := r.next()
		if !ok {
			if len(line) == 0 {
				return "", r.corrupt(PhaseSegment, 0, "stream ended unexpectedly inside segment")
			}
			return r.finish(line), nil
		}
		switch {
		case c == 0:
			continue
		case isLineBreak(c):
			if len(line) == 0 {
				continue
			}
			return r.finish(line), nil
		case c == utf8.RuneError:
			return "", r.corrupt(PhaseSegment, c, "invalid character in segment data")
		}
		line = append(line, c)
	}
}

// finish converts an accumulated segment and closes the interchange on IEA.
func (r *SegmentReader) finish(seg []rune) string {
	s := string(seg)
	r.buf = seg[:0]
	if SegmentTag(s, r.delims.Element) == TagIEA {
		r.state = StateAwaitingEnvelope
	}
	return s
}

// next consumes one character and counts it.
func (r *SegmentReader) next() (rune, bool) {
	c, ok := r.stream.NextChar()
	if ok {
		r.offset++
	}
	return c, ok
}

func (r *SegmentReader) corrupt(phase Phase, c rune, reason string) error {
	return &CorruptionError{
		Phase:  phase,
		Offset: r.offset,
		Char:   c,
		Reason: reason,
	}
}
