package x12

import (
	"strings"

	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// Segment represents a single bare X12 segment with typed element access.
//
// Element 0 is the segment tag, so element indexes match the usual X12
// reference numbers: for an ISA segment, Element(13) is ISA13.
//
//	seg := scanner.Segment()
//	icn, _ := seg.Element(13)
//	codes := seg.Components(1) // HI01-1, HI01-2
type Segment struct {
	raw      string
	delims   Delimiters
	elements []string
}

// NewSegment splits a bare segment (terminator stripped) with the given delimiters.
func NewSegment(raw string, delims Delimiters) Segment {
	return Segment{
		raw:      raw,
		delims:   delims,
		elements: strings.Split(raw, string(delims.Element)),
	}
}

// Tag returns the segment identifier, such as "ISA" or "NM1".
func (s Segment) Tag() string {
	if len(s.elements) == 0 {
		return ""
	}
	return s.elements[0]
}

// Elements returns a copy of all elements, the tag included.
func (s Segment) Elements() []string {
	out := make([]string, len(s.elements))
	copy(out, s.elements)
	return out
}

// Element returns the element at index i.
// Returns ("", false) if the segment has no such element.
func (s Segment) Element(i int) (string, bool) {
	if i < 0 || i >= len(s.elements) {
		return "", false
	}
	return s.elements[i], true
}

// Components splits element i on the component separator.
// ISA elements are never split. Returns nil if the element is absent.
func (s Segment) Components(i int) []string {
	el, ok := s.Element(i)
	if !ok {
		return nil
	}
	if s.Tag() == tokenizer.TagISA || s.delims.Component == 0 {
		return []string{el}
	}
	return strings.Split(el, string(s.delims.Component))
}

// Repeats splits element i on the ISA11 repeat separator.
// Without one (versions before 00405, or an ISA11 that is not a delimiter)
// the element is returned whole. Returns nil if the element is absent.
func (s Segment) Repeats(i int) []string {
	el, ok := s.Element(i)
	if !ok {
		return nil
	}
	if s.Tag() == tokenizer.TagISA || !s.delims.HasRepeat() {
		return []string{el}
	}
	return strings.Split(el, string(s.delims.Repeat))
}

// Len returns the number of elements, the tag included.
func (s Segment) Len() int {
	return len(s.elements)
}

// Delimiters returns the delimiters of the interchange the segment belongs to.
func (s Segment) Delimiters() Delimiters {
	return s.delims
}

// String returns the bare segment text.
func (s Segment) String() string {
	return s.raw
}
