package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
)

// Fixed positions inside the ISA header window (0-indexed).
const (
	// HeaderLength is the number of data characters in an ISA segment, terminator excluded.
	HeaderLength = 105

	elementOffset    = 3
	repeatOffset     = 82 // ISA11
	repetitionOffset = 83
	componentOffset  = 104
	versionStart     = 84
	versionEnd       = 89
)

// RepetitionVersion is the first ISA12 version that carries a repetition separator.
const RepetitionVersion = "00405"

// Delimiters holds the control characters discovered from an interchange header.
type Delimiters struct {
	// Segment terminates every segment. Default: '~'
	Segment rune
	// Element separates elements within a segment. Default: '*'
	Element rune
	// Component separates components of a composite element. Default: ':'
	Component rune
	// Repetition is the repetition delimiter slot, header column 83. It is
	// validated with the other delimiters and is 0 when the interchange
	// version predates repetition separators.
	Repetition rune
	// Repeat splits repeated occurrences of an element. It is read from ISA11
	// (column 82) without validation and is 0 when the version predates it or
	// ISA11 holds a letter, digit, space or another delimiter.
	Repeat rune
}

// DefaultDelimiters returns the delimiter set most 5010 interchanges use.
// Column 83 of such a header holds the element separator.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Segment:    '~',
		Element:    '*',
		Component:  ':',
		Repetition: '*',
		Repeat:     '^',
	}
}

// HasRepetition reports whether the repetition delimiter slot applies.
func (d Delimiters) HasRepetition() bool {
	return d.Repetition != 0
}

// HasRepeat reports whether repeated elements are split.
func (d Delimiters) HasRepeat() bool {
	return d.Repeat != 0
}

// String returns the delimiters in terminator, element, component, repetition order.
func (d Delimiters) String() string {
	var sb strings.Builder
	sb.WriteRune(d.Segment)
	sb.WriteRune(d.Element)
	sb.WriteRune(d.Component)
	if d.HasRepetition() {
		sb.WriteRune(d.Repetition)
	}
	return fmt.Sprintf("%q", sb.String())
}

// SupportsRepetition reports whether an ISA12 version carries a repetition separator.
// Versions compare lexicographically, as they are fixed-width digit strings.
func SupportsRepetition(version string) bool {
	return version >= RepetitionVersion
}

// delimiterSlot names one fixed header position that must hold a delimiter.
type delimiterSlot struct {
	name string
	char rune
}

// delimitersFromHeader extracts and validates the delimiters of a 105-character
// header window and its terminator.
func delimitersFromHeader(window []rune, terminator rune, version string) (Delimiters, error) {
	d := Delimiters{
		Segment:   terminator,
		Element:   window[elementOffset],
		Component: window[componentOffset],
	}

	slots := []delimiterSlot{
		{"segment terminator", d.Segment},
		{"element separator", d.Element},
		{"component separator", d.Component},
	}
	if SupportsRepetition(version) {
		d.Repetition = window[repetitionOffset]
		slots = append(slots, delimiterSlot{"repetition separator", d.Repetition})
		d.Repeat = repeatSeparator(window[repeatOffset], d)
	}

	for _, slot := range slots {
		if isAlphanumeric(slot.char) {
			return Delimiters{}, &invalidDelimiterError{slot: slot.name, char: slot.char}
		}
	}
	return d, nil
}

type invalidDelimiterError struct {
	slot string
	char rune
}

func (e *invalidDelimiterError) Error() string {
	return "invalid " + e.slot
}

// repeatSeparator returns ISA11 when it can split repeated elements, else 0.
func repeatSeparator(c rune, d Delimiters) rune {
	if isAlphanumeric(c) || c == ' ' || c == 0 {
		return 0
	}
	if c == d.Segment || c == d.Element || c == d.Component {
		return 0
	}
	return c
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// SegmentTag returns the text before the first element separator.
func SegmentTag(segment string, element rune) string {
	if i := strings.IndexRune(segment, element); i >= 0 {
		return segment[:i]
	}
	return segment
}
