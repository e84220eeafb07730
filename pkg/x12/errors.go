package x12

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	// Segment is the 1-indexed segment being read when the error occurred.
	Segment int
	// Offset is the number of characters consumed from the input.
	Offset int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in segment %d (offset %d): %v", e.Segment, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// CorruptionError describes malformed interchange data.
// Use errors.As to inspect the phase and offending character.
type CorruptionError = tokenizer.CorruptionError

// Phase names the part of an interchange being read when corruption was found.
type Phase = tokenizer.Phase

// Corruption phases.
const (
	PhaseHeader     = tokenizer.PhaseHeader
	PhaseDelimiters = tokenizer.PhaseDelimiters
	PhaseSegment    = tokenizer.PhaseSegment
)

// Common parsing errors
var (
	// ErrCorruption matches every CorruptionError via errors.Is.
	ErrCorruption = tokenizer.ErrCorruption

	// ErrNoInterchange indicates a sample that does not start with an ISA header.
	ErrNoInterchange = errors.New("x12: no interchange header")

	// ErrElementCount indicates a segment has fewer elements than a typed mapping requires.
	ErrElementCount = errors.New("x12: wrong number of elements")

	// ErrTagMismatch indicates a segment was mapped onto a struct for another tag.
	ErrTagMismatch = errors.New("x12: segment tag mismatch")

	// ErrUntagged indicates a struct passed to MarshalSegment does not implement Tagged.
	ErrUntagged = errors.New("x12: struct has no segment tag")

	// ErrDelimiterInValue indicates an element value contains one of the delimiters.
	ErrDelimiterInValue = errors.New("x12: value contains a delimiter")
)
