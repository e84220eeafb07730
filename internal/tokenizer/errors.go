package tokenizer

import (
	"errors"
	"fmt"
)

// ErrCorruption is matched by every CorruptionError via errors.Is.
var ErrCorruption = errors.New("x12: corrupt interchange")

// Phase identifies where in an interchange corruption was detected.
type Phase string

const (
	// PhaseHeader covers the fixed-width ISA header and its terminator.
	PhaseHeader Phase = "header"
	// PhaseDelimiters covers validation of the discovered delimiters.
	PhaseDelimiters Phase = "delimiters"
	// PhaseSegment covers body segments after the header.
	PhaseSegment Phase = "segment"
)

// CorruptionError reports malformed interchange data. The tokenizer never
// recovers from it; every later read returns the same error.
type CorruptionError struct {
	// Phase is where the corruption was found.
	Phase Phase
	// Offset is the number of characters consumed from the stream, NULs included.
	Offset int
	// Char is the offending character, 0 when the stream ended.
	Char rune
	// Reason describes the corruption.
	Reason string
}

// Error returns a formatted error message with phase and offset.
func (e *CorruptionError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("x12: corrupt %s at offset %d: %s (%q)", e.Phase, e.Offset, e.Reason, e.Char)
	}
	return fmt.Sprintf("x12: corrupt %s at offset %d: %s", e.Phase, e.Offset, e.Reason)
}

// Is reports whether target is ErrCorruption.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrCorruption
}
