// Package tokenizer provides X12 segment and element tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for X12 element-level tokens.
// These correspond to the terminals of a single bare segment once the
// interchange delimiters are known.
//
// Note: The segment terminator never appears here. Segments are framed by
// SegmentReader before element tokenization starts.
const (
	// Structural tokens
	TokenElementSep    = "ElementSep"    // element separator (usually *)
	TokenComponentSep  = "ComponentSep"  // component (sub-element) separator (usually :)
	TokenRepetitionSep = "RepetitionSep" // repeat separator (ISA11), version 00405 and later (usually ^)

	// Element content token
	TokenData = "Data" // run of non-delimiter characters
)

// Envelope segment tags.
const (
	TagISA = "ISA" // interchange header
	TagIEA = "IEA" // interchange trailer
	TagGS  = "GS"  // functional group header
	TagGE  = "GE"  // functional group trailer
	TagST  = "ST"  // transaction set header
	TagSE  = "SE"  // transaction set trailer
	TagTA1 = "TA1" // interchange acknowledgment
)
