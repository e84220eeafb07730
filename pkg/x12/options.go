// Package x12 provides configurable options for X12 parsing.
package x12

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-x12/internal/parser"
)

// ReaderOptions configures X12 parsing behavior.
type ReaderOptions struct {
	// SplitComponents parses composite and repeated elements into nested arrays.
	// When false every element is a single literal.
	// Default: true
	SplitComponents bool

	// MaxSegmentSize is the maximum allowed size for a single bare segment in bytes.
	// 0 means no limit.
	// Default: 0
	MaxSegmentSize int
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		SplitComponents: true,
		MaxSegmentSize:  0,
	}
}

// Validate checks if the options are valid.
// Returns an *OptionsError if the options are invalid.
func (o ReaderOptions) Validate() error {
	if o.MaxSegmentSize < 0 {
		return &OptionsError{Field: "MaxSegmentSize", Message: "must not be negative"}
	}
	return nil
}

func (o ReaderOptions) parserOptions() parser.Options {
	return parser.Options{
		SplitComponents: o.SplitComponents,
		MaxSegmentSize:  o.MaxSegmentSize,
	}
}

// ErrSegmentTooLarge indicates a segment exceeded ReaderOptions.MaxSegmentSize.
var ErrSegmentTooLarge = parser.ErrSegmentTooLarge

// ParseWithOptions parses X12 into an AST from a string with custom options.
//
// Example:
//
//	opts := x12.DefaultReaderOptions()
//	opts.SplitComponents = false // keep HI01 as "ABK:8901"
//	node, err := x12.ParseWithOptions(input, opts)
func ParseWithOptions(input string, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := parser.NewParserWithOptions(input, opts.parserOptions())
	node, err := p.Parse()
	return node, toParseError(err)
}

// ParseReaderWithOptions parses X12 into an AST from an io.Reader with custom options.
//
// Example:
//
//	opts := x12.DefaultReaderOptions()
//	opts.MaxSegmentSize = 4096
//	node, err := x12.ParseReaderWithOptions(file, opts)
func ParseReaderWithOptions(reader io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := parser.NewParserFromReaderWithOptions(reader, opts.parserOptions())
	node, err := p.Parse()
	return node, toParseError(err)
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "x12: invalid " + e.Field + ": " + e.Message
}
