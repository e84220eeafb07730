// Package x12 provides X12 EDI parsing and AST generation.
//
// This package tokenizes ASC X12 interchanges into segments. Delimiters are
// discovered from each ISA interchange header, so a single stream may carry
// several interchanges that use different delimiter sets. Parsed data is
// represented with Shape's unified AST.
//
// Grammar:
//
//	Interchanges = { Segment } ;
//	Segment      = Tag { ElementSep Element } ;
//	Element      = Repeat { RepetitionSep Repeat } ;
//	Repeat       = Component { ComponentSep Component } ;
//
// This parser uses LL(1) recursive descent parsing (see Shape ADR 0004).
// Each production rule in the grammar corresponds to a parse function in internal/parser/parser.go.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each function call creates its own parser instance with no shared mutable state.
// A Scanner is not safe for concurrent use; give each goroutine its own.
//
// # Parsing APIs
//
// The package provides three ways to read X12:
//
//   - Parse(string) - Parses a complete document held in memory into an AST
//   - ParseReader(io.Reader) - Parses from any io.Reader into an AST
//   - NewScanner(io.Reader) - Streams segments one at a time without building an AST
//
// UnmarshalSegment and MarshalSegment map single segments to and from structs
// tagged with element positions.
//
// # Example usage with Scanner:
//
//	file, err := os.Open("claims.837")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	scanner := x12.NewScanner(file)
//	for scanner.Scan() {
//	    seg := scanner.Segment()
//	    fmt.Println(seg.Tag(), seg.Len())
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle corruption
//	}
package x12

import (
	"errors"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-x12/internal/parser"
	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// Delimiters is the set of delimiters discovered from an interchange header.
type Delimiters = tokenizer.Delimiters

// DefaultDelimiters returns the conventional delimiters: ~ * : with ^ as the repeat separator
func DefaultDelimiters() Delimiters {
	return tokenizer.DefaultDelimiters()
}

// Parse parses X12 into an AST from a string.
//
// Returns an ast.ArrayDataNode representing the parsed interchanges:
//   - *ast.ArrayDataNode for the stream (array of segments)
//   - Each segment is an *ast.ArrayDataNode whose first element is the tag
//   - A simple element is an *ast.LiteralNode containing a string value
//   - A composite element is an *ast.ArrayDataNode of component literals
//   - A repeated element is an *ast.ArrayDataNode of composites
//
// ISA elements are never split, since the header itself defines the delimiters.
//
// Example:
//
//	node, err := x12.Parse(isa + "~GS*HC*A*B~IEA*1*000000001~")
//	segments := node.(*ast.ArrayDataNode).Elements()
func Parse(input string) (ast.SchemaNode, error) {
	p := parser.NewParser(input)
	node, err := p.Parse()
	return node, toParseError(err)
}

// ParseReader parses X12 into an AST from an io.Reader.
//
// The input is read through a buffered stream, but the resulting AST holds every
// segment. Bytes that are not valid UTF-8 are corruption. For large files use
// NewScanner instead.
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	p := parser.NewParserFromReader(reader)
	node, err := p.Parse()
	return node, toParseError(err)
}

// Format returns the format identifier for this parser.
// Returns "X12" to identify this as the X12 EDI format parser.
func Format() string {
	return "X12"
}

// Validate checks if the input string is a well-formed sequence of X12 interchanges.
//
// Validation frames segments without building an AST. It detects corrupt
// headers, invalid delimiters, invalid characters and truncated interchanges.
// It does not check segment grammar against any implementation guide.
//
//	if err := x12.Validate(input); err != nil {
//	    fmt.Println("Invalid X12:", err)
//	}
func Validate(input string) error {
	return validate(tokenizer.NewSegmentReaderFromString(input))
}

// ValidateReader checks if the input from an io.Reader is well-formed X12.
// The input is consumed segment by segment with constant memory.
func ValidateReader(reader io.Reader) error {
	return validate(tokenizer.NewSegmentReader(reader))
}

func validate(r *tokenizer.SegmentReader) error {
	n := 0
	for {
		res := r.Next()
		switch res.Kind {
		case tokenizer.KindExhausted:
			return nil
		case tokenizer.KindCorrupt:
			return &ParseError{Segment: n + 1, Offset: r.Offset(), Err: res.Err}
		}
		n++
	}
}

// toParseError converts an internal parser error into the public error type.
func toParseError(err error) error {
	if err == nil {
		return nil
	}
	var se *parser.SegmentError
	if errors.As(err, &se) {
		return &ParseError{Segment: se.Segment, Offset: se.Offset, Err: se.Err}
	}
	return err
}
