// Package parser implements LL(1) recursive descent parsing for X12 segments.
// Each production rule in the grammar below corresponds to a parse function.
//
// Grammar:
//
//	Interchanges = { Segment } ;
//	Segment      = Tag { ElementSep Element } ;
//	Element      = Repeat { RepetitionSep Repeat } ;
//	Repeat       = Component { ComponentSep Component } ;
//	Component    = [ Data ] ;
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// Options configures the parser behavior.
type Options struct {
	// SplitComponents parses composite and repeated elements into nested arrays.
	// When false every element is a single literal. Default: true
	SplitComponents bool
	// MaxSegmentSize is the maximum allowed size of a bare segment in bytes. 0 means no limit.
	MaxSegmentSize int
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		SplitComponents: true,
		MaxSegmentSize:  0,
	}
}

// ErrSegmentTooLarge indicates a segment exceeded Options.MaxSegmentSize.
var ErrSegmentTooLarge = errors.New("segment exceeds maximum size")

// SegmentError reports a failure while parsing the n-th segment (1-indexed).
type SegmentError struct {
	Segment int
	Offset  int
	Err     error
}

// Error returns a formatted error message with the segment number.
func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d: %v", e.Segment, e.Err)
}

// Unwrap returns the underlying error.
func (e *SegmentError) Unwrap() error {
	return e.Err
}

// Parser implements LL(1) recursive descent parsing for X12.
// Segments are framed by a tokenizer.SegmentReader; each bare segment is then
// tokenized with the delimiters of its interchange, with single token lookahead.
type Parser struct {
	segments   *tokenizer.SegmentReader
	tokenizer  *shapetokenizer.Tokenizer
	current    *shapetokenizer.Token
	hasToken   bool
	opts       Options
	segmentNum int
}

// NewParser creates a new X12 parser for the given input string.
// For parsing from io.Reader, use NewParserFromReader instead.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a new X12 parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	return newParserWithStreamAndOptions(shapetokenizer.NewStream(input), opts)
}

// NewParserFromReader creates a new X12 parser that reads from an io.Reader.
// Invalid UTF-8 in the input is reported as corruption.
func NewParserFromReader(reader io.Reader) *Parser {
	return NewParserFromReaderWithOptions(reader, DefaultOptions())
}

// NewParserFromReaderWithOptions creates a new X12 parser from an io.Reader with custom options.
func NewParserFromReaderWithOptions(reader io.Reader, opts Options) *Parser {
	return &Parser{
		segments: tokenizer.NewSegmentReader(reader),
		opts:     opts,
	}
}

// NewParserFromStream creates a new X12 parser using a pre-configured stream.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	return NewParserFromStreamWithOptions(stream, DefaultOptions())
}

// NewParserFromStreamWithOptions creates a new X12 parser from a stream with custom options.
func NewParserFromStreamWithOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	return newParserWithStreamAndOptions(stream, opts)
}

func newParserWithStreamAndOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	return &Parser{
		segments: tokenizer.NewSegmentReaderFromStream(stream),
		opts:     opts,
	}
}

// Parse parses the input and returns an AST representing every segment of
// every interchange in the stream.
//
// Grammar:
//
//	Interchanges = { Segment } ;
//
// Returns *ast.ArrayDataNode - an array of segments, where each segment is an
// ArrayDataNode of elements and element 0 is the segment tag.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	segments := make([]ast.SchemaNode, 0, 16)

	for {
		res := p.segments.Next()
		switch res.Kind {
		case tokenizer.KindExhausted:
			return ast.NewArrayDataNode(segments, ast.ZeroPosition()), nil
		case tokenizer.KindCorrupt:
			return nil, p.errorf(p.segmentNum+1, res.Err)
		}

		p.segmentNum++
		if p.opts.MaxSegmentSize > 0 && len(res.Segment) > p.opts.MaxSegmentSize {
			return nil, p.errorf(p.segmentNum, fmt.Errorf("%w (%d > %d)",
				ErrSegmentTooLarge, len(res.Segment), p.opts.MaxSegmentSize))
		}

		segment, err := p.parseSegment(res.Segment)
		if err != nil {
			return nil, p.errorf(p.segmentNum, err)
		}
		segments = append(segments, segment)
	}
}

// Delimiters returns the delimiters of the interchange parsed last.
func (p *Parser) Delimiters() tokenizer.Delimiters {
	return p.segments.Delimiters()
}

func (p *Parser) errorf(segment int, err error) error {
	return &SegmentError{Segment: segment, Offset: p.segments.Offset(), Err: err}
}

// parseSegment parses a single bare segment.
//
// Grammar:
//
//	Segment = Tag { ElementSep Element } ;
//
// The ISA header defines the delimiters, so its elements are never split.
func (p *Parser) parseSegment(text string) (*ast.ArrayDataNode, error) {
	tok := tokenizer.NewElementTokenizer(p.segments.Delimiters())
	tok.Initialize(text)
	p.tokenizer = &tok
	p.advance() // Load first token

	startPos := p.position()
	tag := p.parseLiteral()
	elements := make([]ast.SchemaNode, 0, 16)
	elements = append(elements, tag)

	tagName, _ := tag.Value().(string)
	split := p.opts.SplitComponents && tagName != tokenizer.TagISA
	for p.peek() != nil && p.peek().Kind() == tokenizer.TokenElementSep {
		p.advance() // consume element separator

		var element ast.SchemaNode
		if split {
			element = p.parseElement()
		} else {
			element = p.parseLiteral()
		}
		elements = append(elements, element)
	}

	if p.hasToken {
		return nil, fmt.Errorf("unexpected token %s at %s", p.peek().Kind(), p.positionStr())
	}
	return ast.NewArrayDataNode(elements, startPos), nil
}

// parseElement parses a possibly repeated element.
//
// Grammar:
//
//	Element = Repeat { RepetitionSep Repeat } ;
//
// Returns a LiteralNode for a simple element, an ArrayDataNode of literals for
// a composite, and an ArrayDataNode of ArrayDataNodes for a repeated element.
func (p *Parser) parseElement() ast.SchemaNode {
	startPos := p.position()
	repeats := []*ast.ArrayDataNode{p.parseRepeat()}
	for p.peek() != nil && p.peek().Kind() == tokenizer.TokenRepetitionSep {
		p.advance() // consume repetition separator
		repeats = append(repeats, p.parseRepeat())
	}

	if len(repeats) > 1 {
		nodes := make([]ast.SchemaNode, len(repeats))
		for i, r := range repeats {
			nodes[i] = r
		}
		return ast.NewArrayDataNode(nodes, startPos)
	}

	components := repeats[0].Elements()
	if len(components) == 1 {
		return components[0]
	}
	return repeats[0]
}

// parseRepeat parses one occurrence of an element.
//
// Grammar:
//
//	Repeat = Component { ComponentSep Component } ;
func (p *Parser) parseRepeat() *ast.ArrayDataNode {
	startPos := p.position()
	components := []ast.SchemaNode{p.parseComponent()}
	for p.peek() != nil && p.peek().Kind() == tokenizer.TokenComponentSep {
		p.advance() // consume component separator
		components = append(components, p.parseComponent())
	}
	return ast.NewArrayDataNode(components, startPos)
}

// parseComponent parses a single, possibly empty, value.
//
// Grammar:
//
//	Component = [ Data ] ;
func (p *Parser) parseComponent() *ast.LiteralNode {
	startPos := p.position()
	if p.peek() != nil && p.peek().Kind() == tokenizer.TokenData {
		value := p.peek().ValueString()
		p.advance()
		return ast.NewLiteralNode(value, startPos)
	}
	return ast.NewLiteralNode("", startPos)
}

// parseLiteral collects every token up to the next element separator into one literal.
func (p *Parser) parseLiteral() *ast.LiteralNode {
	startPos := p.position()
	var value strings.Builder
	for p.peek() != nil && p.peek().Kind() != tokenizer.TokenElementSep {
		value.WriteString(p.peek().ValueString())
		p.advance()
	}
	return ast.NewLiteralNode(value.String(), startPos)
}

// Helper methods

// peek returns current token without advancing.
func (p *Parser) peek() *shapetokenizer.Token {
	return p.current
}

// advance moves to next token.
func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// position returns current position for AST nodes.
// Rows count segments; offsets and columns are within the segment.
func (p *Parser) position() ast.Position {
	if p.hasToken && p.current != nil {
		return ast.NewPosition(
			p.current.Offset(),
			p.segmentNum,
			p.current.Column(),
		)
	}
	return ast.ZeroPosition()
}

// positionStr returns current position as a string for error messages.
func (p *Parser) positionStr() string {
	return p.position().String()
}
