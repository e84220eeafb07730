// Package x12 provides AST rendering to X12 bytes.
//
// This file converts Shape AST nodes produced by Parse back into X12 text
// using a caller-supplied delimiter set.
package x12

import (
	"bytes"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to X12 bytes.
//
// The node should be the result of Parse() or ParseReader(), or a single
// segment from it. Every segment is followed by the segment terminator of
// delims. Composite elements are joined with the component separator and
// repeated elements with the repetition separator.
//
// Example:
//
//	node, _ := x12.Parse(input)
//	out, _ := x12.Render(node, x12.DefaultDelimiters())
func Render(node ast.SchemaNode, delims Delimiters) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("unsupported node type for X12 rendering: %T", node)
	}

	elements := arr.Elements()
	if len(elements) == 0 {
		return buf.Bytes(), nil
	}

	// A stream is an array of segments; a segment starts with its tag literal.
	if _, isSegment := elements[0].(*ast.LiteralNode); isSegment {
		if err := renderSegment(arr, delims, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	for i, elem := range elements {
		seg, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("segment %d: unexpected node type %T", i+1, elem)
		}
		if err := renderSegment(seg, delims, &buf); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
	}
	return buf.Bytes(), nil
}

// renderSegment writes one segment followed by the terminator.
func renderSegment(seg *ast.ArrayDataNode, delims Delimiters, buf *bytes.Buffer) error {
	for i, elem := range seg.Elements() {
		if i > 0 {
			buf.WriteRune(delims.Element)
		}
		if err := renderElement(elem, delims, buf); err != nil {
			return err
		}
	}
	buf.WriteRune(delims.Segment)
	return nil
}

// renderElement writes a simple, composite or repeated element.
func renderElement(node ast.SchemaNode, delims Delimiters, buf *bytes.Buffer) error {
	switch n := node.(type) {
	case *ast.LiteralNode:
		buf.WriteString(literalString(n))
		return nil
	case *ast.ArrayDataNode:
		parts := n.Elements()
		if len(parts) == 0 {
			return nil
		}
		if _, repeated := parts[0].(*ast.ArrayDataNode); repeated {
			if !delims.HasRepeat() {
				return fmt.Errorf("repeated element needs a repeat separator")
			}
			for i, part := range parts {
				if i > 0 {
					buf.WriteRune(delims.Repeat)
				}
				composite, ok := part.(*ast.ArrayDataNode)
				if !ok {
					return fmt.Errorf("unexpected repeat node type %T", part)
				}
				if err := renderComposite(composite, delims, buf); err != nil {
					return err
				}
			}
			return nil
		}
		return renderComposite(n, delims, buf)
	default:
		return fmt.Errorf("unsupported node type for X12 rendering: %T", node)
	}
}

// renderComposite writes components joined by the component separator.
func renderComposite(node *ast.ArrayDataNode, delims Delimiters, buf *bytes.Buffer) error {
	for i, part := range node.Elements() {
		if i > 0 {
			buf.WriteRune(delims.Component)
		}
		lit, ok := part.(*ast.LiteralNode)
		if !ok {
			return fmt.Errorf("unexpected component node type %T", part)
		}
		buf.WriteString(literalString(lit))
	}
	return nil
}

func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// RenderSegment renders a single Segment with its own delimiters.
func RenderSegment(seg Segment) []byte {
	d := seg.Delimiters()
	if d.Segment == 0 {
		d.Segment = DefaultDelimiters().Segment
	}
	out := make([]byte, 0, len(seg.String())+1)
	out = append(out, seg.String()...)
	return append(out, string(d.Segment)...)
}
