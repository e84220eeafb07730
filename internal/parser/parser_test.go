package parser

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-x12/internal/tokenizer"
)

func isaHeader(version string, elem, rep, comp rune) string {
	fields := []string{
		"ISA", "00", strings.Repeat(" ", 10), "00", strings.Repeat(" ", 10),
		"ZZ", "SENDER         ", "ZZ", "RECEIVER       ",
		"200101", "1200", string(rep), version, "000000001", "0", "P", string(comp),
	}
	return strings.Join(fields, string(elem))
}

func segmentsOf(t *testing.T, node ast.SchemaNode) []*ast.ArrayDataNode {
	t.Helper()
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("expected *ast.ArrayDataNode, got %T", node)
	}
	out := make([]*ast.ArrayDataNode, 0, arr.Len())
	for i, elem := range arr.Elements() {
		seg, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			t.Fatalf("segment %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}
		out = append(out, seg)
	}
	return out
}

func literal(t *testing.T, node ast.SchemaNode) string {
	t.Helper()
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		t.Fatalf("expected *ast.LiteralNode, got %T", node)
	}
	str, ok := lit.Value().(string)
	if !ok {
		t.Fatalf("expected string value, got %T", lit.Value())
	}
	return str
}

func literals(t *testing.T, node ast.SchemaNode) []string {
	t.Helper()
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("expected *ast.ArrayDataNode, got %T", node)
	}
	out := make([]string, 0, arr.Len())
	for _, elem := range arr.Elements() {
		out = append(out, literal(t, elem))
	}
	return out
}

// TestParse_EmptyInput tests parsing a stream without interchanges.
// Empty input is valid and should return an empty ArrayDataNode.
func TestParse_EmptyInput(t *testing.T) {
	p := NewParser("")
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if segs := segmentsOf(t, node); len(segs) != 0 {
		t.Errorf("expected empty array, got %d segments", len(segs))
	}
}

// TestParse_Interchange tests a complete interchange.
// Grammar: Segment = Tag { ElementSep Element }
func TestParse_Interchange(t *testing.T) {
	header := isaHeader("00501", '*', '^', ':')
	input := header + "~GS*HC*SENDER*RECEIVER*20200101*1200*1*X*005010X222A1~" +
		"ST*837*0001~NM1*IL*1*DOE*JOHN~SE*3*0001~GE*1*1~IEA*1*000000001~"

	node, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segs := segmentsOf(t, node)
	wantTags := []string{"ISA", "GS", "ST", "NM1", "SE", "GE", "IEA"}
	if len(segs) != len(wantTags) {
		t.Fatalf("expected %d segments, got %d", len(wantTags), len(segs))
	}
	for i, want := range wantTags {
		if got := literal(t, segs[i].Elements()[0]); got != want {
			t.Errorf("segment %d: expected tag %q, got %q", i, want, got)
		}
	}

	nm1 := literals(t, segs[3])
	wantNM1 := []string{"NM1", "IL", "1", "DOE", "JOHN"}
	if strings.Join(nm1, "|") != strings.Join(wantNM1, "|") {
		t.Errorf("expected %q, got %q", wantNM1, nm1)
	}
}

// TestParse_ISANotSplit tests that the header keeps its delimiter elements as literals.
func TestParse_ISANotSplit(t *testing.T) {
	header := isaHeader("00501", '*', '^', ':')
	node, err := NewParser(header + "~IEA*0*000000001~").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	isa := segmentsOf(t, node)[0]
	if isa.Len() != 17 {
		t.Fatalf("expected 17 ISA elements, got %d", isa.Len())
	}
	if got := literal(t, isa.Elements()[11]); got != "^" {
		t.Errorf("expected ISA11 %q, got %q", "^", got)
	}
	if got := literal(t, isa.Elements()[16]); got != ":" {
		t.Errorf("expected ISA16 %q, got %q", ":", got)
	}
	if got := literal(t, isa.Elements()[2]); got != strings.Repeat(" ", 10) {
		t.Errorf("expected ISA02 to keep padding, got %q", got)
	}
}

func TestParse_CompositeAndRepeatedElements(t *testing.T) {
	header := isaHeader("00501", '*', '^', ':')
	input := header + "~HI*ABK:8901^ABF:87200*:X~REF**~IEA*1*000000001~"

	node, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	segs := segmentsOf(t, node)

	hi := segs[1].Elements()
	repeated, ok := hi[1].(*ast.ArrayDataNode)
	if !ok || repeated.Len() != 2 {
		t.Fatalf("expected 2 repeats, got %T", hi[1])
	}
	if got := literals(t, repeated.Elements()[0]); strings.Join(got, ":") != "ABK:8901" {
		t.Errorf("first repeat: got %q", got)
	}
	if got := literals(t, repeated.Elements()[1]); strings.Join(got, ":") != "ABF:87200" {
		t.Errorf("second repeat: got %q", got)
	}
	if got := literals(t, hi[2]); len(got) != 2 || got[0] != "" || got[1] != "X" {
		t.Errorf("composite with empty first component: got %q", got)
	}

	ref := segs[2].Elements()
	if len(ref) != 3 || literal(t, ref[1]) != "" || literal(t, ref[2]) != "" {
		t.Errorf("expected two empty elements, got %d elements", len(ref))
	}
}

func TestParse_SplitComponentsDisabled(t *testing.T) {
	header := isaHeader("00501", '*', '^', ':')
	opts := DefaultOptions()
	opts.SplitComponents = false

	node, err := NewParserWithOptions(header+"~HI*ABK:8901^ABF:87200~IEA*1*000000001~", opts).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hi := segmentsOf(t, node)[1]
	if got := literal(t, hi.Elements()[1]); got != "ABK:8901^ABF:87200" {
		t.Errorf("expected raw element, got %q", got)
	}
}

func TestParse_MaxSegmentSize(t *testing.T) {
	header := isaHeader("00501", '*', '^', ':')
	opts := DefaultOptions()
	opts.MaxSegmentSize = 110

	_, err := NewParserWithOptions(header+"~NTE*ADD*"+strings.Repeat("X", 200)+"~IEA*1*1~", opts).Parse()
	if err == nil {
		t.Fatal("expected size error")
	}
	var se *SegmentError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SegmentError, got %T", err)
	}
	if se.Segment != 2 {
		t.Errorf("expected segment 2, got %d", se.Segment)
	}
	if !errors.Is(err, ErrSegmentTooLarge) {
		t.Errorf("expected ErrSegmentTooLarge, got %v", err)
	}
}

func TestParse_Corruption(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		segment int
	}{
		{"truncated header", "ISA*00*", 1},
		{"invalid delimiter", isaHeader("00501", '*', '^', 'A') + "~", 1},
		{"missing trailer", isaHeader("00501", '*', '^', ':') + "~GS*HC~", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.input).Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tokenizer.ErrCorruption) {
				t.Errorf("expected ErrCorruption, got %v", err)
			}
			var se *SegmentError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SegmentError, got %T", err)
			}
			if se.Segment != tt.segment {
				t.Errorf("expected segment %d, got %d", tt.segment, se.Segment)
			}
		})
	}
}

// TestParse_FromReader tests parsing from an io.Reader with two interchanges
// using different delimiters.
func TestParse_FromReader(t *testing.T) {
	input := isaHeader("00401", '*', 'U', ':') + "~GS*HC*A~IEA*1*000000001~" +
		isaHeader("00501", '|', '^', '>') + "\nGS|HC|B>C\nIEA|1|000000002\n"

	p := NewParserFromReader(iotest.HalfReader(strings.NewReader(input)))
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segs := segmentsOf(t, node)
	if len(segs) != 6 {
		t.Fatalf("expected 6 segments, got %d", len(segs))
	}
	if got := literals(t, segs[4].Elements()[2]); strings.Join(got, ",") != "B,C" {
		t.Errorf("expected components split on '>', got %q", got)
	}
	if p.Delimiters().Element != '|' {
		t.Errorf("expected last delimiters to use '|', got %q", p.Delimiters().Element)
	}
}

// TestParse_FromStream tests parsing from a pre-configured shape-core stream.
func TestParse_FromStream(t *testing.T) {
	input := isaHeader("00501", '*', '^', ':') + "~NM1*IL*1*JOSÉ~IEA*0*000000001~"

	node, err := NewParserFromStream(shapetokenizer.NewStream(input)).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	segs := segmentsOf(t, node)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
}

// TestParse_FromReaderInvalidUTF8 tests that undecodable bytes read from an
// io.Reader are corruption rather than silently dropped.
func TestParse_FromReaderInvalidUTF8(t *testing.T) {
	input := isaHeader("00501", '*', '^', ':') + "~NM1*IL*1*JOS\xff~IEA*0*000000001~"

	_, err := NewParserFromReader(strings.NewReader(input)).Parse()
	if err == nil {
		t.Fatal("expected corruption for invalid UTF-8")
	}
	if !errors.Is(err, tokenizer.ErrCorruption) {
		t.Errorf("expected ErrCorruption, got %v", err)
	}
	var se *SegmentError
	if !errors.As(err, &se) || se.Segment != 2 {
		t.Errorf("expected error on segment 2, got %v", err)
	}
}
