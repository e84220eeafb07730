package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/shapestone/shape-x12/internal/tokenizer"
	"github.com/shapestone/shape-x12/pkg/x12"
)

// FileResult describes one flattened file.
type FileResult struct {
	Name     string
	Segments int
	Rows     int
	// Tags counts emitted rows per segment tag in first-seen order.
	Tags *orderedmap.OrderedMap[string, int]
}

// envelope carries control numbers forward from the enclosing headers.
type envelope struct {
	interchange string
	group       string
	transaction string
	line        int
	open        bool
}

// Flattener turns X12 files into rows for a profile.
// A Flattener holds no state between files and is safe for concurrent use.
type Flattener struct {
	profile        Profile
	maxSegmentSize int
}

// NewFlattener creates a Flattener for the given profile.
func NewFlattener(p Profile) *Flattener {
	return &Flattener{profile: p}
}

// SetMaxSegmentSize limits the size of a single bare segment in bytes.
// 0 means no limit. Returns the Flattener for method chaining.
func (f *Flattener) SetMaxSegmentSize(n int) *Flattener {
	f.maxSegmentSize = n
	return f
}

// Flatten reads every interchange in r and writes one row per emitted segment to w.
//
// Rows are buffered until the whole file has been read, so nothing is written
// for a file that turns out to be corrupt.
func (f *Flattener) Flatten(name string, r io.Reader, w io.Writer) (FileResult, error) {
	res := FileResult{
		Name: name,
		Tags: orderedmap.NewOrderedMap[string, int](),
	}

	var buf bytes.Buffer
	var env envelope
	scanner := x12.NewScanner(r).SetMaxSegmentSize(f.maxSegmentSize)

	for scanner.Scan() {
		seg := scanner.Segment()
		res.Segments++

		cols, err := f.row(name, res.Segments, seg, &env)
		if err != nil {
			return res, fmt.Errorf("segment %d: %w", res.Segments, err)
		}
		if cols == nil {
			continue
		}

		buf.WriteString(strings.Join(cols, RowDelimiter))
		buf.WriteByte('\n')
		res.Rows++
		n, _ := res.Tags.Get(seg.Tag())
		res.Tags.Set(seg.Tag(), n+1)
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}

	if _, err := buf.WriteTo(w); err != nil {
		return res, err
	}
	return res, nil
}

// row updates the envelope context for seg and builds its columns.
// Returns nil columns for segments the profile does not emit.
func (f *Flattener) row(name string, line int, seg x12.Segment, env *envelope) ([]string, error) {
	var (
		group, transaction, txLine string
		err                        error
	)

	switch seg.Tag() {
	case tokenizer.TagISA:
		var isa x12.InterchangeHeader
		err = x12.UnmarshalSegment(seg, &isa)
		*env = envelope{interchange: isa.ControlNumber}
	case tokenizer.TagIEA, tokenizer.TagTA1:
	case tokenizer.TagGS:
		var gs x12.GroupHeader
		err = x12.UnmarshalSegment(seg, &gs)
		env.group = gs.ControlNumber
		env.transaction = ""
		env.open = false
		group = env.group
	case tokenizer.TagGE:
		group = env.group
	default:
		if seg.Tag() == tokenizer.TagST {
			var st x12.TransactionHeader
			err = x12.UnmarshalSegment(seg, &st)
			env.transaction = st.ControlNumber
			env.line = 1
			env.open = true
		}
		group, transaction = env.group, env.transaction
		if env.open {
			txLine = strconv.Itoa(env.line)
			env.line++
		}
		if seg.Tag() == tokenizer.TagSE {
			env.open = false
		}
	}
	if err != nil {
		return nil, err
	}

	if !f.profile.emits(seg.Tag()) {
		return nil, nil
	}

	cols := make([]string, 0, contextColumns+f.profile.Columns)
	cols = append(cols,
		name,
		strconv.Itoa(line),
		env.interchange,
		group,
		transaction,
		txLine,
		seg.String()+terminatorColumn(seg.Delimiters()),
	)

	elements := seg.Elements()
	if len(elements) > f.profile.Columns {
		elements = elements[:f.profile.Columns]
	}
	cols = append(cols, elements...)
	for len(cols) < contextColumns+f.profile.Columns {
		cols = append(cols, "")
	}
	return cols, nil
}

// terminatorColumn is appended to the raw segment column. A line break
// terminator would split the row, so "~" stands in for it.
func terminatorColumn(d x12.Delimiters) string {
	if d.Segment == '\n' || d.Segment == '\r' {
		return "~"
	}
	return string(d.Segment)
}
