package x12

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// MarshalSegment builds a segment from a struct using the same x12 tags as
// UnmarshalSegment. v must implement Tagged; its X12Tag becomes element 0.
//
//	st := x12.TransactionHeader{TransactionSetID: "837", ControlNumber: "0001"}
//	seg, err := x12.MarshalSegment(st, x12.DefaultDelimiters())
//	// seg.String() == "ST*837*0001"
//
// Fields sharing an element index with a component suffix are joined with the
// component separator. Trailing empty elements and components are dropped.
// Bools encode as Y/N, or 1/0 with the numeric option.
//
// Values are written as is: ISA elements must already be padded to their fixed
// widths. A value containing the element separator, the segment terminator, or
// (outside ISA) the component or repeat separator returns ErrDelimiterInValue.
func MarshalSegment(v interface{}, delims Delimiters) (Segment, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Segment{}, errors.New("x12: MarshalSegment(nil)")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Segment{}, fmt.Errorf("x12: MarshalSegment expects struct, got %T", v)
	}

	tagged, ok := v.(Tagged)
	if !ok {
		return Segment{}, fmt.Errorf("%w: %s", ErrUntagged, rv.Type())
	}
	tag := tagged.X12Tag()

	info, err := getStructInfo(rv.Type())
	if err != nil {
		return Segment{}, err
	}

	isISA := tag == tokenizer.TagISA
	elements := make([][]string, info.maxElement+1)
	for _, fi := range info.fields {
		if fi.element == 0 {
			continue
		}
		value, err := fi.formatter(rv.Field(fi.index))
		if err != nil {
			return Segment{}, fmt.Errorf("x12: %s%02d: %w", tag, fi.element, err)
		}
		if err := checkValue(value, delims, isISA); err != nil {
			return Segment{}, fmt.Errorf("%s%02d: %w", tag, fi.element, err)
		}

		slot := 0
		if fi.component > 0 {
			slot = fi.component - 1
		}
		parts := elements[fi.element]
		for len(parts) <= slot {
			parts = append(parts, "")
		}
		parts[slot] = value
		elements[fi.element] = parts
	}

	out := make([]string, len(elements))
	out[0] = tag
	last := 0
	for i := 1; i < len(elements); i++ {
		out[i] = strings.Join(trimEmpty(elements[i]), string(delims.Component))
		if out[i] != "" {
			last = i
		}
	}

	return NewSegment(strings.Join(out[:last+1], string(delims.Element)), delims), nil
}

func checkValue(value string, delims Delimiters, isISA bool) error {
	reserved := []rune{delims.Element, delims.Segment}
	if !isISA {
		reserved = append(reserved, delims.Component)
		if delims.HasRepeat() {
			reserved = append(reserved, delims.Repeat)
		}
	}
	for _, r := range reserved {
		if strings.ContainsRune(value, r) {
			return fmt.Errorf("%w: %q in %q", ErrDelimiterInValue, r, value)
		}
	}
	return nil
}

func trimEmpty(parts []string) []string {
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return parts[:n]
}
