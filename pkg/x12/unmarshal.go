package x12

import (
	"errors"
	"fmt"
	"reflect"
)

// Tagged is implemented by structs bound to a single segment tag.
// UnmarshalSegment rejects segments with any other tag.
type Tagged interface {
	X12Tag() string
}

// UnmarshalSegment stores the elements of seg in the struct pointed to by v.
//
// Struct fields are matched to elements by position using x12 tags, where the
// index follows X12 reference numbering (element 0 is the tag):
//
//	type Claim struct {
//	    ID     string  `x12:"1,required"`
//	    Amount float64 `x12:"2"`
//	    Place  string  `x12:"5.1"` // CLM05-1
//	}
//	var c Claim
//	err := x12.UnmarshalSegment(seg, &c)
//
// Supported field types:
//   - string
//   - int, int8, int16, int32, int64
//   - uint, uint8, uint16, uint32, uint64
//   - float32, float64
//   - bool (accepts Y/N and 1/0)
//
// Absent elements leave fields at their zero value unless the tag carries the
// required option, in which case ErrElementCount is returned. If v implements
// Tagged and seg has another tag, ErrTagMismatch is returned.
func UnmarshalSegment(seg Segment, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("x12: UnmarshalSegment requires a non-nil pointer")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("x12: UnmarshalSegment requires a pointer to struct, got %s", rv.Type())
	}

	if tagged, ok := v.(Tagged); ok && tagged.X12Tag() != seg.Tag() {
		return fmt.Errorf("%w: want %s, got %s", ErrTagMismatch, tagged.X12Tag(), seg.Tag())
	}

	info, err := getStructInfo(rv.Type())
	if err != nil {
		return err
	}
	if seg.Len() < info.minElements {
		return fmt.Errorf("%w: %s has %d elements, need %d",
			ErrElementCount, seg.Tag(), seg.Len()-1, info.minElements-1)
	}

	for _, fi := range info.fields {
		value, ok := elementValue(seg, fi)
		if !ok {
			if fi.required {
				return fmt.Errorf("%w: %s%02d is absent", ErrElementCount, seg.Tag(), fi.element)
			}
			continue
		}
		if err := fi.setter(rv.Field(fi.index), value); err != nil {
			return fmt.Errorf("x12: %s%02d: %w", seg.Tag(), fi.element, err)
		}
	}
	return nil
}

func elementValue(seg Segment, fi fieldInfo) (string, bool) {
	if fi.component == 0 {
		return seg.Element(fi.element)
	}
	components := seg.Components(fi.element)
	if fi.component > len(components) {
		return "", false
	}
	return components[fi.component-1], true
}
