package x12

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldSetter is a pre-computed function that sets a field value from an element.
type fieldSetter func(field reflect.Value, value string) error

// fieldFormatter is a pre-computed function that renders a field value as an element.
type fieldFormatter func(field reflect.Value) (string, error)

// fieldInfo maps one struct field to an element position.
type fieldInfo struct {
	// index is the struct field index.
	index int
	// element is the element index, 0 being the tag.
	element int
	// component is the 1-indexed component, 0 for the whole element.
	component int
	// required fails the mapping when the element is absent.
	required bool
	// numeric encodes bools as 1/0 instead of Y/N.
	numeric   bool
	setter    fieldSetter
	formatter fieldFormatter
}

// structInfo holds cached metadata about a struct type.
type structInfo struct {
	fields []fieldInfo
	// minElements is the element count needed to satisfy every required field.
	minElements int
	// maxElement is the highest element index any field maps to.
	maxElement int
}

// Global cache for struct metadata
var (
	typeCache sync.Map // map[reflect.Type]*structInfo
)

// getStructInfo retrieves or computes struct metadata for the given type.
// Results are cached for performance.
func getStructInfo(structType reflect.Type) (*structInfo, error) {
	if cached, ok := typeCache.Load(structType); ok {
		return cached.(*structInfo), nil
	}

	info, err := computeStructInfo(structType)
	if err != nil {
		return nil, err
	}

	actual, _ := typeCache.LoadOrStore(structType, info)
	return actual.(*structInfo), nil
}

// computeStructInfo parses the x12 tags of a struct type.
//
// Tag format:
//
//	Field string `x12:"13"`          // element 13
//	Field string `x12:"1.2"`         // element 1, component 2
//	Field string `x12:"2,required"`  // fail when element 2 is absent
//	Field bool   `x12:"14,numeric"`  // 1/0 instead of Y/N
//	Field string `x12:"-"`           // ignored
func computeStructInfo(structType reflect.Type) (*structInfo, error) {
	info := &structInfo{}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		// Skip unexported fields
		if field.PkgPath != "" {
			continue
		}

		tag := field.Tag.Get("x12")
		if tag == "" || tag == "-" {
			continue
		}

		fi := fieldInfo{index: i}
		position := tag
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			position = tag[:idx]
			for _, opt := range strings.Split(tag[idx+1:], ",") {
				switch opt {
				case "required":
					fi.required = true
				case "numeric":
					fi.numeric = true
				default:
					return nil, fmt.Errorf("x12: unknown tag option %q on field %s", opt, field.Name)
				}
			}
		}

		elem, comp, hasComp := strings.Cut(position, ".")
		n, err := strconv.Atoi(elem)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("x12: invalid element index %q on field %s", elem, field.Name)
		}
		fi.element = n
		if hasComp {
			c, err := strconv.Atoi(comp)
			if err != nil || c < 1 {
				return nil, fmt.Errorf("x12: invalid component index %q on field %s", comp, field.Name)
			}
			fi.component = c
		}

		if fi.numeric && field.Type.Kind() != reflect.Bool {
			return nil, fmt.Errorf("x12: numeric option on non-bool field %s", field.Name)
		}

		fi.setter = createSetter(field.Type)
		fi.formatter = createFormatter(field.Type, fi.numeric)
		if n > info.maxElement {
			info.maxElement = n
		}
		if fi.required && n+1 > info.minElements {
			info.minElements = n + 1
		}
		info.fields = append(info.fields, fi)
	}

	return info, nil
}

// createSetter returns a pre-computed setter function for the given field type.
// Empty elements leave numeric and bool fields at their zero value.
func createSetter(fieldType reflect.Type) fieldSetter {
	switch fieldType.Kind() {
	case reflect.String:
		return func(field reflect.Value, value string) error {
			field.SetString(value)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				field.SetInt(0)
				return nil
			}
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("cannot parse %q as int: %w", value, err)
			}
			if field.OverflowInt(i) {
				return fmt.Errorf("value %d overflows %s", i, field.Type())
			}
			field.SetInt(i)
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value, value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				field.SetUint(0)
				return nil
			}
			u, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("cannot parse %q as uint: %w", value, err)
			}
			if field.OverflowUint(u) {
				return fmt.Errorf("value %d overflows %s", u, field.Type())
			}
			field.SetUint(u)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				field.SetFloat(0)
				return nil
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("cannot parse %q as float: %w", value, err)
			}
			if field.OverflowFloat(f) {
				return fmt.Errorf("value %v overflows %s", f, field.Type())
			}
			field.SetFloat(f)
			return nil
		}

	case reflect.Bool:
		// X12 indicators are Y/N; 1/0 appear in ISA14.
		return func(field reflect.Value, value string) error {
			switch strings.TrimSpace(value) {
			case "", "N", "n", "0":
				field.SetBool(false)
			case "Y", "y", "1":
				field.SetBool(true)
			default:
				return fmt.Errorf("cannot parse %q as bool", value)
			}
			return nil
		}

	default:
		return func(field reflect.Value, value string) error {
			return fmt.Errorf("unsupported field type %s", field.Type())
		}
	}
}

// createFormatter returns a pre-computed formatter for the given field type.
func createFormatter(fieldType reflect.Type, numeric bool) fieldFormatter {
	switch fieldType.Kind() {
	case reflect.String:
		return func(field reflect.Value) (string, error) {
			return field.String(), nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value) (string, error) {
			return strconv.FormatInt(field.Int(), 10), nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value) (string, error) {
			return strconv.FormatUint(field.Uint(), 10), nil
		}

	case reflect.Float32, reflect.Float64:
		bits := fieldType.Bits()
		return func(field reflect.Value) (string, error) {
			return strconv.FormatFloat(field.Float(), 'f', -1, bits), nil
		}

	case reflect.Bool:
		yes, no := "Y", "N"
		if numeric {
			yes, no = "1", "0"
		}
		return func(field reflect.Value) (string, error) {
			if field.Bool() {
				return yes, nil
			}
			return no, nil
		}

	default:
		return func(field reflect.Value) (string, error) {
			return "", fmt.Errorf("unsupported field type %s", field.Type())
		}
	}
}

// clearStructCache clears the entire type cache.
// Useful for testing or if you want to free memory.
func clearStructCache() {
	typeCache.Range(func(key, value interface{}) bool {
		typeCache.Delete(key)
		return true
	})
}
