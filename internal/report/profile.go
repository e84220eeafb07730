// Package report flattens X12 interchanges into delimited rows, one row per
// segment, with the envelope control numbers carried forward onto each row.
package report

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-x12/internal/tokenizer"
)

// RowDelimiter separates columns of a flattened row. It is fixed and
// independent of the EDI delimiters of the input.
const RowDelimiter = "{"

// contextColumns is the number of columns in front of the segment elements:
// file, line, interchange, group, transaction, transaction line, segment.
const contextColumns = 7

// Profile describes how one kind of file is flattened.
type Profile struct {
	// Name identifies the profile on the command line and in config files.
	Name string
	// Pattern is the default file glob.
	Pattern string
	// Columns is the number of element columns, the segment tag included.
	// Shorter segments are padded and longer ones truncated.
	Columns int
	// Header writes a column header row at the top of the output.
	Header bool
	// Tags limits output to the listed segment tags. Empty means every segment.
	Tags []string
}

// Profile837 flattens 837 claim files.
var Profile837 = Profile{
	Name:    "837",
	Pattern: "KYH*.837",
	Columns: 32,
	Header:  true,
}

// ProfileTA1 flattens TA1 interchange acknowledgment files.
var ProfileTA1 = Profile{
	Name:    "TA1",
	Pattern: "KYH*.TA1",
	Columns: 17,
	Tags:    []string{tokenizer.TagISA, tokenizer.TagTA1, tokenizer.TagIEA},
}

// Profiles lists the built-in profiles.
func Profiles() []Profile {
	return []Profile{Profile837, ProfileTA1}
}

// LookupProfile returns the built-in profile with the given name, ignoring case.
func LookupProfile(name string) (Profile, error) {
	for _, p := range Profiles() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q (expected 837|TA1)", name)
}

// HeaderRow returns the column header row without a line ending.
func (p Profile) HeaderRow() string {
	cols := make([]string, 0, contextColumns+p.Columns)
	cols = append(cols,
		"File_Name", "Line_Number", "Interchange_Ctrl_Nbr", "Group_Ctrl_Nbr",
		"Transaction_Ctrl_Nbr", "Transaction_Line_Nbr", "X12_Segment", "Segment_Type",
	)
	for i := 1; i < p.Columns; i++ {
		cols = append(cols, fmt.Sprintf("DE%02d", i))
	}
	return strings.Join(cols, RowDelimiter)
}

// emits reports whether segments with tag are written.
func (p Profile) emits(tag string) bool {
	if len(p.Tags) == 0 {
		return true
	}
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
