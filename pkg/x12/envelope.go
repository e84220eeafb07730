package x12

import "github.com/shapestone/shape-x12/internal/tokenizer"

// Envelope segment types for use with UnmarshalSegment.
//
// Control numbers are kept as strings so their leading zeros survive.

// InterchangeHeader is the ISA segment.
type InterchangeHeader struct {
	AuthQualifier       string `x12:"1"`
	AuthInfo            string `x12:"2"`
	SecurityQualifier   string `x12:"3"`
	SecurityInfo        string `x12:"4"`
	SenderQualifier     string `x12:"5"`
	SenderID            string `x12:"6"`
	ReceiverQualifier   string `x12:"7"`
	ReceiverID          string `x12:"8"`
	Date                string `x12:"9"`
	Time                string `x12:"10"`
	RepetitionSeparator string `x12:"11"`
	Version             string `x12:"12"`
	ControlNumber       string `x12:"13,required"`
	AckRequested        bool   `x12:"14,numeric"`
	UsageIndicator      string `x12:"15"`
	ComponentSeparator  string `x12:"16"`
}

// X12Tag returns "ISA".
func (InterchangeHeader) X12Tag() string { return tokenizer.TagISA }

// InterchangeTrailer is the IEA segment.
type InterchangeTrailer struct {
	GroupCount    int    `x12:"1"`
	ControlNumber string `x12:"2,required"`
}

// X12Tag returns "IEA".
func (InterchangeTrailer) X12Tag() string { return tokenizer.TagIEA }

// GroupHeader is the GS segment.
type GroupHeader struct {
	FunctionalID  string `x12:"1"`
	SenderCode    string `x12:"2"`
	ReceiverCode  string `x12:"3"`
	Date          string `x12:"4"`
	Time          string `x12:"5"`
	ControlNumber string `x12:"6,required"`
	AgencyCode    string `x12:"7"`
	Version       string `x12:"8"`
}

// X12Tag returns "GS".
func (GroupHeader) X12Tag() string { return tokenizer.TagGS }

// GroupTrailer is the GE segment.
type GroupTrailer struct {
	TransactionCount int    `x12:"1"`
	ControlNumber    string `x12:"2,required"`
}

// X12Tag returns "GE".
func (GroupTrailer) X12Tag() string { return tokenizer.TagGE }

// TransactionHeader is the ST segment.
type TransactionHeader struct {
	TransactionSetID  string `x12:"1,required"`
	ControlNumber     string `x12:"2,required"`
	ImplementationRef string `x12:"3"`
}

// X12Tag returns "ST".
func (TransactionHeader) X12Tag() string { return tokenizer.TagST }

// TransactionTrailer is the SE segment.
type TransactionTrailer struct {
	SegmentCount  int    `x12:"1"`
	ControlNumber string `x12:"2,required"`
}

// X12Tag returns "SE".
func (TransactionTrailer) X12Tag() string { return tokenizer.TagSE }

// InterchangeAck is the TA1 interchange acknowledgment.
type InterchangeAck struct {
	ControlNumber string `x12:"1,required"`
	Date          string `x12:"2"`
	Time          string `x12:"3"`
	AckCode       string `x12:"4"`
	NoteCode      string `x12:"5"`
}

// X12Tag returns "TA1".
func (InterchangeAck) X12Tag() string { return tokenizer.TagTA1 }
