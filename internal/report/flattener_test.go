package report

import (
	"bytes"
	"strings"
	"testing"
)

// isaHeader builds a 105 character ISA header; icn is zero padded to 9 digits.
func isaHeader(version string, elem, rep, comp rune, icn string) string {
	icn = strings.Repeat("0", 9-len(icn)) + icn
	fields := []string{
		"ISA", "00", strings.Repeat(" ", 10), "00", strings.Repeat(" ", 10),
		"ZZ", "SENDER         ", "ZZ", "RECEIVER       ",
		"200101", "1200", string(rep), version, icn, "0", "P", string(comp),
	}
	return strings.Join(fields, string(elem))
}

func claimFile(icn string) string {
	return isaHeader("00501", '*', '^', ':', icn) + "~" +
		"GS*HC*SENDER*RECEIVER*20200101*1200*7*X*005010X222A1~" +
		"ST*837*0001*005010X222A1~" +
		"BHT*0019*00*0123*20200101*1200*CH~" +
		"CLM*PATIENT01*125.50***11:B:1*Y~" +
		"SE*4*0001~" +
		"GE*1*7~" +
		"IEA*1*" + icn + "~"
}

func ackFile(icn string) string {
	return isaHeader("00501", '*', '^', ':', icn) + "~" +
		"TA1*000000001*200101*1200*A*000~" +
		"IEA*0*" + icn + "~"
}

func splitRows(t *testing.T, out string) [][]string {
	t.Helper()
	if out == "" {
		return nil
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("output does not end with a line break: %q", out)
	}
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		rows = append(rows, strings.Split(line, RowDelimiter))
	}
	return rows
}

func TestFlatten_837(t *testing.T) {
	var out bytes.Buffer
	res, err := NewFlattener(Profile837).Flatten("KYH1.837", strings.NewReader(claimFile("000000123")), &out)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	rows := splitRows(t, out.String())
	if len(rows) != 8 || res.Rows != 8 || res.Segments != 8 {
		t.Fatalf("rows = %d, result = %+v", len(rows), res)
	}
	for i, row := range rows {
		if len(row) != 39 {
			t.Errorf("row %d has %d columns, want 39", i+1, len(row))
		}
	}

	// file, line, icn, gcn, tcn, tln, segment, tag
	tests := []struct {
		row  int
		want []string
	}{
		{0, []string{"KYH1.837", "1", "000000123", "", "", "", "", "ISA"}},
		{1, []string{"KYH1.837", "2", "000000123", "7", "", "", "", "GS"}},
		{2, []string{"KYH1.837", "3", "000000123", "7", "0001", "1", "ST*837*0001*005010X222A1~", "ST"}},
		{3, []string{"KYH1.837", "4", "000000123", "7", "0001", "2", "BHT*0019*00*0123*20200101*1200*CH~", "BHT"}},
		{4, []string{"KYH1.837", "5", "000000123", "7", "0001", "3", "", "CLM"}},
		{5, []string{"KYH1.837", "6", "000000123", "7", "0001", "4", "SE*4*0001~", "SE"}},
		{6, []string{"KYH1.837", "7", "000000123", "7", "", "", "GE*1*7~", "GE"}},
		{7, []string{"KYH1.837", "8", "000000123", "", "", "", "IEA*1*000000123~", "IEA"}},
	}
	for _, tt := range tests {
		row := rows[tt.row]
		for col, want := range tt.want {
			if col == 6 && want == "" {
				continue
			}
			if row[col] != want {
				t.Errorf("row %d column %d = %q, want %q", tt.row+1, col, row[col], want)
			}
		}
	}

	clm := rows[4]
	if clm[8] != "PATIENT01" || clm[12] != "11:B:1" || clm[13] != "Y" || clm[14] != "" {
		t.Errorf("CLM elements = %q", clm[7:15])
	}
	if isa := rows[0]; isa[20] != "000000123" || isa[23] != ":" {
		t.Errorf("ISA elements = %q", isa[7:24])
	}

	if got := strings.Join(keys(res), ","); got != "ISA,GS,ST,BHT,CLM,SE,GE,IEA" {
		t.Errorf("tags = %s", got)
	}
}

func keys(res FileResult) []string {
	var out []string
	for k := range res.Tags.Keys() {
		out = append(out, k)
	}
	return out
}

func TestFlatten_TA1(t *testing.T) {
	var out bytes.Buffer
	res, err := NewFlattener(ProfileTA1).Flatten("KYH1.TA1", strings.NewReader(ackFile("000000555")), &out)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	rows := splitRows(t, out.String())
	if len(rows) != 3 || res.Rows != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 24 {
			t.Errorf("row %d has %d columns, want 24", i+1, len(row))
		}
		if row[2] != "000000555" || row[3] != "" || row[4] != "" || row[5] != "" {
			t.Errorf("row %d context = %q", i+1, row[:6])
		}
	}
	if rows[1][7] != "TA1" || rows[1][11] != "A" {
		t.Errorf("TA1 row = %q", rows[1])
	}
}

func TestFlatten_TA1SkipsOtherSegments(t *testing.T) {
	input := isaHeader("00501", '*', '^', ':', "000000001") + "~" +
		"GS*TA*A*B*20200101*1200*1*X*005010~GE*0*1~TA1*000000001*200101*1200*R*022~IEA*1*000000001~"

	var out bytes.Buffer
	res, err := NewFlattener(ProfileTA1).Flatten("f", strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	rows := splitRows(t, out.String())
	if len(rows) != 3 || res.Segments != 5 {
		t.Fatalf("rows = %d, segments = %d", len(rows), res.Segments)
	}
	// Line numbers point at the segment position in the file.
	if rows[1][1] != "4" || rows[2][1] != "5" {
		t.Errorf("line numbers = %s, %s", rows[1][1], rows[2][1])
	}
}

func TestFlatten_TruncatesLongSegments(t *testing.T) {
	elements := make([]string, 40)
	for i := range elements {
		elements[i] = "E"
	}
	input := isaHeader("00501", '*', '^', ':', "1") + "~NTE*" + strings.Join(elements, "*") + "~IEA*0*1~"

	var out bytes.Buffer
	if _, err := NewFlattener(Profile837).Flatten("f", strings.NewReader(input), &out); err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	for i, row := range splitRows(t, out.String()) {
		if len(row) != 39 {
			t.Errorf("row %d has %d columns, want 39", i+1, len(row))
		}
	}
}

func TestFlatten_DiscoveredDelimiters(t *testing.T) {
	input := isaHeader("00401", '|', 'U', '>', "000000009") + "\n" +
		"GS|HC|A|B|20200101|1200|42|X|004010X098A1\n" +
		"ST|837|0002\n" +
		"SE|2|0002\n" +
		"GE|1|42\n" +
		"IEA|1|000000009\n"

	var out bytes.Buffer
	if _, err := NewFlattener(Profile837).Flatten("f", strings.NewReader(input), &out); err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	rows := splitRows(t, out.String())
	if len(rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(rows))
	}
	st := rows[2]
	if st[3] != "42" || st[4] != "0002" || st[6] != "ST|837|0002~" || st[8] != "837" {
		t.Errorf("ST row = %q", st[:10])
	}
}

func TestFlatten_CorruptWritesNothing(t *testing.T) {
	input := claimFile("1") + isaHeader("00501", '*', '^', ':', "2") + "~GS*HC"

	var out bytes.Buffer
	res, err := NewFlattener(Profile837).Flatten("f", strings.NewReader(input), &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("wrote %d bytes for a corrupt file", out.Len())
	}
	if res.Segments != 9 {
		t.Errorf("segments = %d, want 9", res.Segments)
	}
}

func TestProfile_HeaderRow(t *testing.T) {
	header := Profile837.HeaderRow()
	cols := strings.Split(header, RowDelimiter)
	if len(cols) != 39 {
		t.Fatalf("header has %d columns, want 39", len(cols))
	}
	if !strings.HasPrefix(header, "File_Name{Line_Number{Interchange_Ctrl_Nbr{Group_Ctrl_Nbr{") {
		t.Errorf("header = %q", header)
	}
	if cols[7] != "Segment_Type" || cols[8] != "DE01" || cols[38] != "DE31" {
		t.Errorf("element columns = %q", cols[7:])
	}
}

func TestLookupProfile(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"837", "837", false},
		{"ta1", "TA1", false},
		{" TA1 ", "TA1", false},
		{"835", "", true},
	}
	for _, tt := range tests {
		p, err := LookupProfile(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("LookupProfile(%q) error = %v", tt.name, err)
			continue
		}
		if p.Name != tt.want {
			t.Errorf("LookupProfile(%q) = %q, want %q", tt.name, p.Name, tt.want)
		}
	}
}
