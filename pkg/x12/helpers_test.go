package x12_test

import "strings"

// isaHeader builds a 105 character ISA header with the given delimiters.
func isaHeader(version string, elem, rep, comp rune) string {
	fields := []string{
		"ISA", "00", strings.Repeat(" ", 10), "00", strings.Repeat(" ", 10),
		"ZZ", "SENDER         ", "ZZ", "RECEIVER       ",
		"200101", "1200", string(rep), version, "000000001", "0", "P", string(comp),
	}
	return strings.Join(fields, string(elem))
}

// claim837 is a small 5010 claim interchange.
func claim837() string {
	return isaHeader("00501", '*', '^', ':') + "~" +
		"GS*HC*SENDER*RECEIVER*20200101*1200*7*X*005010X222A1~" +
		"ST*837*0001*005010X222A1~" +
		"CLM*PATIENT01*125.50***11:B:1*Y*A*Y*Y~" +
		"HI*ABK:8901^ABF:87200~" +
		"SE*4*0001~" +
		"GE*1*7~" +
		"IEA*1*000000001~"
}
