package tokenizer

import "errors"

// readHeader reads an ISA header and installs its delimiters.
//
// The header is fixed width: 105 data characters followed by the segment
// terminator. NULs are never stored and line breaks are skipped while the
// window is short, since producers hard-wrap the header at fixed columns.
//
// Returns ok=false with a nil error when the stream ends before any header
// character is read.
func (r *SegmentReader) readHeader() (string, bool, error) {
	window := r.buf[:0]
	for len(window) < HeaderLength {
		c, ok := r.next()
		if !ok {
			if len(window) == 0 {
				return "", false, nil
			}
			return "", false, r.corrupt(PhaseHeader, 0, "unexpected end of stream inside header")
		}
		if c == 0 || isLineBreak(c) {
			continue
		}
		window = append(window, c)
	}

	terminator, err := r.readTerminator()
	if err != nil {
		return "", false, err
	}

	version := string(window[versionStart:versionEnd])
	delims, err := delimitersFromHeader(window, terminator, version)
	if err != nil {
		var ide *invalidDelimiterError
		if errors.As(err, &ide) {
			return "", false, r.corrupt(PhaseDelimiters, ide.char, err.Error())
		}
		return "", false, err
	}

	r.delims = delims
	r.version = version
	r.state = StateInBody

	header := string(window)
	r.buf = window[:0]
	return header, true, nil
}

// readTerminator reads the character following the 105th header character.
//
// A line break here is ambiguous: it is either the real terminator or a wrap
// in front of it. A real terminator is followed by the next segment tag, so a
// line break followed by 'G' is the terminator and the 'G' stays unread.
// Otherwise the line break is dropped and the following character is the
// terminator.
func (r *SegmentReader) readTerminator() (rune, error) {
	var c rune
	for {
		var ok bool
		c, ok = r.next()
		if !ok {
			return 0, r.corrupt(PhaseHeader, 0, "unexpected end of stream inside header")
		}
		if c == 0 {
			continue
		}
		if !isLineBreak(c) {
			return c, nil
		}
		break
	}

	// CRLF counts as a single line break.
	if p, ok := r.stream.PeekChar(); ok && c == '\r' && p == '\n' {
		r.next()
	}
	// NULs between the wrap and the next character are never data.
	for {
		p, ok := r.stream.PeekChar()
		if !ok || p != 0 {
			break
		}
		r.next()
	}

	p, ok := r.stream.PeekChar()
	if !ok || p == 'G' {
		return '\n', nil
	}
	r.next()
	return p, nil
}
