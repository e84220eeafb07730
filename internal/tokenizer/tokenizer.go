package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewElementTokenizer creates a tokenizer for the inside of one bare segment.
// The tokenizer matches X12 element tokens in order of specificity:
//  1. Element separator
//  2. Component separator
//  3. Repeat separator (only when the interchange has one)
//  4. Data (any run of non-delimiter characters)
//
// Whitespace is significant in X12 (the ISA header pads with spaces), so the
// tokenizer never skips it.
func NewElementTokenizer(d Delimiters) tokenizer.Tokenizer {
	matchers := []tokenizer.Matcher{
		tokenizer.StringMatcherFunc(TokenElementSep, string(d.Element)),
		tokenizer.StringMatcherFunc(TokenComponentSep, string(d.Component)),
	}
	if d.HasRepeat() {
		matchers = append(matchers, tokenizer.StringMatcherFunc(TokenRepetitionSep, string(d.Repeat)))
	}
	matchers = append(matchers, DataMatcher(d))

	return tokenizer.NewTokenizerWithoutWhitespace(matchers...)
}

// NewElementTokenizerWithStream creates an element tokenizer from a pre-configured stream.
func NewElementTokenizerWithStream(stream tokenizer.Stream, d Delimiters) tokenizer.Tokenizer {
	tok := NewElementTokenizer(d)
	tok.InitializeFromStream(stream)
	return tok
}

// DataMatcher creates a matcher for element data.
// Matches runs of characters that are none of the element, component or
// repetition separators.
//
// Grammar:
//
//	Data = Character+ ;
//	Character = <any character except element, component or repetition separator> ;
//
// Performance: Uses ByteStream for fast ASCII scanning when available.
func DataMatcher(d Delimiters) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if d.Element < 128 && d.Component < 128 && d.Repeat < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return dataMatcherByte(byteStream, d)
			}
		}
		return dataMatcherRune(stream, d)
	}
}

// dataMatcherByte uses ByteStream for optimal performance.
func dataMatcherByte(stream tokenizer.ByteStream, d Delimiters) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		if d.isSeparator(rune(b)) {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenData, []rune(string(value)))
}

// dataMatcherRune is the fallback rune-based implementation.
func dataMatcherRune(stream tokenizer.Stream, d Delimiters) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if d.isSeparator(r) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenData, value)
}

// isSeparator reports whether r splits elements, components or repetitions.
func (d Delimiters) isSeparator(r rune) bool {
	return r == d.Element || r == d.Component || (d.HasRepeat() && r == d.Repeat)
}
