// lexer.go — on-demand tokenizer over a Source buffer.
package jsonsrc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// TokenEOF is produced at end of input; its Index is the buffer size.
	TokenEOF TokenType = iota

	// Punctuation
	TokenLCurly  // "{"
	TokenRCurly  // "}"
	TokenLSquare // "["
	TokenRSquare // "]"
	TokenColon   // ":"
	TokenComma   // ","

	// Literals
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenLCurly:
		return "'{'"
	case TokenRCurly:
		return "'}'"
	case TokenLSquare:
		return "'['"
	case TokenRSquare:
		return "']'"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenTrue:
		return "'true'"
	case TokenFalse:
		return "'false'"
	case TokenNull:
		return "'null'"
	}
	return "unknown token"
}

// Token is one lexical unit. Index is the byte offset of its first
// byte; Str carries the decoded value for TokenString and Num the
// numeric value for TokenNumber.
type Token struct {
	Type  TokenType
	Index int
	Str   string
	Num   float64
}

// Tokenizer scans a Source's buffer left to right, producing tokens on
// demand; no token list is materialized. The active ParseOptions gate
// every relaxed-grammar form. A Tokenizer never mutates the Source.
type Tokenizer struct {
	src  *Source
	buf  []byte
	cur  int
	opts ParseOptions
}

// NewTokenizer starts scanning src at offset 0.
func NewTokenizer(src *Source, opts ParseOptions) *Tokenizer {
	var buf []byte
	if src != nil {
		buf = src.Contents
	}
	return &Tokenizer{src: src, buf: buf, opts: opts}
}

// Next scans and returns the next token, skipping whitespace (space,
// tab, CR, LF). On a violation it returns a *ParseError located at the
// first offending byte.
func (tz *Tokenizer) Next() (Token, error) {
	tz.skipWhitespace()
	start := tz.cur
	if tz.isAtEnd() {
		return Token{Type: TokenEOF, Index: start}, nil
	}
	ch := tz.buf[tz.cur]
	switch ch {
	case '{':
		tz.cur++
		return Token{Type: TokenLCurly, Index: start}, nil
	case '}':
		tz.cur++
		return Token{Type: TokenRCurly, Index: start}, nil
	case '[':
		tz.cur++
		return Token{Type: TokenLSquare, Index: start}, nil
	case ']':
		tz.cur++
		return Token{Type: TokenRSquare, Index: start}, nil
	case ':':
		tz.cur++
		return Token{Type: TokenColon, Index: start}, nil
	case ',':
		tz.cur++
		return Token{Type: TokenComma, Index: start}, nil
	case '"':
		return tz.scanString('"')
	case '\'':
		if !tz.opts.AllowSingleQuoteStrings {
			return Token{}, tz.errAt(start, "single-quoted strings are not allowed")
		}
		return tz.scanString('\'')
	}
	if ch == '-' || ch == '+' || ch == '.' || isDigit(ch) {
		return tz.scanNumber()
	}
	if isAlpha(ch) {
		return tz.scanKeyword()
	}
	return Token{}, tz.errAt(start, fmt.Sprintf("unexpected character %q", rune(ch)))
}

// ----- position & error helpers -----

func (tz *Tokenizer) isAtEnd() bool { return tz.cur >= len(tz.buf) }

func (tz *Tokenizer) peek() (byte, bool) {
	if tz.isAtEnd() {
		return 0, false
	}
	return tz.buf[tz.cur], true
}

func (tz *Tokenizer) locationAt(index int) Location {
	return Location{Source: tz.src, CharIndex: index}
}

// errAt builds a *ParseError at the given offset. Errors at the end of
// the buffer are marked incomplete (see IsIncomplete).
func (tz *Tokenizer) errAt(index int, msg string) *ParseError {
	if index >= len(tz.buf) {
		return newIncompleteError(tz.locationAt(index), msg)
	}
	return newParseError(tz.locationAt(index), msg)
}

func (tz *Tokenizer) skipWhitespace() {
	for !tz.isAtEnd() {
		switch tz.buf[tz.cur] {
		case ' ', '\t', '\r', '\n':
			tz.cur++
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

// ----- scanners -----

// scanKeyword handles the literal words true, false, null and, when
// enabled, Infinity and NaN (which tokenize as numbers).
func (tz *Tokenizer) scanKeyword() (Token, error) {
	start := tz.cur
	for !tz.isAtEnd() && isAlpha(tz.buf[tz.cur]) {
		tz.cur++
	}
	word := string(tz.buf[start:tz.cur])
	switch word {
	case "true":
		return Token{Type: TokenTrue, Index: start}, nil
	case "false":
		return Token{Type: TokenFalse, Index: start}, nil
	case "null":
		return Token{Type: TokenNull, Index: start}, nil
	case "Infinity":
		if !tz.opts.AllowInfinityAndNaN {
			return Token{}, tz.errAt(start, "Infinity is not allowed")
		}
		return Token{Type: TokenNumber, Index: start, Num: math.Inf(1)}, nil
	case "NaN":
		if !tz.opts.AllowInfinityAndNaN {
			return Token{}, tz.errAt(start, "NaN is not allowed")
		}
		return Token{Type: TokenNumber, Index: start, Num: math.NaN()}, nil
	}
	return Token{}, tz.errAt(start, fmt.Sprintf("invalid literal %q", word))
}

// scanString scans a string literal delimited by quote. The closing
// quote must match the opening one. Escapes recognized: \" \\ \/ \b
// \f \n \r \t and \uXXXX, where a high surrogate must be immediately
// followed by a low surrogate escape.
func (tz *Tokenizer) scanString(quote byte) (Token, error) {
	start := tz.cur
	tz.cur++ // opening quote
	var b strings.Builder
	for {
		if tz.isAtEnd() {
			return Token{}, tz.errAt(tz.cur, "string missing terminating quote")
		}
		ch := tz.buf[tz.cur]
		switch {
		case ch == quote:
			tz.cur++
			return Token{Type: TokenString, Index: start, Str: b.String()}, nil
		case ch == '\\':
			if err := tz.scanEscape(&b); err != nil {
				return Token{}, err
			}
		case ch < 0x20:
			return Token{}, tz.errAt(tz.cur, "control character in string")
		default:
			// Non-ASCII UTF-8 passes through byte for byte.
			b.WriteByte(ch)
			tz.cur++
		}
	}
}

func (tz *Tokenizer) scanEscape(b *strings.Builder) error {
	tz.cur++ // backslash
	if tz.isAtEnd() {
		return tz.errAt(tz.cur, "unfinished escape sequence")
	}
	e := tz.buf[tz.cur]
	tz.cur++
	switch e {
	case '"', '\\', '/':
		b.WriteByte(e)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		return tz.scanUnicodeEscape(b)
	default:
		return tz.errAt(tz.cur-1, fmt.Sprintf("invalid escape sequence \\%c", rune(e)))
	}
	return nil
}

func (tz *Tokenizer) scanUnicodeEscape(b *strings.Builder) error {
	escStart := tz.cur - 2 // the backslash
	r1, err := tz.scanHex4()
	if err != nil {
		return err
	}
	switch {
	case r1 >= 0xD800 && r1 <= 0xDBFF:
		pairStart := tz.cur
		if !(tz.cur+1 < len(tz.buf) && tz.buf[tz.cur] == '\\' && tz.buf[tz.cur+1] == 'u') {
			return tz.errAt(tz.cur, "high surrogate must be followed by a low surrogate escape")
		}
		tz.cur += 2
		r2, err := tz.scanHex4()
		if err != nil {
			return err
		}
		if r2 < 0xDC00 || r2 > 0xDFFF {
			return tz.errAt(pairStart, "high surrogate must be followed by a low surrogate escape")
		}
		b.WriteRune(utf16.DecodeRune(rune(r1), rune(r2)))
	case r1 >= 0xDC00 && r1 <= 0xDFFF:
		return tz.errAt(escStart, "low surrogate without a preceding high surrogate")
	default:
		b.WriteRune(rune(r1))
	}
	return nil
}

func (tz *Tokenizer) scanHex4() (int, error) {
	v := 0
	for i := 0; i < 4; i++ {
		if tz.isAtEnd() {
			return 0, tz.errAt(tz.cur, "unfinished \\u escape")
		}
		d := hexVal(tz.buf[tz.cur])
		if d < 0 {
			return 0, tz.errAt(tz.cur, "expected a hex digit in \\u escape")
		}
		v = v*16 + d
		tz.cur++
	}
	return v, nil
}

// scanNumber runs the number state machine left to right: optional
// sign, integer part (single 0 or nonzero digit run), optional
// fraction, optional exponent. Option gates: '+' mantissa sign, a
// leading '.', and signed Infinity.
func (tz *Tokenizer) scanNumber() (Token, error) {
	start := tz.cur
	negative := false
	switch tz.buf[tz.cur] {
	case '+':
		if !tz.opts.AllowExplicitPlusSignInMantissa {
			return Token{}, tz.errAt(start, "a number may not start with '+'")
		}
		tz.cur++
	case '-':
		negative = true
		tz.cur++
	}

	// Signed Infinity; bare Infinity and NaN go through scanKeyword.
	if b, ok := tz.peek(); ok && isAlpha(b) {
		wordStart := tz.cur
		for !tz.isAtEnd() && isAlpha(tz.buf[tz.cur]) {
			tz.cur++
		}
		if string(tz.buf[wordStart:tz.cur]) == "Infinity" {
			if !tz.opts.AllowInfinityAndNaN {
				return Token{}, tz.errAt(start, "Infinity is not allowed")
			}
			n := math.Inf(1)
			if negative {
				n = math.Inf(-1)
			}
			return Token{Type: TokenNumber, Index: start, Num: n}, nil
		}
		return Token{}, tz.errAt(wordStart, "missing digits in number")
	}

	sawIntegerDigits := false
	if b, ok := tz.peek(); ok && isDigit(b) {
		sawIntegerDigits = true
		tz.cur++
		if b == '0' {
			if b2, ok := tz.peek(); ok && isDigit(b2) {
				return Token{}, tz.errAt(tz.cur, "leading zeros are not allowed")
			}
		} else {
			tz.digitRun()
		}
	}

	sawFraction := false
	if b, ok := tz.peek(); ok && b == '.' {
		if !sawIntegerDigits && !tz.opts.AllowNumberToStartWithDot {
			return Token{}, tz.errAt(tz.cur, "a number may not start with '.'")
		}
		tz.cur++
		if !tz.digitRun() {
			return Token{}, tz.errAt(tz.cur, "missing digits after decimal point")
		}
		sawFraction = true
	}

	if !sawIntegerDigits && !sawFraction {
		return Token{}, tz.errAt(tz.cur, "missing digits in number")
	}

	if b, ok := tz.peek(); ok && (b == 'e' || b == 'E') {
		tz.cur++
		// A sign here is always legal; the mantissa option does not
		// govern exponents.
		if b2, ok := tz.peek(); ok && (b2 == '+' || b2 == '-') {
			tz.cur++
		}
		if !tz.digitRun() {
			return Token{}, tz.errAt(tz.cur, "missing digits in exponent")
		}
	}

	lexeme := string(tz.buf[start:tz.cur])
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, tz.errAt(start, "invalid number "+strconv.Quote(lexeme))
	}
	return Token{Type: TokenNumber, Index: start, Num: n}, nil
}

// digitRun consumes a run of digits, reporting whether any were seen.
func (tz *Tokenizer) digitRun() bool {
	saw := false
	for {
		b, ok := tz.peek()
		if !ok || !isDigit(b) {
			return saw
		}
		saw = true
		tz.cur++
	}
}
