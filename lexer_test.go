// lexer_test.go
package jsonsrc

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func scanAll(t *testing.T, src string, opts ParseOptions) []Token {
	t.Helper()
	tz := NewTokenizer(NewSourceString("test", src), opts)
	var out []Token
	for {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("Next error on %q: %v", src, err)
		}
		if tok.Type == TokenEOF {
			return out
		}
		out = append(out, tok)
	}
}

func scanTypes(t *testing.T, src string, opts ParseOptions) []TokenType {
	t.Helper()
	toks := scanAll(t, src, opts)
	out := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Type)
	}
	return out
}

// scanErr scans until the expected error and returns it.
func scanErr(t *testing.T, src string, opts ParseOptions) *ParseError {
	t.Helper()
	tz := NewTokenizer(NewSourceString("test", src), opts)
	for {
		tok, err := tz.Next()
		if err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error is not a *ParseError: %v", err)
			}
			return pe
		}
		if tok.Type == TokenEOF {
			t.Fatalf("no error scanning %q", src)
		}
	}
}

func Test_Tokenizer_Punctuation(t *testing.T) {
	want := []TokenType{TokenLCurly, TokenRCurly, TokenLSquare, TokenRSquare, TokenColon, TokenComma}
	got := scanTypes(t, " { } [ ] : , ", DefaultOptions())
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func Test_Tokenizer_Keywords(t *testing.T) {
	want := []TokenType{TokenTrue, TokenFalse, TokenNull}
	got := scanTypes(t, "true false null", DefaultOptions())
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func Test_Tokenizer_TokenOffsets(t *testing.T) {
	toks := scanAll(t, ` {"a": 10}`, DefaultOptions())
	wantIdx := []int{1, 2, 5, 7, 9}
	if len(toks) != len(wantIdx) {
		t.Fatalf("token count %d, want %d", len(toks), len(wantIdx))
	}
	for i, tok := range toks {
		if tok.Index != wantIdx[i] {
			t.Fatalf("token %d index %d, want %d", i, tok.Index, wantIdx[i])
		}
	}
}

func Test_Tokenizer_Strings(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"q\"s\\\/"`, `q"s\/`},
		{`"\b\f\r"`, "\b\f\r"},
		{`"Aé"`, "Aé"},
		{`"😀"`, "😀"},
		{`"héllo"`, "héllo"}, // raw UTF-8 passes through
		{`"\u0041"`, "A"},
		{`"\u00e9"`, "é"},
		{`"\u270C"`, "✌"},
		{`"\uD83D\uDE00"`, "😀"}, // surrogate pair combines to one code point
		{`"A\uD83D\uDE00"`, "A😀"},
	}
	for _, c := range cases {
		toks := scanAll(t, c.src, DefaultOptions())
		if len(toks) != 1 || toks[0].Type != TokenString {
			t.Fatalf("scan %q: %v", c.src, toks)
		}
		if toks[0].Str != c.want {
			t.Fatalf("scan %q = %q, want %q", c.src, toks[0].Str, c.want)
		}
	}
}

func Test_Tokenizer_String_Errors(t *testing.T) {
	cases := []struct {
		src       string
		wantIndex int
	}{
		{`"a\x"`, 3},             // invalid escape at the 'x'
		{`"a` + "\x01" + `"`, 2}, // literal control character
		{`"\uZZZZ"`, 3},          // bad hex digit
		{`"\uD800x"`, 7},         // high surrogate not followed by an escape
		{`"\uD800A"`, 7},         // high surrogate followed by a non-low escape
		{`"\uDC00"`, 1},          // lone low surrogate, reported at the escape
	}
	for _, c := range cases {
		pe := scanErr(t, c.src, DefaultOptions())
		if pe.Location.CharIndex != c.wantIndex {
			t.Fatalf("scan %q: error at %d (%v), want index %d", c.src, pe.Location.CharIndex, pe, c.wantIndex)
		}
	}
}

func Test_Tokenizer_String_Unterminated_AtEndOfBuffer(t *testing.T) {
	src := `"abc`
	pe := scanErr(t, src, DefaultOptions())
	if pe.Location.CharIndex != len(src) {
		t.Fatalf("error at %d, want end of buffer %d", pe.Location.CharIndex, len(src))
	}
	if !IsIncomplete(pe) {
		t.Fatal("unterminated string should be incomplete")
	}
}

func Test_Tokenizer_SingleQuotes(t *testing.T) {
	pe := scanErr(t, `'abc'`, DefaultOptions())
	if pe.Location.CharIndex != 0 {
		t.Fatalf("error at %d, want 0", pe.Location.CharIndex)
	}

	toks := scanAll(t, `'a"b'`, RelaxedOptions())
	if len(toks) != 1 || toks[0].Str != `a"b` {
		t.Fatalf("relaxed single-quote scan: %v", toks)
	}
	// The closing quote must match the opening one.
	pe = scanErr(t, `'abc`, RelaxedOptions())
	if !IsIncomplete(pe) {
		t.Fatalf("unmatched quote should run to end of buffer: %v", pe)
	}
}

func Test_Tokenizer_Numbers(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"-0", 0},
		{"7", 7},
		{"-12", -12},
		{"10.25", 10.25},
		{"1e3", 1000},
		{"2E-2", 0.02},
		{"1.5e+2", 150},
		{"0.5", 0.5},
	}
	for _, c := range cases {
		toks := scanAll(t, c.src, DefaultOptions())
		if len(toks) != 1 || toks[0].Type != TokenNumber {
			t.Fatalf("scan %q: %v", c.src, toks)
		}
		if toks[0].Num != c.want {
			t.Fatalf("scan %q = %v, want %v", c.src, toks[0].Num, c.want)
		}
	}
}

func Test_Tokenizer_Number_Errors(t *testing.T) {
	cases := []struct {
		src       string
		wantIndex int
	}{
		{"01", 1},   // leading zero
		{"1.", 2},   // missing fraction digits
		{"1.e5", 2}, // fraction digits required even before an exponent
		{"1e", 2},   // missing exponent digits
		{"1e+", 3},  // sign but no digits
		{"-", 1},    // sign alone
		{"-x", 1},   // sign followed by junk
	}
	for _, c := range cases {
		pe := scanErr(t, c.src, DefaultOptions())
		if pe.Location.CharIndex != c.wantIndex {
			t.Fatalf("scan %q: error at %d (%v), want index %d", c.src, pe.Location.CharIndex, pe, c.wantIndex)
		}
	}
}

func Test_Tokenizer_RelaxedNumbers(t *testing.T) {
	strictFails := []string{"+1e5", ".5", "NaN", "Infinity", "-Infinity"}
	for _, src := range strictFails {
		scanErr(t, src, DefaultOptions())
	}

	relaxed := RelaxedOptions()
	if toks := scanAll(t, "+1e5", relaxed); toks[0].Num != 1e5 {
		t.Fatalf("+1e5 = %v", toks[0].Num)
	}
	if toks := scanAll(t, ".5", relaxed); toks[0].Num != 0.5 {
		t.Fatalf(".5 = %v", toks[0].Num)
	}
	if toks := scanAll(t, "-.25", relaxed); toks[0].Num != -0.25 {
		t.Fatalf("-.25 = %v", toks[0].Num)
	}
	if toks := scanAll(t, "NaN", relaxed); !math.IsNaN(toks[0].Num) {
		t.Fatalf("NaN = %v", toks[0].Num)
	}
	if toks := scanAll(t, "Infinity", relaxed); !math.IsInf(toks[0].Num, 1) {
		t.Fatalf("Infinity = %v", toks[0].Num)
	}
	if toks := scanAll(t, "-Infinity", relaxed); !math.IsInf(toks[0].Num, -1) {
		t.Fatalf("-Infinity = %v", toks[0].Num)
	}
}

func Test_Tokenizer_ExponentPlus_AlwaysLegal(t *testing.T) {
	// The plus-sign option governs the mantissa, not the exponent.
	toks := scanAll(t, "1e+5", DefaultOptions())
	if len(toks) != 1 || toks[0].Num != 1e5 {
		t.Fatalf("1e+5: %v", toks)
	}
}

func Test_Tokenizer_InvalidLiteral(t *testing.T) {
	pe := scanErr(t, "nul", DefaultOptions())
	if pe.Location.CharIndex != 0 {
		t.Fatalf("error at %d, want 0", pe.Location.CharIndex)
	}
	pe = scanErr(t, "@", DefaultOptions())
	if pe.Location.CharIndex != 0 {
		t.Fatalf("error at %d, want 0", pe.Location.CharIndex)
	}
}

func Test_Tokenizer_EOFToken(t *testing.T) {
	tz := NewTokenizer(NewSourceString("test", "  \r\n\t "), DefaultOptions())
	tok, err := tz.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Type != TokenEOF || tok.Index != 6 {
		t.Fatalf("got %+v, want EOF at 6", tok)
	}
}
