// options.go — grammar toggles selecting strict vs. relaxed JSON.
package jsonsrc

// ParseOptions is an immutable set of grammar relaxations. The zero
// value is strict JSON per RFC 8259. Options are always passed as
// explicit values; nothing in this package consults a global.
type ParseOptions struct {
	// Accept the number literals Infinity, -Infinity and NaN.
	AllowInfinityAndNaN bool
	// Accept an explicit leading '+' on a number. The '+' in an
	// exponent is always legal; this governs only the mantissa.
	AllowExplicitPlusSignInMantissa bool
	// Accept single-quoted strings in addition to double-quoted ones.
	AllowSingleQuoteStrings bool
	// Accept a number starting with '.' and no integer digits.
	AllowNumberToStartWithDot bool
}

// DefaultOptions is strict RFC 8259 JSON: all relaxations off.
func DefaultOptions() ParseOptions { return ParseOptions{} }

// RelaxedOptions enables every relaxation.
func RelaxedOptions() ParseOptions {
	return ParseOptions{
		AllowInfinityAndNaN:             true,
		AllowExplicitPlusSignInMantissa: true,
		AllowSingleQuoteStrings:         true,
		AllowNumberToStartWithDot:       true,
	}
}
