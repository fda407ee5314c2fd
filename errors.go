// errors.go: parse errors and caret-snippet rendering
//
// What this file does
// -------------------
// Defines *ParseError, the single error kind raised by the tokenizer
// and value parser, and turns one into a readable snippet with a caret
// pointing at the offending column:
//
//	config.json:3:12: expected ',' or '}' in object
//
//	   2 |   "a": 1
//	   3 |   "b" 2
//	     |       ^
//	   4 | }
//
// Behavior guarantees
// -------------------
//   - A ParseError's message string is fully formatted at construction
//     ("file:line:col: message"); errors are exceptional and rare, so
//     the eager cost is acceptable and Error() is allocation free.
//   - Errors raised where the input ran out are marked incomplete;
//     IsIncomplete recognizes them. REPLs use this to keep reading
//     continuation lines instead of reporting a hard failure.
//   - WrapErrorWithSnippet leaves non-ParseError errors untouched.
package jsonsrc

import (
	"errors"
	"fmt"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// ParseError is a syntax violation at a Location. The rendered string
// is computed once, when the error is constructed.
type ParseError struct {
	Location Location
	Msg      string

	formatted  string
	incomplete bool
}

func (e *ParseError) Error() string { return e.formatted }

// IsIncomplete reports whether err is a *ParseError raised because the
// input ended where more was expected (premature end of input,
// unterminated string, unfinished escape).
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.incomplete
}

// WrapErrorWithSnippet returns an error whose message is a multi-line,
// caret-annotated excerpt of the source around err's location. It
// recognizes *ParseError and returns every other error unchanged.
// Output is plain text; coloring is left to callers.
func WrapErrorWithSnippet(err error) error {
	return WrapErrorWithSnippetTab(err, DefaultTabSize)
}

// WrapErrorWithSnippetTab is WrapErrorWithSnippet with an explicit tab
// width. The header line:col and the caret are both recomputed under
// tabSize, so they stay consistent with each other.
func WrapErrorWithSnippetTab(err error, tabSize int) error {
	var pe *ParseError
	if !errors.As(err, &pe) || !pe.Location.Source.HasContents() {
		return err
	}
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	var header strings.Builder
	pe.Location.appendToString(&header, tabSize)
	header.WriteString(": ")
	header.WriteString(pe.Msg)
	lc := pe.Location.GetLineAndColumn(tabSize)
	return fmt.Errorf("%s", snippetString(string(pe.Location.Source.Contents), header.String(), lc.Line, lc.Column))
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: construction & rendering
   =========================== */

func newParseError(location Location, msg string) *ParseError {
	return &ParseError{
		Location:  location,
		Msg:       msg,
		formatted: location.String() + ": " + msg,
	}
}

func newIncompleteError(location Location, msg string) *ParseError {
	e := newParseError(location, msg)
	e.incomplete = true
	return e
}

// snippetString builds the caret snippet: header, up to one line of
// context before and after, and a caret under the 1-based column. Out
// of range coordinates are clamped so rendering never fails.
func snippetString(src, header string, line, col int) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	// col is a display column and may exceed the line's byte length
	// when tabs expand; the caret padding must not be clamped to it.
	lineTxt := lines[line-1]

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
