// source.go — immutable source buffers and offset → line/column math.
//
// WHAT THIS FILE PROVIDES
// =======================
// A Source owns one input text plus a precomputed index of line starts,
// so that a raw byte offset into a large (possibly shared) buffer can be
// rendered as file:line:col without rescanning the whole buffer.
//
// The index stores the offset immediately following every newline byte
// and deliberately omits the implicit start of line 0 to save memory.
// Offset lookups binary-search the index (O(log lines)); only the
// tab-expanded column needs a forward scan, and that scan is bounded by
// the length of one line, never the file.
//
// OWNERSHIP & CONCURRENCY
// =======================
// The buffer is never mutated after construction; a Source may alias a
// buffer owned elsewhere (a memory-mapped region, a caller's slice) and
// the contents must stay immutable for the Source's lifetime. Because a
// Source is read-only after NewSource returns, any number of goroutines
// may query or parse it concurrently with no locking.
//
// COORDINATE CONVENTION
// =====================
// Internal math is 0-based: LineAndIndex.Line counts lines from 0 and
// columns accumulate from 0 during tab expansion. LineAndColumn holds
// the 1-based display values, produced at conversion time; everything
// rendered to humans (Location.String, ParseError) is therefore 1-based.
package jsonsrc

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// DefaultTabSize is the tab width used for column display when the
// caller does not pass an explicit one.
const DefaultTabSize = 8

// Source is an immutable in-memory input text plus its line-start index.
type Source struct {
	FileName string
	Contents []byte

	// Offsets following each newline byte, strictly increasing.
	// The start of line 0 (offset 0) is not stored.
	lineStartIndexes []int
}

// LineAndIndex is the 0-based line containing an offset and the offset
// of that line's first byte.
type LineAndIndex struct {
	Line  int
	Index int
}

// LineAndColumn is a 1-based display position. Column is the visual
// column after tab expansion, not the byte offset within the line.
type LineAndColumn struct {
	Line   int
	Column int
}

func (lc LineAndColumn) String() string {
	return strconv.Itoa(lc.Line) + ":" + strconv.Itoa(lc.Column)
}

// FindLineStartIndexes scans contents once and records the offset
// following every newline byte. Offsets equal to len(contents) are not
// recorded: every returned entry is a valid index into contents.
func FindLineStartIndexes(contents []byte) []int {
	var indexes []int
	for i := 0; i < len(contents); i++ {
		if contents[i] == '\n' && i+1 < len(contents) {
			indexes = append(indexes, i+1)
		}
	}
	return indexes
}

// NewSource wraps an already-loaded buffer. The buffer may be shared;
// it must not be mutated afterwards. The line index is built here, once.
func NewSource(fileName string, contents []byte) *Source {
	return &Source{
		FileName:         fileName,
		Contents:         contents,
		lineStartIndexes: FindLineStartIndexes(contents),
	}
}

// NewSourceString is NewSource over a string buffer.
func NewSourceString(fileName, contents string) *Source {
	return NewSource(fileName, []byte(contents))
}

// NewSourceName creates a name-only Source with no contents. It is
// valid everywhere a Source is accepted and HasContents reports false.
func NewSourceName(fileName string) *Source {
	return &Source{FileName: fileName}
}

// HasContents reports whether the Source carries a buffer.
func (s *Source) HasContents() bool { return s != nil && s.Contents != nil }

// Size returns the buffer length in bytes.
func (s *Source) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Contents)
}

// GetLineAndStartIndex returns the 0-based line containing charIndex
// and the offset of that line's first byte, by binary search over the
// line-start index.
func (s *Source) GetLineAndStartIndex(charIndex int) LineAndIndex {
	if s == nil {
		return LineAndIndex{}
	}
	// Number of recorded line starts ≤ charIndex. Recorded starts are
	// the starts of lines 1..n, so the count is the line number itself.
	n := sort.Search(len(s.lineStartIndexes), func(i int) bool {
		return s.lineStartIndexes[i] > charIndex
	})
	if n == 0 {
		return LineAndIndex{Line: 0, Index: 0}
	}
	return LineAndIndex{Line: n, Index: s.lineStartIndexes[n-1]}
}

// GetLineAndColumn converts a byte offset to a 1-based display
// line/column, expanding tabs: a tab at 0-based column c advances to
// ((c/tabSize)+1)*tabSize. The forward scan covers at most one line.
func (s *Source) GetLineAndColumn(charIndex, tabSize int) LineAndColumn {
	if s == nil {
		return LineAndColumn{}
	}
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	li := s.GetLineAndStartIndex(charIndex)
	end := charIndex
	if end > len(s.Contents) {
		end = len(s.Contents)
	}
	column := 0
	for i := li.Index; i < end; i++ {
		if s.Contents[i] == '\t' {
			column = (column/tabSize + 1) * tabSize
		} else {
			column++
		}
	}
	return LineAndColumn{Line: li.Line + 1, Column: column + 1}
}

// LoadFile reads an entire file into a new Source. Failures are I/O
// errors, distinct from *ParseError.
func LoadFile(fileName string) (*Source, error) {
	contents, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fileName, err)
	}
	return NewSource(fileName, contents), nil
}

// LoadStdin reads all of standard input into a new Source named "stdin".
func LoadStdin() (*Source, error) {
	contents, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("load stdin: %w", err)
	}
	return NewSource("stdin", contents), nil
}
