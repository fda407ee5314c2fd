// location.go — a (Source, byte offset) pair that renders as file:line:col.
package jsonsrc

import "strings"

// Location references a position inside a Source. The reference is
// non-owning: a Location must not outlive its Source. The zero value
// has no Source and renders as "<unknown>:0:0".
type Location struct {
	Source    *Source
	CharIndex int
}

// GetLineAndStartIndex delegates to the Source, or returns the zero
// value when there is none.
func (l Location) GetLineAndStartIndex() LineAndIndex {
	if l.Source == nil {
		return LineAndIndex{}
	}
	return l.Source.GetLineAndStartIndex(l.CharIndex)
}

// GetLineAndColumn delegates to the Source, or returns the zero value
// when there is none.
func (l Location) GetLineAndColumn(tabSize int) LineAndColumn {
	if l.Source == nil {
		return LineAndColumn{}
	}
	return l.Source.GetLineAndColumn(l.CharIndex, tabSize)
}

// appendToString writes "<file-or-<unknown>>:<line>:<column>".
func (l Location) appendToString(b *strings.Builder, tabSize int) {
	if l.Source == nil || l.Source.FileName == "" {
		b.WriteString("<unknown>")
	} else {
		b.WriteString(l.Source.FileName)
	}
	b.WriteByte(':')
	b.WriteString(l.GetLineAndColumn(tabSize).String())
}

func (l Location) String() string {
	var b strings.Builder
	l.appendToString(&b, DefaultTabSize)
	return b.String()
}
