// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CellType is the value of a cell's cell_type field.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	// CellHeading only appears in notebooks written before nbformat 4.
	CellHeading CellType = "heading"
)

// SourceKind tags which variant a CellSource holds.
type SourceKind int

const (
	// SourceNone marks a cell with no usable source or input field.
	SourceNone SourceKind = iota
	// SourceEscaped is a single string whose line breaks may be written as
	// the two characters backslash and 'n'.
	SourceEscaped
	// SourceLines is an ordered sequence of line strings.
	SourceLines
)

// CellSource holds the literal text of a cell in one of the two shapes
// notebook writers use. Only the field matching Kind is meaningful.
type CellSource struct {
	Kind  SourceKind `json:"kind" yaml:"kind"`
	Text  string     `json:"text,omitempty" yaml:"text,omitempty"`
	Lines []string   `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// EscapedSource returns a CellSource holding a single string.
func EscapedSource(text string) CellSource {
	return CellSource{Kind: SourceEscaped, Text: text}
}

// LineSource returns a CellSource holding a sequence of lines.
func LineSource(lines []string) CellSource {
	return CellSource{Kind: SourceLines, Lines: lines}
}

// Present reports whether the cell carried a source at all.
func (s CellSource) Present() bool {
	return s.Kind != SourceNone
}

// Cell is one unit of a notebook. Cells are read, never mutated.
type Cell struct {
	Type   CellType   `json:"cell_type" yaml:"cell_type"`
	Source CellSource `json:"source" yaml:"source"`
}

// Worksheet is the legacy container that held cells before nbformat 4.
type Worksheet struct {
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Notebook is a parsed notebook document.
//
// Cells is nil when the document has no top-level cells key, and Worksheets
// is nil when it has no worksheets key. An empty but present list is a
// non-nil empty slice.
type Notebook struct {
	Cells      []Cell      `json:"cells,omitempty" yaml:"cells,omitempty"`
	Worksheets []Worksheet `json:"worksheets,omitempty" yaml:"worksheets,omitempty"`
}
