// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcode turns a notebook into an interactive script: code cells
// become plain code after a "# %%" marker, markdown and heading cells become
// comment blocks. The output is a pure function of the notebook, the options,
// and the framing, so converting the same input twice yields identical bytes.
package transcode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pdiddy/nbtopy/internal/notebook"
	"github.com/pdiddy/nbtopy/pkg/types"
)

// Literal markers written into the output.
const (
	InterpreterMarker = "#!/usr/bin/env python3"
	CodeTag           = "# %%\n"
	MarkdownTag       = "# %% [markdown]\n"
	CommentPrefix     = "# "
)

// DefaultToolName is used in the provenance comment when none is given.
const DefaultToolName = "nbtopy"

// Framing describes the lines written before the first cell.
type Framing struct {
	// InputPath is the source path named in the provenance comment.
	InputPath string
	// ToolName is the program named in the provenance comment.
	ToolName string
	// Interpreter adds the interpreter marker line at the very top.
	Interpreter bool
}

// Output is the result of transcoding one notebook.
type Output struct {
	Text string
	// HasCode is true when at least one code cell was emitted.
	HasCode bool
}

// Digest returns the hex SHA-256 of the output text.
func (o Output) Digest() string {
	sum := sha256.Sum256([]byte(o.Text))
	return hex.EncodeToString(sum[:])
}

// Transcode converts nb according to opts. It fails with
// notebook.ErrNotANotebook when nb has neither cells nor worksheets.
func Transcode(nb *types.Notebook, opts types.ConvertOptions, f Framing) (Output, error) {
	cells, err := notebook.Flatten(nb)
	if err != nil {
		return Output{}, err
	}

	tool := f.ToolName
	if tool == "" {
		tool = DefaultToolName
	}

	var b strings.Builder
	if f.Interpreter {
		b.WriteString(InterpreterMarker)
	}
	fmt.Fprintf(&b, "\n## Built from %s by %s ##\n", f.InputPath, tool)

	var out Output
	for _, cell := range cells {
		if !cell.Source.Present() {
			continue
		}

		lines := SourceLines(cell.Source)
		if isBlank(lines) && !opts.IncludeEmpty {
			continue
		}

		var header, prefix string
		switch cell.Type {
		case types.CellCode:
			out.HasCode = true
			if !opts.NoCodeTag {
				header = CodeTag
			}
		case types.CellMarkdown:
			if opts.NoMarkdown {
				continue
			}
			if !opts.NoMarkdownTag {
				header = MarkdownTag
			}
			prefix = CommentPrefix
		case types.CellHeading:
			prefix = CommentPrefix
		default:
			continue
		}

		b.WriteString("\n")
		b.WriteString(header)
		writeCell(&b, lines, prefix)
	}

	out.Text = b.String()
	return out, nil
}

// writeCell writes the lines of one cell, each prefixed and right-trimmed.
// Lines with embedded breaks are split into several output lines.
func writeCell(b *strings.Builder, lines []string, prefix string) {
	for i, line := range lines {
		if i == 0 {
			line = strings.TrimLeft(line, "\r\n")
		}
		for _, sub := range SplitLines(trimRight(line) + "\n") {
			b.WriteString(trimRight(prefix + sub))
			b.WriteByte('\n')
		}
	}
}

func isBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimFunc(line, isSpace) != "" {
			return false
		}
	}
	return true
}
