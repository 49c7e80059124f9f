// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook reads notebook documents into types.Notebook values.
//
// The document is read as generic JSON and only the fields the transcoder
// needs are picked out. Both the current flat
// cells layout and the legacy worksheets layout are accepted, and a cell's
// text may live under either source or input, as a string or a list of lines.
package notebook

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/nbtopy/pkg/types"
)

// Sentinel errors for notebook parsing.
var (
	// ErrMalformed means the input could not be read or is not valid UTF-8
	// JSON.
	ErrMalformed = errors.New("malformed notebook")
	// ErrNotANotebook means the input is JSON but has neither cells nor
	// worksheets.
	ErrNotANotebook = errors.New("not a notebook")
)

// ReadFile reads and parses the notebook at path. Read failures are reported
// as ErrMalformed so callers treat them like any other unusable input.
func ReadFile(path string) (*types.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Parse(data)
}

// Parse decodes a notebook document. It fails only when data is not UTF-8
// JSON; a JSON value without notebook structure parses to an empty Notebook
// and is rejected later by Flatten.
func Parse(data []byte) (*types.Notebook, error) {
	if !utf8.Valid(data) || !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}

	root := gjson.ParseBytes(data)
	nb := &types.Notebook{}
	if !root.IsObject() {
		return nb, nil
	}

	if cells := root.Get("cells"); cells.IsArray() {
		nb.Cells = parseCells(cells)
	}

	if sheets := root.Get("worksheets"); sheets.IsArray() {
		nb.Worksheets = make([]types.Worksheet, 0, len(sheets.Array()))
		sheets.ForEach(func(_, ws gjson.Result) bool {
			nb.Worksheets = append(nb.Worksheets, types.Worksheet{
				Cells: parseCells(ws.Get("cells")),
			})
			return true
		})
	}

	return nb, nil
}

// Flatten reduces a notebook to its ordered cell list. Top-level cells win;
// otherwise the cells of each worksheet are concatenated in order.
func Flatten(nb *types.Notebook) ([]types.Cell, error) {
	if nb == nil {
		return nil, ErrNotANotebook
	}
	if nb.Cells != nil {
		return nb.Cells, nil
	}
	if nb.Worksheets == nil {
		return nil, ErrNotANotebook
	}

	cells := []types.Cell{}
	for _, ws := range nb.Worksheets {
		cells = append(cells, ws.Cells...)
	}
	return cells, nil
}

// parseCells returns nil unless list is a JSON array.
func parseCells(list gjson.Result) []types.Cell {
	if !list.IsArray() {
		return nil
	}
	items := list.Array()
	cells := make([]types.Cell, 0, len(items))
	for _, item := range items {
		cells = append(cells, parseCell(item))
	}
	return cells
}

func parseCell(item gjson.Result) types.Cell {
	if !item.IsObject() {
		return types.Cell{}
	}

	var cell types.Cell
	if ct := item.Get("cell_type"); ct.Type == gjson.String {
		cell.Type = types.CellType(ct.Str)
	}

	// An empty source falls back to input, as legacy code cells keep their
	// text there.
	cell.Source = sourceOf(item.Get("source"))
	if isEmpty(cell.Source) {
		cell.Source = sourceOf(item.Get("input"))
	}
	return cell
}

func sourceOf(v gjson.Result) types.CellSource {
	switch {
	case v.Type == gjson.String:
		return types.EscapedSource(v.Str)
	case v.IsArray():
		items := v.Array()
		lines := make([]string, len(items))
		for i, line := range items {
			lines[i] = line.String()
		}
		return types.LineSource(lines)
	default:
		return types.CellSource{}
	}
}

func isEmpty(s types.CellSource) bool {
	switch s.Kind {
	case types.SourceEscaped:
		return s.Text == ""
	case types.SourceLines:
		return len(s.Lines) == 0
	default:
		return true
	}
}
