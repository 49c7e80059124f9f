// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nbtopy/internal/notebook"
	"github.com/pdiddy/nbtopy/pkg/types"
)

const header = "\n## Built from nb.ipynb by nbtopy ##\n"

func code(lines ...string) types.Cell {
	return types.Cell{Type: types.CellCode, Source: types.LineSource(lines)}
}

func markdown(lines ...string) types.Cell {
	return types.Cell{Type: types.CellMarkdown, Source: types.LineSource(lines)}
}

func transcodeCells(t *testing.T, opts types.ConvertOptions, cells ...types.Cell) Output {
	t.Helper()
	out, err := Transcode(&types.Notebook{Cells: cells}, opts, Framing{InputPath: "nb.ipynb", ToolName: "nbtopy"})
	require.NoError(t, err)
	return out
}

func TestTranscode(t *testing.T) {
	tests := []struct {
		name        string
		opts        types.ConvertOptions
		cells       []types.Cell
		wantBody    string
		wantHasCode bool
	}{
		{
			name:        "code cell lines are emitted unprefixed",
			cells:       []types.Cell{code("x = 1", "y = 2")},
			wantBody:    "\n# %%\nx = 1\ny = 2\n",
			wantHasCode: true,
		},
		{
			name:        "trailing newlines in line sequences are not duplicated",
			cells:       []types.Cell{code("x = 1\n", "y = 2\n")},
			wantBody:    "\n# %%\nx = 1\ny = 2\n",
			wantHasCode: true,
		},
		{
			name: "markdown from an escaped string is commented",
			cells: []types.Cell{{
				Type:   types.CellMarkdown,
				Source: types.EscapedSource(`# Title\nSome text`),
			}},
			wantBody: "\n# %% [markdown]\n# # Title\n# Some text\n",
		},
		{
			name:     "blank markdown lines keep a bare comment marker",
			cells:    []types.Cell{markdown("para one\n", "\n", "para two")},
			wantBody: "\n# %% [markdown]\n# para one\n#\n# para two\n",
		},
		{
			name:     "heading cells have no section marker",
			cells:    []types.Cell{{Type: types.CellHeading, Source: types.LineSource([]string{"Intro"})}},
			wantBody: "\n# Intro\n",
		},
		{
			name:        "embedded line breaks become separate lines",
			cells:       []types.Cell{code("a = 1\nb = 2   ", "c = 3")},
			wantBody:    "\n# %%\na = 1\nb = 2\nc = 3\n",
			wantHasCode: true,
		},
		{
			name:        "leading line breaks of the first line are stripped",
			cells:       []types.Cell{code("\r\n\nx = 1", "\n", "y = 2")},
			wantBody:    "\n# %%\nx = 1\n\ny = 2\n",
			wantHasCode: true,
		},
		{
			name:        "trailing whitespace is trimmed",
			cells:       []types.Cell{code("x = 1 \t", "  indented  ")},
			wantBody:    "\n# %%\nx = 1\n  indented\n",
			wantHasCode: true,
		},
		{
			name:     "blank cells are dropped by default",
			cells:    []types.Cell{code("   ", ""), markdown("text")},
			wantBody: "\n# %% [markdown]\n# text\n",
		},
		{
			name:        "information separators are trimmed like whitespace",
			cells:       []types.Cell{code("x = 1\x1f", "\x1c")},
			wantBody:    "\n# %%\nx = 1\n\n",
			wantHasCode: true,
		},
		{
			name:     "cells of information separators are blank",
			cells:    []types.Cell{code("\x1c\x1f"), markdown("text")},
			wantBody: "\n# %% [markdown]\n# text\n",
		},
		{
			name:        "blank cells are kept with include-empty",
			opts:        types.ConvertOptions{IncludeEmpty: true},
			cells:       []types.Cell{code("   ", "")},
			wantBody:    "\n# %%\n\n\n",
			wantHasCode: true,
		},
		{
			name:        "cells without source are skipped",
			opts:        types.ConvertOptions{IncludeEmpty: true},
			cells:       []types.Cell{{Type: types.CellCode}, code("x")},
			wantBody:    "\n# %%\nx\n",
			wantHasCode: true,
		},
		{
			name:     "unknown cell types are skipped",
			cells:    []types.Cell{{Type: "raw", Source: types.LineSource([]string{"raw text"})}},
			wantBody: "",
		},
		{
			name:        "no-code-tag and no-markdown-tag",
			opts:        types.ConvertOptions{NoCodeTag: true, NoMarkdownTag: true},
			cells:       []types.Cell{markdown("Notes"), code("x = 1")},
			wantBody:    "\n# Notes\n\nx = 1\n",
			wantHasCode: true,
		},
		{
			name:        "no-markdown drops markdown cells",
			opts:        types.ConvertOptions{NoMarkdown: true},
			cells:       []types.Cell{markdown("Notes"), code("x = 1")},
			wantBody:    "\n# %%\nx = 1\n",
			wantHasCode: true,
		},
		{
			name:     "only markdown has no code",
			cells:    []types.Cell{markdown("a"), markdown("b")},
			wantBody: "\n# %% [markdown]\n# a\n\n# %% [markdown]\n# b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := transcodeCells(t, tt.opts, tt.cells...)
			assert.Equal(t, header+tt.wantBody, out.Text)
			assert.Equal(t, tt.wantHasCode, out.HasCode)
		})
	}
}

func TestTranscode_Framing(t *testing.T) {
	nb := &types.Notebook{Cells: []types.Cell{code("x = 1")}}

	out, err := Transcode(nb, types.ConvertOptions{}, Framing{InputPath: "dir/a.ipynb", ToolName: "nbtopy", Interpreter: true})
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env python3\n## Built from dir/a.ipynb by nbtopy ##\n\n# %%\nx = 1\n", out.Text)

	out, err = Transcode(nb, types.ConvertOptions{}, Framing{InputPath: "a.ipynb"})
	require.NoError(t, err)
	assert.Equal(t, "\n## Built from a.ipynb by nbtopy ##\n\n# %%\nx = 1\n", out.Text)
}

func TestTranscode_WorksheetsMatchFlatCells(t *testing.T) {
	a := code("import os")
	b := markdown("Done")
	f := Framing{InputPath: "nb.ipynb", Interpreter: true}

	flat, err := Transcode(&types.Notebook{Cells: []types.Cell{a, b}}, types.ConvertOptions{}, f)
	require.NoError(t, err)

	legacy, err := Transcode(&types.Notebook{
		Worksheets: []types.Worksheet{{Cells: []types.Cell{a}}, {Cells: []types.Cell{b}}},
	}, types.ConvertOptions{}, f)
	require.NoError(t, err)

	assert.Equal(t, flat, legacy)
}

func TestTranscode_NotANotebook(t *testing.T) {
	_, err := Transcode(&types.Notebook{}, types.ConvertOptions{}, Framing{})
	assert.ErrorIs(t, err, notebook.ErrNotANotebook)
}

func TestTranscode_Deterministic(t *testing.T) {
	nb, err := notebook.Parse([]byte(`{"cells": [
		{"cell_type": "markdown", "source": ["# Report\n", "\n", "Numbers below."]},
		{"cell_type": "code", "source": ["total = 0\n", "for i in range(3):\n", "    total += i"]}
	]}`))
	require.NoError(t, err)

	first, err := Transcode(nb, types.ConvertOptions{}, Framing{InputPath: "r.ipynb", Interpreter: true})
	require.NoError(t, err)
	second, err := Transcode(nb, types.ConvertOptions{}, Framing{InputPath: "r.ipynb", Interpreter: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "#!/usr/bin/env python3\n## Built from r.ipynb by nbtopy ##\n"+
		"\n# %% [markdown]\n# # Report\n#\n# Numbers below.\n"+
		"\n# %%\ntotal = 0\nfor i in range(3):\n    total += i\n", first.Text)
}

func TestOutput_Digest(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Output{}.Digest())
	assert.NotEqual(t, Output{Text: "a"}.Digest(), Output{Text: "b"}.Digest())
}
