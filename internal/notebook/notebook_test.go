// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nbtopy/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *types.Notebook
		wantErr error
	}{
		{
			name:  "flat cells with line sequence and string sources",
			input: `{"nbformat": 4, "cells": [{"cell_type": "code", "source": ["x = 1\n", "y = 2"]}, {"cell_type": "markdown", "source": "# Title\\nSome text"}]}`,
			want: &types.Notebook{
				Cells: []types.Cell{
					{Type: types.CellCode, Source: types.LineSource([]string{"x = 1\n", "y = 2"})},
					{Type: types.CellMarkdown, Source: types.EscapedSource(`# Title\nSome text`)},
				},
			},
		},
		{
			name:  "legacy worksheets with input field",
			input: `{"nbformat": 3, "worksheets": [{"cells": [{"cell_type": "code", "input": ["print(1)"]}]}, {"cells": [{"cell_type": "heading", "source": ["Intro"]}]}]}`,
			want: &types.Notebook{
				Worksheets: []types.Worksheet{
					{Cells: []types.Cell{{Type: types.CellCode, Source: types.LineSource([]string{"print(1)"})}}},
					{Cells: []types.Cell{{Type: types.CellHeading, Source: types.LineSource([]string{"Intro"})}}},
				},
			},
		},
		{
			name:  "empty source falls back to input",
			input: `{"cells": [{"cell_type": "code", "source": [], "input": "a = 1"}]}`,
			want: &types.Notebook{
				Cells: []types.Cell{{Type: types.CellCode, Source: types.EscapedSource("a = 1")}},
			},
		},
		{
			name:  "empty source without input is absent",
			input: `{"cells": [{"cell_type": "code", "source": ""}]}`,
			want: &types.Notebook{
				Cells: []types.Cell{{Type: types.CellCode}},
			},
		},
		{
			name:  "non-object cell parses to an untyped cell",
			input: `{"cells": [42]}`,
			want:  &types.Notebook{Cells: []types.Cell{{}}},
		},
		{
			name:  "json without notebook structure",
			input: `{"metadata": {}}`,
			want:  &types.Notebook{},
		},
		{
			name:  "json array root",
			input: `[1, 2, 3]`,
			want:  &types.Notebook{},
		},
		{
			name:    "invalid json",
			input:   `{"cells": [`,
			wantErr: ErrMalformed,
		},
		{
			name:    "invalid utf-8",
			input:   "{\"cells\": [{\"cell_type\": \"code\", \"source\": [\"x = '\xff\xfe'\"]}]}",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_EmptyCellsListIsPresent(t *testing.T) {
	nb, err := Parse([]byte(`{"cells": []}`))
	require.NoError(t, err)
	require.NotNil(t, nb.Cells)

	cells, err := Flatten(nb)
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestFlatten(t *testing.T) {
	a := types.Cell{Type: types.CellCode, Source: types.LineSource([]string{"a"})}
	b := types.Cell{Type: types.CellMarkdown, Source: types.LineSource([]string{"b"})}

	t.Run("top-level cells win over worksheets", func(t *testing.T) {
		nb := &types.Notebook{
			Cells:      []types.Cell{a},
			Worksheets: []types.Worksheet{{Cells: []types.Cell{b}}},
		}
		cells, err := Flatten(nb)
		require.NoError(t, err)
		assert.Equal(t, []types.Cell{a}, cells)
	})

	t.Run("worksheets are concatenated in order", func(t *testing.T) {
		nb := &types.Notebook{
			Worksheets: []types.Worksheet{{Cells: []types.Cell{a}}, {}, {Cells: []types.Cell{b}}},
		}
		cells, err := Flatten(nb)
		require.NoError(t, err)
		assert.Equal(t, []types.Cell{a, b}, cells)
	})

	t.Run("neither cells nor worksheets", func(t *testing.T) {
		_, err := Flatten(&types.Notebook{})
		assert.ErrorIs(t, err, ErrNotANotebook)
	})

	t.Run("nil notebook", func(t *testing.T) {
		_, err := Flatten(nil)
		assert.ErrorIs(t, err, ErrNotANotebook)
	})
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.ipynb")
	require.NoError(t, os.WriteFile(good, []byte(`{"cells": [{"cell_type": "code", "source": "1"}]}`), 0o644))

	nb, err := ReadFile(good)
	require.NoError(t, err)
	assert.Len(t, nb.Cells, 1)

	_, err = ReadFile(filepath.Join(dir, "missing.ipynb"))
	assert.ErrorIs(t, err, ErrMalformed)
}
