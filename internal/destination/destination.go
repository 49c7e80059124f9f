// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package destination maps notebook input paths to script output targets.
package destination

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/nbtopy/pkg/types"
)

const (
	// StdoutName selects standard output as the explicit output name.
	StdoutName = "-"
	// NotebookExt is the suffix of notebook inputs.
	NotebookExt = ".ipynb"
	// ScriptExt replaces the notebook suffix on per-file outputs.
	ScriptExt = ".py"
)

// Resolve computes where the script for inputPath goes.
//
// With outName "-" output goes to stdout. Any other outName names a single
// file under outputDir that every input is appended to. Without outName a
// relative outputDir is taken relative to the input's directory, and an
// absolute outputDir receives the input path mirrored beneath it.
func Resolve(inputPath, outputDir, outName string) types.Destination {
	switch outName {
	case "":
	case StdoutName:
		return types.Destination{Kind: types.DestStdout}
	default:
		return types.Destination{Kind: types.DestAppend, Path: filepath.Join(outputDir, outName)}
	}

	if outputDir == "" {
		outputDir = "."
	}

	if !filepath.IsAbs(outputDir) {
		name := withScriptExt(filepath.Base(inputPath))
		return types.Destination{
			Kind: types.DestFile,
			Path: filepath.Join(filepath.Dir(inputPath), outputDir, name),
		}
	}

	// Join drops the leading separator of an absolute input, so the input
	// tree is recreated under outputDir.
	rel := withScriptExt(inputPath)
	rel = strings.TrimPrefix(rel, filepath.VolumeName(rel))
	return types.Destination{Kind: types.DestFile, Path: filepath.Join(outputDir, rel)}
}

// HasNotebookExt reports whether path ends in .ipynb, ignoring case.
func HasNotebookExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), NotebookExt)
}

// withScriptExt replaces the extension of path's final element with
// ScriptExt, or appends it when there is none. A leading dot alone does not
// start an extension.
func withScriptExt(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + ScriptExt
}
