// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConvertOptions holds the switches that control conversion output and the
// bookkeeping around it. Field names mirror the command-line flags.
type ConvertOptions struct {
	// NoMarkdownTag omits the "# %% [markdown]" marker on markdown cells.
	NoMarkdownTag bool `json:"no_markdown_tag" yaml:"no_markdown_tag"`

	// NoMarkdown drops markdown cells from the output entirely.
	NoMarkdown bool `json:"no_markdown" yaml:"no_markdown"`

	// NoCodeTag omits the "# %%" marker on code cells.
	NoCodeTag bool `json:"no_code_tag" yaml:"no_code_tag"`

	// IncludeEmpty keeps cells whose source is blank.
	IncludeEmpty bool `json:"include_empty" yaml:"include_empty"`

	// ExcludeNoCode abandons documents that contain no code cell.
	ExcludeNoCode bool `json:"exclude_no_code" yaml:"exclude_no_code"`

	// Force overwrites existing per-file destinations.
	Force bool `json:"force" yaml:"force"`

	// Recurse descends into subdirectories of directory inputs.
	Recurse bool `json:"recurse" yaml:"recurse"`

	// Purge deletes previously generated destinations instead of converting.
	Purge bool `json:"purge" yaml:"purge"`

	// Quiet suppresses per-file status messages and the summary.
	Quiet bool `json:"quiet" yaml:"quiet"`

	// NoWarnings suppresses warning messages.
	NoWarnings bool `json:"no_warnings" yaml:"no_warnings"`

	// Out is an explicit output file name shared by all inputs, or "-" for
	// standard output. Empty means one destination per input.
	Out string `json:"out,omitempty" yaml:"out,omitempty"`

	// Dir is the output directory. A relative directory is taken relative to
	// each input file; an absolute one receives a mirrored tree.
	Dir string `json:"dir" yaml:"dir"`

	// ToolName appears in the provenance comment of every output.
	ToolName string `json:"tool_name" yaml:"tool_name"`
}

// DestinationKind says where converted output goes.
type DestinationKind int

const (
	// DestFile is one output file per input document.
	DestFile DestinationKind = iota
	// DestAppend is a single file shared by every input in the run.
	DestAppend
	// DestStdout streams output to standard output.
	DestStdout
)

// Destination is a resolved output target. Path is empty for DestStdout.
type Destination struct {
	Kind DestinationKind `json:"kind" yaml:"kind"`
	Path string          `json:"path,omitempty" yaml:"path,omitempty"`
}

// ConversionStatus is the per-file outcome of a conversion or purge.
type ConversionStatus string

const (
	StatusCreated   ConversionStatus = "created"
	StatusUpdated   ConversionStatus = "updated"
	StatusUnchanged ConversionStatus = "unchanged"
	StatusAppended  ConversionStatus = "appended"
	StatusStdout    ConversionStatus = "stdout"

	StatusPurged         ConversionStatus = "purged"
	StatusNothingToPurge ConversionStatus = "nothing-to-purge"

	StatusSkippedExists      ConversionStatus = "skipped-exists"
	StatusSkippedMalformed   ConversionStatus = "skipped-malformed"
	StatusSkippedNotNotebook ConversionStatus = "skipped-not-a-notebook"
	StatusSkippedNoCode      ConversionStatus = "skipped-no-code"
	StatusSkippedMissing     ConversionStatus = "skipped-missing"
	StatusSkippedSuffix      ConversionStatus = "skipped-suffix"

	StatusFailed ConversionStatus = "failed"
)

// Converted reports whether the status counts as a performed conversion.
func (s ConversionStatus) Converted() bool {
	switch s {
	case StatusCreated, StatusUpdated, StatusUnchanged, StatusAppended, StatusStdout:
		return true
	}
	return false
}

// BatchState carries what one document's conversion must know about the
// documents converted before it in the same run.
type BatchState struct {
	// MarkerWritten is set once a document has been written to a shared
	// target (append file or stdout), so later documents omit the
	// interpreter marker line.
	MarkerWritten bool
}

// LedgerConfig holds settings for the conversion ledger.
type LedgerConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default listing limit (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LedgerEntry is one recorded conversion outcome.
type LedgerEntry struct {
	ID          int64            `json:"id" yaml:"id"`
	InputPath   string           `json:"input_path" yaml:"input_path"`
	OutputPath  string           `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Status      ConversionStatus `json:"status" yaml:"status"`
	Digest      string           `json:"digest,omitempty" yaml:"digest,omitempty"`
	HasCode     bool             `json:"has_code" yaml:"has_code"`
	ConvertedAt time.Time        `json:"converted_at" yaml:"converted_at"`
}
