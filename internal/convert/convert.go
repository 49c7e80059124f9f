// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives notebook-to-script conversion over a batch of
// inputs: it discovers notebook files, resolves their destinations, applies
// the overwrite guard, writes or purges outputs, and reports per-file status.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/nbtopy/internal/destination"
	"github.com/pdiddy/nbtopy/internal/notebook"
	"github.com/pdiddy/nbtopy/internal/transcode"
	"github.com/pdiddy/nbtopy/pkg/types"
)

// Recorder receives one entry per processed file. *ledger.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e types.LedgerEntry) error
}

// Job pairs a notebook input with its resolved destination.
type Job struct {
	InputPath string
	Dest      types.Destination
}

// Result is the outcome of one Job.
type Result struct {
	Job     Job
	Status  types.ConversionStatus
	HasCode bool
	// Digest is the SHA-256 of the generated text, set when a conversion
	// produced output.
	Digest string
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Purged    int
	Skipped   int
	Failed    int
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Purged + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed with an I/O error.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(s types.ConversionStatus) {
	switch {
	case s.Converted():
		r.Converted++
	case s == types.StatusPurged:
		r.Purged++
	case s == types.StatusFailed:
		r.Failed++
	default:
		r.Skipped++
	}
}

// Converter converts notebooks one after another. It is not safe for
// concurrent use: the interpreter-marker state and the shared output file
// are carried from one document to the next.
type Converter struct {
	opts types.ConvertOptions

	out    io.Writer // status lines
	warn   io.Writer // warnings
	errw   io.Writer // I/O failures, never silenced
	stdout io.Writer // script text in stdout mode

	recorder Recorder
	state    types.BatchState

	shared     *os.File
	sharedPath string
}

// Option configures a Converter.
type Option func(*Converter)

// WithRecorder records every outcome to r.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) { c.recorder = r }
}

// WithStdout sets where script text goes when the output name is "-".
func WithStdout(w io.Writer) Option {
	return func(c *Converter) { c.stdout = w }
}

// New returns a Converter writing status lines to out and warnings to warn.
// Quiet and NoWarnings silence the respective writer; stdout mode implies
// quiet so status lines never mix with the script text.
func New(opts types.ConvertOptions, out, warn io.Writer, options ...Option) *Converter {
	if opts.Out == destination.StdoutName {
		opts.Quiet = true
	}
	if opts.ToolName == "" {
		opts.ToolName = transcode.DefaultToolName
	}

	c := &Converter{
		opts:   opts,
		out:    out,
		warn:   warn,
		errw:   warn,
		stdout: os.Stdout,
	}
	if opts.Quiet {
		c.out = io.Discard
	}
	if opts.NoWarnings {
		c.warn = io.Discard
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// Job resolves the destination for a single input path.
func (c *Converter) Job(inputPath string) Job {
	return Job{
		InputPath: inputPath,
		Dest:      destination.Resolve(inputPath, c.opts.Dir, c.opts.Out),
	}
}

// ConvertPaths discovers notebooks under paths, prepares the shared output
// file if one is named, and converts or purges every notebook found. Paths
// rejected during discovery are recorded and counted as skipped.
func (c *Converter) ConvertPaths(ctx context.Context, paths []string) (BatchResult, error) {
	jobs, skips := c.Discover(paths)
	for _, res := range skips {
		c.record(ctx, res)
	}

	if err := c.OpenShared(); err != nil {
		return BatchResult{Skipped: len(skips)}, err
	}

	result, err := c.Run(ctx, jobs)
	result.Skipped += len(skips)
	return result, err
}

// Run processes jobs in order, printing per-file status and a final
// summary. It keeps going after individual failures and stops early only
// when ctx is cancelled.
func (c *Converter) Run(ctx context.Context, jobs []Job) (BatchResult, error) {
	var result BatchResult
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		res, err := c.File(job)
		if err != nil {
			fmt.Fprintf(c.errw, "Failed %s : %v\n", job.InputPath, err)
			res.Status = types.StatusFailed
		}
		result.add(res.Status)
		c.record(ctx, res)
	}

	count, action := result.Converted, "converted"
	if c.opts.Purge {
		count, action = result.Purged, "purged"
	}
	plural := "s"
	if count == 1 {
		plural = ""
	}
	fmt.Fprintf(c.out, "%d file%s %s.\n", count, plural, action)

	return result, nil
}

// File converts or purges one notebook. Unusable inputs are reported as
// skip statuses with a nil error; the error is reserved for I/O failures
// on the destination.
func (c *Converter) File(job Job) (Result, error) {
	res := Result{Job: job}

	if c.opts.Purge {
		return c.purge(job)
	}

	dest := job.Dest
	if dest.Kind == types.DestFile && !c.opts.Force {
		if _, err := os.Stat(dest.Path); err == nil {
			fmt.Fprintf(c.warn, "Skipping %s : already exists.\n", dest.Path)
			res.Status = types.StatusSkippedExists
			return res, nil
		}
	}

	nb, err := notebook.ReadFile(job.InputPath)
	if err != nil {
		fmt.Fprintf(c.warn, "Skipping %s : is malformed.\n", job.InputPath)
		res.Status = types.StatusSkippedMalformed
		return res, nil
	}

	out, err := transcode.Transcode(nb, c.opts, transcode.Framing{
		InputPath:   job.InputPath,
		ToolName:    c.opts.ToolName,
		Interpreter: dest.Kind == types.DestFile || !c.state.MarkerWritten,
	})
	if err != nil {
		if errors.Is(err, notebook.ErrNotANotebook) {
			fmt.Fprintf(c.warn, "Skipping %s : does not appear to be a ipynb file.\n", job.InputPath)
			res.Status = types.StatusSkippedNotNotebook
			return res, nil
		}
		return res, err
	}
	res.HasCode = out.HasCode

	if !out.HasCode {
		fmt.Fprintf(c.warn, "Warning: %s has no Python code.\n", job.InputPath)
		if c.opts.ExcludeNoCode {
			res.Status = types.StatusSkippedNoCode
			return res, nil
		}
	}

	res.Digest = out.Digest()
	res.Status, err = c.emit(job, out.Text)
	return res, err
}

func (c *Converter) emit(job Job, text string) (types.ConversionStatus, error) {
	dest := job.Dest
	switch dest.Kind {
	case types.DestStdout:
		if _, err := io.WriteString(c.stdout, text); err != nil {
			return types.StatusFailed, fmt.Errorf("writing to stdout: %w", err)
		}
		c.state.MarkerWritten = true
		return types.StatusStdout, nil

	case types.DestAppend:
		if err := c.appendShared(dest.Path, text); err != nil {
			return types.StatusFailed, err
		}
		c.state.MarkerWritten = true
		fmt.Fprintf(c.out, "Wrote %s from %s\n", dest.Path, job.InputPath)
		return types.StatusAppended, nil

	default:
		status, err := WriteIfChanged(dest.Path, []byte(text))
		if err != nil {
			return types.StatusFailed, err
		}
		switch status {
		case types.StatusCreated:
			fmt.Fprintf(c.out, "Created NEW %s\n", dest.Path)
		case types.StatusUpdated:
			fmt.Fprintf(c.out, "UPDATED %s\n", dest.Path)
		default:
			fmt.Fprintf(c.out, "No change to %s\n", dest.Path)
		}
		return status, nil
	}
}

func (c *Converter) purge(job Job) (Result, error) {
	res := Result{Job: job, Status: types.StatusNothingToPurge}
	if job.Dest.Kind == types.DestStdout {
		return res, nil
	}

	if _, err := os.Stat(job.Dest.Path); err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return res, fmt.Errorf("checking %s: %w", job.Dest.Path, err)
	}

	fmt.Fprintf(c.out, "Purging %s\n", job.Dest.Path)
	removed, err := Purge(job.Dest.Path)
	if err != nil {
		return res, err
	}
	if removed {
		res.Status = types.StatusPurged
	}
	return res, nil
}

func (c *Converter) record(ctx context.Context, res Result) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.Record(ctx, types.LedgerEntry{
		InputPath:  res.Job.InputPath,
		OutputPath: res.Job.Dest.Path,
		Status:     res.Status,
		Digest:     res.Digest,
		HasCode:    res.HasCode,
	})
	if err != nil {
		fmt.Fprintf(c.warn, "warning: ledger: %v\n", err)
	}
}
