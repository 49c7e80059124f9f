// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/nbtopy/internal/destination"
	"github.com/pdiddy/nbtopy/pkg/types"
)

// Discover expands command-line paths into jobs. A directory contributes
// every .ipynb file in it, visiting subdirectories only with Recurse. A
// missing path or an explicitly named file without the .ipynb suffix is
// warned about and returned as a skip result.
func (c *Converter) Discover(paths []string) (jobs []Job, skips []Result) {
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			fmt.Fprintf(c.warn, "Skipping %s : does not exist\n", p)
			skips = append(skips, Result{Job: Job{InputPath: p}, Status: types.StatusSkippedMissing})
		case info.IsDir():
			jobs = append(jobs, c.walk(p)...)
		case !destination.HasNotebookExt(p):
			fmt.Fprintf(c.warn, "Skipping %s : does not have .ipynb suffix.\n", p)
			skips = append(skips, Result{Job: Job{InputPath: p}, Status: types.StatusSkippedSuffix})
		default:
			jobs = append(jobs, c.Job(p))
		}
	}
	return jobs, skips
}

// walk lists dir in name order.
func (c *Converter) walk(dir string) []Job {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(c.warn, "Skipping %s : %v\n", dir, err)
		return nil
	}

	var jobs []Job
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if c.opts.Recurse {
				jobs = append(jobs, c.walk(path)...)
			}
			continue
		}
		if destination.HasNotebookExt(path) {
			jobs = append(jobs, c.Job(path))
		}
	}
	return jobs
}
