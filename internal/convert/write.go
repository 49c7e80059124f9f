// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/nbtopy/internal/destination"
	"github.com/pdiddy/nbtopy/pkg/types"
)

// WriteIfChanged writes content to path unless the file already holds
// exactly those bytes. It returns StatusCreated, StatusUpdated, or
// StatusUnchanged. Missing parent directories are created.
func WriteIfChanged(path string, content []byte) (types.ConversionStatus, error) {
	existing, err := os.ReadFile(path)
	exists := err == nil
	switch {
	case exists && bytes.Equal(existing, content):
		return types.StatusUnchanged, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return types.StatusFailed, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return types.StatusFailed, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return types.StatusFailed, fmt.Errorf("writing %s: %w", path, err)
	}

	if exists {
		return types.StatusUpdated, nil
	}
	return types.StatusCreated, nil
}

// Purge removes the file at path and then its parent directory if that
// left it empty. It reports whether the file existed.
func Purge(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("removing %s: %w", path, err)
	}

	parent := filepath.Dir(path)
	if parent == "." {
		return true, nil
	}
	entries, err := os.ReadDir(parent)
	if err == nil && len(entries) == 0 {
		if err := os.Remove(parent); err != nil {
			return true, fmt.Errorf("removing empty directory %s: %w", parent, err)
		}
	}
	return true, nil
}

// OpenShared truncates and opens the shared output file when the options
// name one. It does nothing in stdout, per-file, or purge mode.
func (c *Converter) OpenShared() error {
	if c.opts.Out == "" || c.opts.Out == destination.StdoutName || c.opts.Purge {
		return nil
	}
	path := filepath.Join(c.opts.Dir, c.opts.Out)
	return c.openShared(path, os.O_TRUNC)
}

// Close closes the shared output file, if one is open.
func (c *Converter) Close() error {
	if c.shared == nil {
		return nil
	}
	err := c.shared.Close()
	c.shared = nil
	c.sharedPath = ""
	return err
}

func (c *Converter) openShared(path string, mode int) error {
	if err := c.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", c.sharedPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|mode, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	c.shared = f
	c.sharedPath = path
	return nil
}

// appendShared writes text to the shared file, opening it for append if the
// batch did not open it already.
func (c *Converter) appendShared(path, text string) error {
	if c.shared == nil || c.sharedPath != path {
		if err := c.openShared(path, os.O_APPEND); err != nil {
			return err
		}
	}
	if _, err := c.shared.WriteString(text); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
