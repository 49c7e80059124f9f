// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flagsconf loads default command-line flags from a plain-text file.
//
// The file holds flags exactly as they would be typed on the command line,
// spread over any number of lines. Everything from '#' to the end of a line
// is a comment. The remaining text is split with shell quoting rules and the
// resulting arguments are placed before the real command-line arguments, so
// explicit flags still win.
package flagsconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// DefaultPath returns $XDG_CONFIG_HOME/<tool>-flags.conf, falling back to
// ~/.config when XDG_CONFIG_HOME is unset. It returns "" when no home
// directory can be determined.
func DefaultPath(tool string) string {
	name := tool + "-flags.conf"
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", name)
}

// Load reads and tokenizes the flags file at path. A missing file is not an
// error; Load returns no arguments.
func Load(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading flags file %s: %w", path, err)
	}

	args, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing flags file %s: %w", path, err)
	}
	return args, nil
}

// Parse strips comments from text and splits the rest into arguments.
func Parse(text string) ([]string, error) {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return shellquote.Split(strings.Join(parts, " "))
}
