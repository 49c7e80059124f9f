// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbtopy/internal/convert"
	"github.com/pdiddy/nbtopy/internal/ledger"
	"github.com/pdiddy/nbtopy/pkg/types"
)

func init() {
	f := rootCmd.Flags()
	f.BoolP("no-markdown-tag", "m", false, "do not add markdown tag on markdown cells")
	f.BoolP("no-markdown", "M", false, "do not output markdown cells at all")
	f.BoolP("no-code-tag", "c", false, "do not add code tag on code cells")
	f.BoolP("include-empty", "e", false, "include empty/blank cells in output")
	f.BoolP("exclude-no-code", "x", false, "skip file if it contains no Python code cells")
	f.BoolP("force", "f", false, "force overwrite existing file[s]")
	f.BoolP("recurse", "r", false, "recursively process files in all sub-directories")
	f.BoolP("purge", "p", false, "just purge associated output file[s]")
	f.BoolP("quiet", "q", false, "suppress messages about processed file[s]")
	f.BoolP("no-warnings", "w", false, "suppress warning messages about processed file[s]")
	f.StringP("out", "o", "", "alternative output file name, or '-' for stdout")
	f.StringP("dir", "d", ".", `output directory, default = ".". Specify absolute path to create separate tree of output files`)

	_ = viper.BindPFlags(f)
}

// loadOptions reads the conversion switches from v, where flags, the
// environment, and the config file have already been layered.
func loadOptions(v *viper.Viper) types.ConvertOptions {
	return types.ConvertOptions{
		NoMarkdownTag: v.GetBool("no-markdown-tag"),
		NoMarkdown:    v.GetBool("no-markdown"),
		NoCodeTag:     v.GetBool("no-code-tag"),
		IncludeEmpty:  v.GetBool("include-empty"),
		ExcludeNoCode: v.GetBool("exclude-no-code"),
		Force:         v.GetBool("force"),
		Recurse:       v.GetBool("recurse"),
		Purge:         v.GetBool("purge"),
		Quiet:         v.GetBool("quiet"),
		NoWarnings:    v.GetBool("no-warnings"),
		Out:           v.GetString("out"),
		Dir:           v.GetString("dir"),
		ToolName:      toolName(),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := loadOptions(viper.GetViper())
	options := []convert.Option{convert.WithStdout(cmd.OutOrStdout())}

	if path := viper.GetString("ledger"); path != "" {
		store, err := ledger.Open(types.LedgerConfig{Path: path})
		if err != nil {
			return err
		}
		defer store.Close()
		options = append(options, convert.WithRecorder(store))
	}

	c := convert.New(opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), options...)
	defer c.Close()

	result, err := c.ConvertPaths(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := c.Close(); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
