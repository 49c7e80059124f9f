// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nbtopy CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbtopy/internal/flagsconf"
	"github.com/pdiddy/nbtopy/internal/transcode"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts notebooks; the bookkeeping commands hang off it.
var rootCmd = &cobra.Command{
	Use:   "nbtopy [flags] ipynb_path...",
	Short: "Converts Jupyter notebook file[s] to Python (interactive) file[s]",
	Long: `nbtopy converts Jupyter notebook files to Python interactive scripts.
Code cells follow a "# %%" marker and markdown cells become comment blocks
after a "# %% [markdown]" marker, the layout editors use to run a script
cell by cell.

Each input may be a notebook file or a directory of notebooks. By default the
script is written next to its notebook with a .py suffix. Existing scripts
are left alone unless --force is given, and a script whose content would not
change is never rewritten.

Default flags can be set in $XDG_CONFIG_HOME/nbtopy-flags.conf, and settings
can also come from nbtopy.yaml or NBTOPY_* environment variables.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nbtopy.yaml or ~/.config/nbtopy/nbtopy.yaml)")
	rootCmd.PersistentFlags().String("ledger", "", "record every conversion in this SQLite ledger")

	_ = viper.BindPFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))
}

// initConfig layers nbtopy.yaml and NBTOPY_* variables under the flags. A
// config file named with --config must be readable; a searched-for one may
// be absent.
func initConfig() error {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(toolName())
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", toolName()))
		}
	}

	viper.SetEnvPrefix("NBTOPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if !viper.GetBool("quiet") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
	return nil
}

// toolName is the program name used in provenance comments and config file
// names.
func toolName() string {
	name := filepath.Base(os.Args[0])
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return transcode.DefaultToolName
	}
	return name
}

// defaultArgs places the flags from the user's defaults file in front of
// args. Subcommand invocations are passed through untouched.
func defaultArgs(args []string) ([]string, error) {
	if len(args) > 0 && isSubcommand(args[0]) {
		return args, nil
	}
	conf, err := flagsconf.Load(flagsconf.DefaultPath(toolName()))
	if err != nil {
		return nil, err
	}
	return append(conf, args...), nil
}

func isSubcommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

func main() {
	args, err := defaultArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	rootCmd.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
