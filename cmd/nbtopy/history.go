// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbtopy/internal/ledger"
	"github.com/pdiddy/nbtopy/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversions recorded in the ledger",
	Long: `History reads the SQLite ledger written by conversions run with --ledger.
Entries are listed newest first and can be filtered by input notebook or
status, printed as JSON, or exported to a YAML or JSON file.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("status", "", "filter by status: created, updated, unchanged, appended, purged, skipped-exists, ...")
	historyCmd.Flags().String("input", "", "filter by input notebook path")
	historyCmd.Flags().Int("limit", 0, "maximum number of entries (default 50, -1 for all)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().String("export", "", "write all matching entries to a .yaml or .json file")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("ledger")
	if path == "" {
		return fmt.Errorf("no ledger configured: pass --ledger or set ledger in nbtopy.yaml")
	}

	store, err := ledger.Open(types.LedgerConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	status, _ := cmd.Flags().GetString("status")
	input, _ := cmd.Flags().GetString("input")
	limit, _ := cmd.Flags().GetInt("limit")
	filter := ledger.Filter{
		InputPath:  input,
		Status:     types.ConversionStatus(status),
		MaxResults: limit,
	}

	if export, _ := cmd.Flags().GetString("export"); export != "" {
		if strings.EqualFold(filepath.Ext(export), ".json") {
			err = store.ExportJSON(cmd.Context(), export, filter)
		} else {
			err = store.ExportYAML(cmd.Context(), export, filter)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported ledger to %s\n", export)
		return nil
	}

	entries, err := store.List(cmd.Context(), filter)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []types.LedgerEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []types.LedgerEntry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-6s  %-20s  %-22s  %s\n", "ID", "When", "Status", "Input -> Output")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		target := e.OutputPath
		if target == "" {
			target = "(stdout)"
		}
		fmt.Fprintf(w, "%-6d  %-20s  %-22s  %s -> %s\n",
			e.ID, e.ConvertedAt.Local().Format("2006-01-02 15:04:05"), e.Status, e.InputPath, target)
	}
	return nil
}
