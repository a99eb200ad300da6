package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/credimport/reconcile"
)

// NewReparseCmd creates the reparse command.
func NewReparseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reparse <report.html>",
		Short: "Re-run extraction on a saved report snapshot",
		Long: `Reparse loads a saved HTML report snapshot, extracts the structured
report from it, merges the sidecar JSON when one exists, and prints
the reconciled report with analytics as JSON.

If --sidecar is not given, a sidecar.json next to the snapshot is
used automatically when present.

Examples:
  # Reparse a snapshot, auto-discovering sidecar.json beside it
  credimport-cli reparse artifacts/acme_identityiq_20260829-101500/report.html

  # Reparse with an explicit sidecar
  credimport-cli reparse report.html --sidecar network-sidecar.json`,
		Args: cobra.ExactArgs(1),
		RunE: runReparseCmd,
	}

	cmd.Flags().StringP("sidecar", "s", "", "Path to a sidecar JSON file")
	cmd.Flags().StringP("output", "o", "", "Write JSON output to a file instead of stdout")

	return cmd
}

func runReparseCmd(cmd *cobra.Command, args []string) error {
	sidecarPath, err := cmd.Flags().GetString("sidecar")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	report, analytics, err := reconcile.ReparseFile(args[0], sidecarPath)
	if err != nil {
		return fmt.Errorf("reparse %s: %w", args[0], err)
	}

	out := struct {
		Report    any `json:"report"`
		Analytics any `json:"analytics"`
	}{Report: report, Analytics: analytics}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
