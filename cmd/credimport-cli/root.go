package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the credimport CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credimport-cli",
		Short: "Offline tooling for captured credit report snapshots",
		Long: `credimport-cli works against artifacts saved by the credimport service.

It can re-run extraction and reconciliation on a saved HTML snapshot
(plus its sidecar JSON, when present) and list the credit monitoring
services the importer knows how to log in to.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewReparseCmd())
	cmd.AddCommand(NewServicesCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
