package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/use-agent/credimport/profile"
)

// NewServicesCmd creates the services command.
func NewServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List supported credit monitoring services",
		Long: `Services prints the identifiers of every credit monitoring service
the importer has a login profile for, including any added through a
profiles YAML file.`,
		Args: cobra.NoArgs,
		RunE: runServicesCmd,
	}

	cmd.Flags().StringP("profiles", "p", "", "Path to an additional profiles YAML file")

	return cmd
}

func runServicesCmd(cmd *cobra.Command, _ []string) error {
	profilesPath, err := cmd.Flags().GetString("profiles")
	if err != nil {
		return err
	}

	table, err := profile.LoadTable(profilesPath)
	if err != nil {
		return err
	}

	for _, id := range table.IDs() {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
