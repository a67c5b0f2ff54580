package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}
}

func runList(cmd *cobra.Command, flags *rootFlags) error {
	cat, err := openCatalog(flags)
	if err != nil {
		return err
	}

	records := cat.List()
	if len(records) == 0 && !flags.jsonMode {
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
		return nil
	}
	return printRecords(cmd, flags, records)
}
