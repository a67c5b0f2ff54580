package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Look up a record by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, flags, args[0])
		},
	}
}

func runGet(cmd *cobra.Command, flags *rootFlags, id string) error {
	cat, err := openCatalog(flags)
	if err != nil {
		return err
	}

	rec, err := cat.Find(id)
	if err != nil {
		// Find's only failure is the absent result.
		return fmt.Errorf("no record with id %s: %w", id, err)
	}

	if flags.jsonMode {
		return printRecordJSON(cmd, rec)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatRecord(rec))
	return nil
}
