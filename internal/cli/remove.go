package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookstead/shelf/pkg/types"
)

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a record from the catalog",
		Long: `Remove deletes the record with the given identifier. Removing an
identifier that does not exist is not an error; nothing existed to lose.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, flags, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, flags *rootFlags, id string) error {
	cat, err := openCatalog(flags)
	if err != nil {
		return err
	}

	_, findErr := cat.Find(id)
	if err := cat.Remove(id); err != nil {
		// Remove only fails on a failed archive write.
		return sysErr(fmt.Errorf("remove record: %w", err))
	}

	if errors.Is(findErr, types.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No record with id %s\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", id)
	}
	return nil
}
