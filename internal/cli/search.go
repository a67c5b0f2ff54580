package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search records by title or author",
		Long: `Search returns every record whose title or author contains the query
as a case-insensitive substring, in catalog order. An empty or omitted
query matches every record.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return runSearch(cmd, flags, query)
		},
	}
}

func runSearch(cmd *cobra.Command, flags *rootFlags, query string) error {
	cat, err := openCatalog(flags)
	if err != nil {
		return err
	}

	matches := cat.Search(query)
	if len(matches) == 0 && !flags.jsonMode {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching records")
		return nil
	}
	return printRecords(cmd, flags, matches)
}
