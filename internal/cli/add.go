package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookstead/shelf/pkg/types"
)

// addFlags holds the flag values for one add subcommand; each subcommand
// binds its own instance.
type addFlags struct {
	id     string
	title  string
	author string
	isbn   string
	pages  int

	sizeMB float64
	format string

	minutes  float64
	narrator string
}

// resource builds the shared attributes from the parsed flags, generating
// an identifier when --id was omitted.
func (o *addFlags) resource() types.Resource {
	id := o.id
	if id == "" {
		id = newRecordID()
	}
	return types.Resource{
		ResourceID: id,
		Title:      o.title,
		Author:     o.author,
		ISBN:       o.isbn,
		PageCount:  o.pages,
	}
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a record to the catalog",
		Long:  "Add creates a new catalog record of the given kind.",
	}
	add.AddCommand(newAddBookCmd(flags))
	add.AddCommand(newAddEBookCmd(flags))
	add.AddCommand(newAddAudiobookCmd(flags))
	return add
}

func newAddBookCmd(flags *rootFlags) *cobra.Command {
	opts := &addFlags{}
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Add a printed book",
		Long: `Add a printed book to the catalog.

Example:
  shelf add book --id b1 --title "Dune" --author "Frank Herbert" --isbn 978-0441013593 --pages 412`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, flags, types.Book{Resource: opts.resource()})
		},
	}
	addCommonFlags(cmd, opts)
	return cmd
}

func newAddEBookCmd(flags *rootFlags) *cobra.Command {
	opts := &addFlags{}
	cmd := &cobra.Command{
		Use:   "ebook",
		Short: "Add an electronic book",
		Long: `Add an electronic book to the catalog.

Example:
  shelf add ebook --title "Dune" --author "Frank Herbert" --size-mb 3.2 --format EPUB`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, flags, types.EBook{
				Resource:   opts.resource(),
				FileSizeMB: opts.sizeMB,
				FileFormat: opts.format,
			})
		},
	}
	addCommonFlags(cmd, opts)
	cmd.Flags().Float64Var(&opts.sizeMB, "size-mb", 0, "file size in megabytes")
	cmd.Flags().StringVar(&opts.format, "format", "", "file format (e.g. EPUB, PDF)")
	return cmd
}

func newAddAudiobookCmd(flags *rootFlags) *cobra.Command {
	opts := &addFlags{}
	cmd := &cobra.Command{
		Use:   "audiobook",
		Short: "Add an audio recording",
		Long: `Add an audiobook to the catalog.

Example:
  shelf add audiobook --title "Dune" --author "Frank Herbert" --minutes 1266 --narrator "Scott Brick"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, flags, types.Audiobook{
				Resource:        opts.resource(),
				DurationMinutes: opts.minutes,
				Narrator:        opts.narrator,
			})
		},
	}
	addCommonFlags(cmd, opts)
	cmd.Flags().Float64Var(&opts.minutes, "minutes", 0, "duration in minutes")
	cmd.Flags().StringVar(&opts.narrator, "narrator", "", "narrator name")
	return cmd
}

// addCommonFlags registers the flags shared by every record kind.
func addCommonFlags(cmd *cobra.Command, opts *addFlags) {
	cmd.Flags().StringVar(&opts.id, "id", "", "record identifier (default: generated UUID)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title (required)")
	cmd.Flags().StringVar(&opts.author, "author", "", "author")
	cmd.Flags().StringVar(&opts.isbn, "isbn", "", "standard number (e.g. ISBN)")
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "page count")
	_ = cmd.MarkFlagRequired("title")
}

// newRecordID generates a UUID v7 identifier, falling back to v4 if the
// clock-based generation fails.
func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func runAdd(cmd *cobra.Command, flags *rootFlags, rec types.Record) error {
	if err := rec.Base().Validate(); err != nil {
		return err
	}

	cat, err := openCatalog(flags)
	if err != nil {
		return err
	}
	if err := cat.Add(rec); err != nil {
		if errors.Is(err, types.ErrDuplicateID) || errors.Is(err, types.ErrInvalidID) {
			return fmt.Errorf("add record: %w", err)
		}
		// Anything else from Add is a failed archive write.
		return sysErr(fmt.Errorf("add record: %w", err))
	}

	if flags.jsonMode {
		return printRecordJSON(cmd, rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", rec.Kind(), rec.ID())
	return nil
}
