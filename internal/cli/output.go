// Output rendering helpers shared by the shelf commands.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookstead/shelf/internal/jsonfile"
	"github.com/bookstead/shelf/pkg/types"
)

// printRecordJSON writes one record in its persisted JSON form, indented.
func printRecordJSON(cmd *cobra.Command, rec types.Record) error {
	data, err := jsonfile.EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent record: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}

// printRecordsJSON writes a JSON array of records, indented.
func printRecordsJSON(cmd *cobra.Command, records []types.Record) error {
	lines := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		data, err := jsonfile.EncodeRecord(rec)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		lines = append(lines, data)
	}
	out, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// formatRecord renders a one-line human-readable summary of a record.
func formatRecord(rec types.Record) string {
	base := rec.Base()
	line := fmt.Sprintf("%-9s  %s  %q by %s", rec.Kind(), base.ResourceID, base.Title, base.Author)
	switch r := rec.(type) {
	case types.EBook:
		line += fmt.Sprintf("  [%s, %.1f MB]", r.FileFormat, r.FileSizeMB)
	case types.Audiobook:
		line += fmt.Sprintf("  [%.0f min, read by %s]", r.DurationMinutes, r.Narrator)
	}
	return line
}

// printRecords writes records one per line in human or JSON mode.
func printRecords(cmd *cobra.Command, flags *rootFlags, records []types.Record) error {
	if flags.jsonMode {
		return printRecordsJSON(cmd, records)
	}
	for _, rec := range records {
		fmt.Fprintln(cmd.OutOrStdout(), formatRecord(rec))
	}
	return nil
}
