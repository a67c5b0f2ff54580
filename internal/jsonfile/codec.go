package jsonfile

import (
	"encoding/json"
	"fmt"

	"github.com/bookstead/shelf/pkg/types"
)

// envelope is the persisted form of a record: the shared attributes, the
// "type" discriminator, and the variant-specific attributes. The variant
// fields are pointers so that a line carries exactly the attributes of its
// own kind: the owning variant writes its fields even when zero-valued, and
// foreign variants omit theirs entirely.
type envelope struct {
	Type       string `json:"type"`
	ResourceID string `json:"resource_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	PageCount  int    `json:"page_count"`

	// EBook only.
	FileSizeMB *float64 `json:"file_size_mb,omitempty"`
	FileFormat *string  `json:"file_format,omitempty"`

	// Audiobook only.
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	Narrator        *string  `json:"narrator,omitempty"`
}

// EncodeRecord serializes a record into its persisted JSON form. Each
// variant lists its own fields explicitly; an unhandled variant is a
// programming error and yields ErrUnknownKind.
func EncodeRecord(rec types.Record) ([]byte, error) {
	base := rec.Base()
	env := envelope{
		Type:       rec.Kind(),
		ResourceID: base.ResourceID,
		Title:      base.Title,
		Author:     base.Author,
		ISBN:       base.ISBN,
		PageCount:  base.PageCount,
	}

	switch r := rec.(type) {
	case types.Book:
		// Shared attributes only.
	case types.EBook:
		env.FileSizeMB = &r.FileSizeMB
		env.FileFormat = &r.FileFormat
	case types.Audiobook:
		env.DurationMinutes = &r.DurationMinutes
		env.Narrator = &r.Narrator
	default:
		return nil, fmt.Errorf("%w: %T", types.ErrUnknownKind, rec)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshaling record %s: %w", base.ResourceID, err)
	}
	return data, nil
}

// DecodeRecord parses one persisted line back into a typed record,
// dispatching on the "type" discriminator. A missing or unrecognized
// discriminator yields ErrUnknownKind.
func DecodeRecord(line []byte) (types.Record, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}

	base := types.Resource{
		ResourceID: env.ResourceID,
		Title:      env.Title,
		Author:     env.Author,
		ISBN:       env.ISBN,
		PageCount:  env.PageCount,
	}

	switch env.Type {
	case types.KindBook:
		return types.Book{Resource: base}, nil
	case types.KindEBook:
		rec := types.EBook{Resource: base}
		if env.FileSizeMB != nil {
			rec.FileSizeMB = *env.FileSizeMB
		}
		if env.FileFormat != nil {
			rec.FileFormat = *env.FileFormat
		}
		return rec, nil
	case types.KindAudiobook:
		rec := types.Audiobook{Resource: base}
		if env.DurationMinutes != nil {
			rec.DurationMinutes = *env.DurationMinutes
		}
		if env.Narrator != nil {
			rec.Narrator = *env.Narrator
		}
		return rec, nil
	case "":
		return nil, fmt.Errorf("%w: missing type tag", types.ErrUnknownKind)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, env.Type)
	}
}
