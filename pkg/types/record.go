package types

import "errors"

// Record kinds. The persisted "type" discriminator carries one of these
// values; the set is closed.
const (
	KindBook      = "Book"
	KindEBook     = "EBook"
	KindAudiobook = "Audiobook"
)

// validKinds is the set of recognized discriminator values.
var validKinds = map[string]bool{
	KindBook:      true,
	KindEBook:     true,
	KindAudiobook: true,
}

// ValidKind reports whether kind is a recognized discriminator value.
func ValidKind(kind string) bool {
	return validKinds[kind]
}

// Catalog operation errors.
var (
	ErrDuplicateID  = errors.New("record identifier already exists")
	ErrNotFound     = errors.New("record not found")
	ErrInvalidID    = errors.New("invalid record identifier")
	ErrInvalidTitle = errors.New("title must not be empty")
)

// Storage errors.
var (
	ErrUnknownKind = errors.New("unknown record kind")
)

// Resource holds the attributes shared by every catalog record.
// PageCount may be zero for non-paginated variants.
type Resource struct {
	ResourceID string `json:"resource_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	PageCount  int    `json:"page_count"`
}

// ID returns the record's unique identifier.
func (r Resource) ID() string { return r.ResourceID }

// Base returns the shared attributes of the record.
func (r Resource) Base() Resource { return r }

// Validate checks that the resource is well-formed: identifier and title
// are required.
func (r Resource) Validate() error {
	if r.ResourceID == "" {
		return ErrInvalidID
	}
	if r.Title == "" {
		return ErrInvalidTitle
	}
	return nil
}

// Book is a printed resource; it carries only the shared attributes.
type Book struct {
	Resource
}

// EBook is an electronic resource.
type EBook struct {
	Resource
	FileSizeMB float64 `json:"file_size_mb"`
	FileFormat string  `json:"file_format"`
}

// Audiobook is an audio recording.
type Audiobook struct {
	Resource
	DurationMinutes float64 `json:"duration_minutes"`
	Narrator        string  `json:"narrator"`
}

// Kind returns the discriminator value for the variant.
func (Book) Kind() string { return KindBook }

// Kind returns the discriminator value for the variant.
func (EBook) Kind() string { return KindEBook }

// Kind returns the discriminator value for the variant.
func (Audiobook) Kind() string { return KindAudiobook }

// Record is one catalog entry: a Book, EBook, or Audiobook. The union is
// closed; code that dispatches on a record switches over the three concrete
// types (or the Kind constants) and treats anything else as ErrUnknownKind.
// Records are immutable once handed to a Catalog.
type Record interface {
	// ID returns the unique identifier of the record.
	ID() string

	// Kind returns the discriminator value for the variant.
	Kind() string

	// Base returns the attributes shared by every variant.
	Base() Resource
}

// Compile-time checks that every variant satisfies Record.
var (
	_ Record = Book{}
	_ Record = EBook{}
	_ Record = Audiobook{}
)
