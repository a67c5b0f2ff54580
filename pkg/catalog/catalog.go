// Package catalog implements the in-memory library collection and its
// durable mirror. A Catalog owns an ordered collection of records with
// unique identifiers, loaded from storage once at Open and written back in
// full after every mutation.
package catalog

import (
	"fmt"
	"strings"

	"github.com/bookstead/shelf/pkg/types"
)

// Store is the durable-storage collaborator. Load is called once, at Open;
// Save receives the full collection after every mutation.
type Store interface {
	// Load returns the persisted records in order. A missing archive
	// yields an empty collection, not an error.
	Load() ([]types.Record, error)

	// Save rewrites the archive with the full collection.
	Save(records []types.Record) error
}

// Catalog is the in-memory collection plus its durable mirror. It is not
// safe for concurrent use: the design assumes a single exclusive owner of
// the archive for the lifetime of the process.
type Catalog struct {
	store   Store
	records []types.Record
}

// Open loads the full collection from the store and returns a ready
// Catalog.
func Open(store Store) (*Catalog, error) {
	records, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &Catalog{store: store, records: records}, nil
}

// Add appends a record to the collection and persists the new state.
// Persistence is write-before-commit: the candidate collection is written
// to storage first and swapped in memory only on success, so a failed write
// leaves the catalog unchanged. Returns ErrInvalidID for an empty
// identifier and ErrDuplicateID when the identifier already exists.
func (c *Catalog) Add(rec types.Record) error {
	id := rec.ID()
	if id == "" {
		return types.ErrInvalidID
	}
	if _, err := c.Find(id); err == nil {
		return fmt.Errorf("%w: %s", types.ErrDuplicateID, id)
	}

	next := make([]types.Record, 0, len(c.records)+1)
	next = append(next, c.records...)
	next = append(next, rec)

	if err := c.store.Save(next); err != nil {
		return fmt.Errorf("persisting catalog: %w", err)
	}
	c.records = next
	return nil
}

// Remove deletes the record with the given identifier and persists the new
// state, with the same write-before-commit ordering as Add. Removing an
// absent identifier is a no-op and returns nil: nothing existed to lose.
func (c *Catalog) Remove(id string) error {
	idx := -1
	for i, rec := range c.records {
		if rec.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]types.Record, 0, len(c.records)-1)
	next = append(next, c.records[:idx]...)
	next = append(next, c.records[idx+1:]...)

	if err := c.store.Save(next); err != nil {
		return fmt.Errorf("persisting catalog: %w", err)
	}
	c.records = next
	return nil
}

// Find returns the record with the given identifier, scanning in collection
// order. Returns ErrNotFound if no record has that identifier; the
// uniqueness invariant makes the first match the only match.
func (c *Catalog) Find(id string) (types.Record, error) {
	for _, rec := range c.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, types.ErrNotFound
}

// Search returns, in collection order, every record whose title or author
// contains the query as a case-insensitive substring. The empty query is a
// substring of everything and matches every record.
func (c *Catalog) Search(query string) []types.Record {
	q := strings.ToLower(query)
	var matches []types.Record
	for _, rec := range c.records {
		base := rec.Base()
		if strings.Contains(strings.ToLower(base.Title), q) ||
			strings.Contains(strings.ToLower(base.Author), q) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// List returns a copy of the full collection in insertion order. The copy
// keeps callers from mutating the collection behind the catalog's back.
func (c *Catalog) List() []types.Record {
	out := make([]types.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records in the collection.
func (c *Catalog) Len() int {
	return len(c.records)
}
