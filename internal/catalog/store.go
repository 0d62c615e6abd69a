package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"filmoteca/internal/fileutil"
	"filmoteca/internal/movie"
)

// Store reads and writes the catalog document at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store for the document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted records in document order. A missing document is
// an empty catalog; an unreadable one is an error.
func (s *Store) Load() ([]movie.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []movie.Record{}, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var records []movie.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}
	for i := range records {
		normalizeLists(&records[i])
	}
	return records, nil
}

// Save replaces the document with records, written as an indented JSON array.
// The write is atomic so a crash leaves the previous document intact.
func (s *Store) Save(records []movie.Record) error {
	if records == nil {
		records = []movie.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// normalizeLists keeps list fields non-nil so a load/save round trip never
// turns [] into null.
func normalizeLists(rec *movie.Record) {
	for _, list := range []*[]string{&rec.Genres, &rec.Actors, &rec.Directors, &rec.Countries} {
		if *list == nil {
			*list = []string{}
		}
	}
}
