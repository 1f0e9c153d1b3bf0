package memory

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

// Load reads a fixture of the form {"collection": [{...}, ...]} into s.
// A document's "id" field, when it is a string, becomes its ID.
func (s *Store) Load(r io.Reader) error {
	var fixture map[string][]map[string]any

	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&fixture); err != nil {
		return fmt.Errorf("failed to decode fixture: %w", err)
	}

	collections := make([]string, 0, len(fixture))
	for name := range fixture {
		collections = append(collections, name)
	}
	sort.Strings(collections)

	for _, name := range collections {
		records := fixture[name]
		docs := make([]query.Document, 0, len(records))
		for _, record := range records {
			doc := query.Document{Data: query.NormalizeNumbers(record)}
			if id, ok := record["id"].(string); ok {
				doc.ID = id
			}
			docs = append(docs, doc)
		}
		s.Put(name, docs...)
	}
	return nil
}

// LoadFile returns a store populated from the fixture at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture %s: %w", path, err)
	}
	defer f.Close()

	s := New()
	if err := s.Load(f); err != nil {
		return nil, err
	}
	return s, nil
}
