package records

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/zeptools/gw-intern/intern"
	"github.com/zeptools/gw-intern/orm"
)

// Bundle is the JSON document read by FileSource
type Bundle struct {
	Internships []intern.Internship       `json:"internships"`
	Contacts    []intern.EmergencyContact `json:"contacts"` // matched on internship_id, kept in file order
	Terms       []intern.Term             `json:"terms"`
	Changes     []intern.Change           `json:"changes"` // matched on internship_id, kept in file order
}

// FileSource serves records from a Bundle held in memory.
// A repeated internship ID or term code replaces the earlier record
type FileSource struct {
	internships *orm.Collection[*intern.Internship, int64]
	terms       *orm.Collection[*intern.Term, string]
	contacts    map[int64][]intern.EmergencyContact
	changes     map[int64][]intern.Change
}

var _ Source = (*FileSource)(nil)

func NewFileSource(b Bundle) *FileSource {
	return &FileSource{
		internships: orm.NewOrderedCollection[*intern.Internship, int64](orm.Ptrs(b.Internships)),
		terms:       orm.NewOrderedCollection[*intern.Term, string](orm.Ptrs(b.Terms)),
		contacts:    orm.GroupBy(b.Contacts, func(c intern.EmergencyContact) int64 { return c.InternshipID }),
		changes:     orm.GroupBy(b.Changes, func(c intern.Change) int64 { return c.InternshipID }),
	}
}

// LoadFileSource reads a Bundle from a JSON file
func LoadFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	var b Bundle
	if err = json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("records: bundle %s: %w", path, err)
	}
	log.Printf("[INFO][RECORDS] bundle %s: %d internships, %d terms", path, len(b.Internships), len(b.Terms))
	return NewFileSource(b), nil
}

func (s *FileSource) Internship(_ context.Context, id int64) (*intern.Internship, error) {
	p, ok := s.internships.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: internship %d", ErrNotFound, id)
	}
	found := *p
	return &found, nil
}

func (s *FileSource) EmergencyContacts(_ context.Context, internshipID int64) ([]intern.EmergencyContact, error) {
	return slices.Clone(s.contacts[internshipID]), nil
}

func (s *FileSource) Term(_ context.Context, code string) (*intern.Term, error) {
	p, ok := s.terms.Find(code)
	if !ok {
		return nil, fmt.Errorf("%w: term %q", ErrNotFound, code)
	}
	found := *p
	return &found, nil
}

func (s *FileSource) Changes(_ context.Context, internshipID int64) ([]intern.Change, error) {
	return slices.Clone(s.changes[internshipID]), nil
}
