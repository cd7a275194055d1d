// Package records loads the read-only inputs of a contract: the internship
// with its agency, department and faculty, its emergency contacts, its term
// and its change history.
package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeptools/gw-intern/contract"
	"github.com/zeptools/gw-intern/intern"
)

// ErrNotFound - no internship (or term) with the requested key
var ErrNotFound = errors.New("records: not found")

// Source never writes. An unknown internship or term is ErrNotFound;
// an internship without contacts or changes is not an error
type Source interface {
	Internship(ctx context.Context, id int64) (*intern.Internship, error)
	EmergencyContacts(ctx context.Context, internshipID int64) ([]intern.EmergencyContact, error)
	Term(ctx context.Context, code string) (*intern.Term, error)
	Changes(ctx context.Context, internshipID int64) ([]intern.Change, error)
}

// LoadContractInput gathers everything drawn on the contract of internship id
func LoadContractInput(ctx context.Context, src Source, id int64) (contract.Input, error) {
	i, err := src.Internship(ctx, id)
	if err != nil {
		return contract.Input{}, err
	}
	contacts, err := src.EmergencyContacts(ctx, id)
	if err != nil {
		return contract.Input{}, err
	}
	term, err := src.Term(ctx, i.TermCode)
	if err != nil {
		return contract.Input{}, fmt.Errorf("term of internship %d: %w", id, err)
	}
	return contract.Input{Internship: *i, Contacts: contacts, Term: *term}, nil
}
