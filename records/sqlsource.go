package records

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/zeptools/gw-intern/db/sqldb"
	"github.com/zeptools/gw-intern/intern"
	"github.com/zeptools/gw-intern/nullable"
)

// Group of the statements under sql/ in the raw SQL store
const Group = "records"

//go:embed sql
var sqlFS embed.FS

func init() {
	sqldb.RegisterGroup(sqlFS, Group)
}

// Statement keys
var (
	StmtInternship = sqldb.StoreGroupedStmtKey{Group: Group, StmtName: "internship"}.String()
	StmtContacts   = sqldb.StoreGroupedStmtKey{Group: Group, StmtName: "contacts"}.String()
	StmtTerm       = sqldb.StoreGroupedStmtKey{Group: Group, StmtName: "term"}.String()
	StmtChanges    = sqldb.StoreGroupedStmtKey{Group: Group, StmtName: "changes"}.String()
)

// SQLSource reads the intern_* tables
type SQLSource struct {
	handle sqldb.Handle
	stmts  map[string]string
}

var _ Source = (*SQLSource)(nil)

// NewSQLSource picks its statements from store, already rewritten for the
// handle's dialect
func NewSQLSource(handle sqldb.Handle, store *sqldb.RawStore) (*SQLSource, error) {
	s := &SQLSource{handle: handle, stmts: make(map[string]string)}
	for _, key := range []string{StmtInternship, StmtContacts, StmtTerm, StmtChanges} {
		stmt, ok := store.Get(key)
		if !ok {
			return nil, fmt.Errorf("records: statement %s not loaded", key)
		}
		s.stmts[key] = stmt
	}
	return s, nil
}

func (s *SQLSource) Internship(ctx context.Context, id int64) (*intern.Internship, error) {
	row, err := sqldb.QueryItem[internshipRow](ctx, s.handle, s.stmts[StmtInternship], id)
	if errors.Is(err, sqldb.ErrNoRows) {
		return nil, fmt.Errorf("%w: internship %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("records: internship %d: %w", id, err)
	}
	return row.internship(), nil
}

func (s *SQLSource) EmergencyContacts(ctx context.Context, internshipID int64) ([]intern.EmergencyContact, error) {
	rows, err := sqldb.QueryItems[contactRow](ctx, s.handle, s.stmts[StmtContacts], internshipID)
	if err != nil {
		return nil, fmt.Errorf("records: contacts of internship %d: %w", internshipID, err)
	}
	contacts := make([]intern.EmergencyContact, len(rows))
	for i, r := range rows {
		contacts[i] = intern.EmergencyContact(*r)
	}
	return contacts, nil
}

func (s *SQLSource) Term(ctx context.Context, code string) (*intern.Term, error) {
	row, err := sqldb.QueryItem[termRow](ctx, s.handle, s.stmts[StmtTerm], code)
	if errors.Is(err, sqldb.ErrNoRows) {
		return nil, fmt.Errorf("%w: term %q", ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("records: term %q: %w", code, err)
	}
	return &intern.Term{
		Code:        row.code,
		Description: row.description,
		StartDate:   row.start.Time, // zero when NULL
		EndDate:     row.end.Time,
	}, nil
}

func (s *SQLSource) Changes(ctx context.Context, internshipID int64) ([]intern.Change, error) {
	rows, err := sqldb.QueryItems[changeRow](ctx, s.handle, s.stmts[StmtChanges], internshipID)
	if err != nil {
		return nil, fmt.Errorf("records: changes of internship %d: %w", internshipID, err)
	}
	changes := make([]intern.Change, len(rows))
	for i, r := range rows {
		changes[i] = intern.Change{
			ID:           r.id,
			InternshipID: r.internshipID,
			Username:     r.username,
			Timestamp:    r.at,
			FromState:    intern.State(r.from),
			ToState:      intern.State(r.to),
		}
	}
	return changes, nil
}

// internshipRow - one row of sql/internship.sql
type internshipRow struct {
	i intern.Internship

	studentStreet, studentCity, studentState, studentZip string

	facultyID nullable.Int // NULL when no faculty supervisor
	faculty   intern.Faculty
}

func (r *internshipRow) TargetFields() []any {
	i, a, f := &r.i, &r.i.Agency, &r.faculty
	return []any{
		&i.ID,
		&i.FirstName, &i.MiddleName, &i.LastName,
		&i.BannerID, &i.Email, &i.Phone,
		&r.studentStreet, &r.studentCity,
		&r.studentState, &r.studentZip,
		&i.LocAddress, &i.LocCity, &i.LocState,
		&i.LocZip, &i.LocProvince, &i.LocCountry,
		&i.Domestic, &i.International, &i.Paid, &i.Stipend,
		&i.CreditHours, &i.AvgHoursPerWeek,
		&i.CourseTitle, &i.TermCode,
		&a.ID, &a.Name, &a.Address, &a.City,
		&a.State, &a.Zip,
		&a.SupervisorFirstName, &a.SupervisorLastName,
		&a.SupervisorTitle, &a.SupervisorEmail,
		&a.SupervisorPhone, &a.SupervisorFax,
		&a.SupervisorAddress, &a.SupervisorCity,
		&a.SupervisorState, &a.SupervisorZip,
		&i.Department.ID, &i.Department.Name,
		&r.facultyID, &f.Username, &f.FirstName, &f.LastName,
		&f.Phone, &f.Fax,
		&f.StreetAddress1, &f.StreetAddress2,
		&f.City, &f.State, &f.Zip,
	}
}

func (r *internshipRow) internship() *intern.Internship {
	i := r.i
	i.StudentAddress = intern.FormatAddress(r.studentStreet, r.studentCity, r.studentState, r.studentZip)
	if !r.facultyID.IsNil() {
		f := r.faculty
		f.ID = r.facultyID.ForceValue()
		i.Faculty = &f
	}
	return &i
}

// contactRow has the field layout of intern.EmergencyContact
type contactRow struct {
	ID           int64
	InternshipID int64
	Name         string
	Relation     string
	Phone        string
}

func (r *contactRow) TargetFields() []any {
	return []any{&r.ID, &r.InternshipID, &r.Name, &r.Relation, &r.Phone}
}

type termRow struct {
	code        string
	description string
	start, end  nullable.Time
}

func (r *termRow) TargetFields() []any {
	return []any{&r.code, &r.description, &r.start, &r.end}
}

type changeRow struct {
	id           int64
	internshipID int64
	username     string
	at           time.Time
	from, to     string
}

func (r *changeRow) TargetFields() []any {
	return []any{&r.id, &r.internshipID, &r.username, &r.at, &r.from, &r.to}
}
