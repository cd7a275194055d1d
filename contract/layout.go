package contract

import (
	"strings"

	"github.com/zeptools/gw-intern/intern"
	"github.com/zeptools/gw-intern/pdfs"
)

// Pages of the template, in order
const (
	PageContract         = 1
	PageEmergencyContact = 2
	pageCount            = 2
)

// Marker drawn in check boxes
const Marker = "X"

// Slot is a box on the page: top-left corner, width and height in mm.
// H is the line height for Multi slots
type Slot struct {
	X, Y  float64
	W, H  float64
	Align pdfs.Align
	Multi bool
}

func at(x, y, w, h float64) Slot {
	return Slot{X: x, Y: y, W: w, H: h}
}

func (s Slot) aligned(a pdfs.Align) Slot {
	s.Align = a
	return s
}

func (s Slot) multi() Slot {
	s.Multi = true
	return s
}

// Valuer yields the text of a field, or false to leave the field blank
type Valuer func(in *Input, opts *Options) (string, bool)

// Wrap splits a value over two slots once it reaches Limit characters.
// The first Limit characters stay in the rule's Slot and the rest goes to Next
type Wrap struct {
	Limit int
	Next  Slot
}

type Rule struct {
	Field string
	Page  int
	Slot  Slot
	Wrap  *Wrap
	Value Valuer
}

// Layout is evaluated top to bottom; drawing order follows the table
type Layout []Rule

// Rule returns the first rule for field
func (l Layout) Rule(field string) (Rule, bool) {
	for _, r := range l {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// Field names
const (
	FieldDepartment        = "department"
	FieldCourseTitle       = "course_title"
	FieldDomestic          = "domestic"
	FieldInternational     = "international"
	FieldStudentName       = "student_name"
	FieldBannerID          = "banner_id"
	FieldStudentEmail      = "student_email"
	FieldStudentPhone      = "student_phone"
	FieldStudentAddress    = "student_address"
	FieldPaid              = "paid"
	FieldUnpaid            = "unpaid"
	FieldStipend           = "stipend"
	FieldCreditHours       = "credit_hours"
	FieldHoursPerWeek      = "hours_per_week"
	FieldTerm              = "term"
	FieldTermStart         = "term_start"
	FieldTermEnd           = "term_end"
	FieldFacultyName       = "faculty_name"
	FieldFacultyStreet1    = "faculty_street1"
	FieldFacultyStreet2    = "faculty_street2"
	FieldFacultyCity       = "faculty_city"
	FieldFacultyState      = "faculty_state"
	FieldFacultyZip        = "faculty_zip"
	FieldFacultyPhone      = "faculty_phone"
	FieldFacultyFax        = "faculty_fax"
	FieldFacultyEmail      = "faculty_email"
	FieldAgencyName        = "agency_name"
	FieldAgencyAddress     = "agency_address"
	FieldSupervisor        = "supervisor"
	FieldSupervisorAddress = "supervisor_address"
	FieldSupervisorEmail   = "supervisor_email"
	FieldSupervisorPhone   = "supervisor_phone"
	FieldSupervisorFax     = "supervisor_fax"
	FieldLocation          = "location"
	FieldContactName       = "contact_name"
	FieldContactRelation   = "contact_relation"
	FieldContactPhone      = "contact_phone"
)

// Overflow thresholds, in characters
const (
	AgencyAddressLimit     = 49
	SupervisorAddressLimit = 54
)

// DefaultLayout is calibrated to AppStateInternshipContractNew.pdf
var DefaultLayout = Layout{
	// internship
	{Field: FieldDepartment, Page: PageContract, Slot: at(138, 40, 73, 3).multi(), Value: text(func(i *intern.Internship) string { return i.Department.Name })},
	{Field: FieldCourseTitle, Page: PageContract, Slot: at(138, 52, 73, 6), Value: text(func(i *intern.Internship) string { return i.CourseTitle })},
	{Field: FieldDomestic, Page: PageContract, Slot: at(85, 68, 24, 5).aligned(pdfs.AlignCenter), Value: mark(func(i *intern.Internship) bool { return i.Domestic })},
	{Field: FieldInternational, Page: PageContract, Slot: at(168, 68, 24, 5).aligned(pdfs.AlignCenter), Value: mark(func(i *intern.Internship) bool { return i.International })},

	// student
	{Field: FieldStudentName, Page: PageContract, Slot: at(40, 84, 55, 5), Value: text((*intern.Internship).FullName)},
	{Field: FieldBannerID, Page: PageContract, Slot: at(155, 84, 42, 5), Value: text(func(i *intern.Internship) string { return i.BannerID })},
	{Field: FieldStudentEmail, Page: PageContract, Slot: at(41, 94, 54, 5), Value: email(func(in *Input) string { return in.Internship.Email })},
	{Field: FieldStudentPhone, Page: PageContract, Slot: at(127, 94, 54, 5), Value: text(func(i *intern.Internship) string { return i.Phone })},
	{Field: FieldStudentAddress, Page: PageContract, Slot: at(60, 89, 54, 5), Value: text(func(i *intern.Internship) string { return i.StudentAddress })},

	// compensation: paid and unpaid are exclusive, exactly one is marked
	{Field: FieldPaid, Page: PageContract, Slot: at(25, 99, 10, 5), Value: mark(func(i *intern.Internship) bool { return i.Paid })},
	{Field: FieldUnpaid, Page: PageContract, Slot: at(87, 99, 10, 5), Value: mark(func(i *intern.Internship) bool { return !i.Paid })},
	{Field: FieldStipend, Page: PageContract, Slot: at(56, 99, 10, 5), Value: mark(func(i *intern.Internship) bool { return i.Stipend })},

	// workload and term
	{Field: FieldCreditHours, Page: PageContract, Slot: at(190, 100, 12, 5), Value: text(func(i *intern.Internship) string { return i.CreditHours.Text() })},
	{Field: FieldHoursPerWeek, Page: PageContract, Slot: at(147, 100, 12, 5), Value: text(func(i *intern.Internship) string { return i.AvgHoursPerWeek.Text() })},
	{Field: FieldTerm, Page: PageContract, Slot: at(1, 103, 27, 6).aligned(pdfs.AlignRight), Value: term(func(t *intern.Term) string { return t.Description })},
	{Field: FieldTermStart, Page: PageContract, Slot: at(87, 106, 30, 5).aligned(pdfs.AlignCenter), Value: term((*intern.Term).StartDateFormatted)},
	{Field: FieldTermEnd, Page: PageContract, Slot: at(160, 106, 30, 5).aligned(pdfs.AlignCenter), Value: term((*intern.Term).EndDateFormatted)},

	// faculty supervisor, whole block skipped without one
	{Field: FieldFacultyName, Page: PageContract, Slot: at(28, 119, 81, 5), Value: faculty((*intern.Faculty).FullName)},
	{Field: FieldFacultyStreet1, Page: PageContract, Slot: at(31, 126, 81, 5), Value: faculty(func(f *intern.Faculty) string { return f.StreetAddress1 })},
	{Field: FieldFacultyStreet2, Page: PageContract, Slot: at(16, 133, 81, 5), Value: faculty(func(f *intern.Faculty) string { return f.StreetAddress2 })},
	{Field: FieldFacultyCity, Page: PageContract, Slot: at(60, 133, 81, 5), Value: faculty(func(f *intern.Faculty) string { return f.City })},
	{Field: FieldFacultyState, Page: PageContract, Slot: at(88, 133, 81, 5), Value: faculty(func(f *intern.Faculty) string { return f.State })},
	{Field: FieldFacultyZip, Page: PageContract, Slot: at(95, 133, 81, 5), Value: faculty(func(f *intern.Faculty) string { return f.Zip })},
	{Field: FieldFacultyPhone, Page: PageContract, Slot: at(29, 140, 77, 5), Value: faculty(func(f *intern.Faculty) string { return f.Phone })},
	{Field: FieldFacultyFax, Page: PageContract, Slot: at(25, 147, 77, 5), Value: faculty(func(f *intern.Faculty) string { return f.Fax })},
	{Field: FieldFacultyEmail, Page: PageContract, Slot: at(28, 154, 77, 5), Value: facultyEmail},

	// agency
	{Field: FieldAgencyName, Page: PageContract, Slot: at(139, 117, 71, 5), Value: agency(func(a *intern.Agency) string { return a.Name })},
	{Field: FieldAgencyAddress, Page: PageContract, Slot: at(127, 122, 77, 5), Wrap: &Wrap{Limit: AgencyAddressLimit, Next: at(113, 127, 77, 5)}, Value: agency((*intern.Agency).StreetAddress)},
	{Field: FieldSupervisor, Page: PageContract, Slot: at(113, 138, 75, 5), Value: agency(supervisorDisplay)},
	{Field: FieldSupervisorAddress, Page: PageContract, Slot: at(113, 143, 78, 5), Wrap: &Wrap{Limit: SupervisorAddressLimit, Next: at(113, 148, 78, 5)}, Value: agency((*intern.Agency).SupervisorStreetAddress)},
	{Field: FieldSupervisorEmail, Page: PageContract, Slot: at(125, 159, 72, 5), Value: agency(func(a *intern.Agency) string { return a.SupervisorEmail })},
	{Field: FieldSupervisorPhone, Page: PageContract, Slot: at(125, 154, 33, 5), Value: agency(func(a *intern.Agency) string { return a.SupervisorPhone })},
	{Field: FieldSupervisorFax, Page: PageContract, Slot: at(166, 154, 40, 5), Value: agency(func(a *intern.Agency) string { return a.SupervisorFax })},
	{Field: FieldLocation, Page: PageContract, Slot: at(112, 169, 52, 5), Value: location},

	// emergency contact, first one only
	{Field: FieldContactName, Page: PageEmergencyContact, Slot: at(60, 274, 52, 0), Value: contact(func(c *intern.EmergencyContact) string { return c.Name })},
	{Field: FieldContactRelation, Page: PageEmergencyContact, Slot: at(134, 274, 52, 0), Value: contact(func(c *intern.EmergencyContact) string { return c.Relation })},
	{Field: FieldContactPhone, Page: PageEmergencyContact, Slot: at(175, 274, 52, 0), Value: contact(func(c *intern.EmergencyContact) string { return c.Phone })},
}

func text(get func(*intern.Internship) string) Valuer {
	return func(in *Input, _ *Options) (string, bool) {
		return get(&in.Internship), true
	}
}

func mark(cond func(*intern.Internship) bool) Valuer {
	return func(in *Input, _ *Options) (string, bool) {
		return Marker, cond(&in.Internship)
	}
}

func term(get func(*intern.Term) string) Valuer {
	return func(in *Input, _ *Options) (string, bool) {
		return get(&in.Term), true
	}
}

func agency(get func(*intern.Agency) string) Valuer {
	return func(in *Input, _ *Options) (string, bool) {
		return get(&in.Internship.Agency), true
	}
}

func faculty(get func(*intern.Faculty) string) Valuer {
	return func(in *Input, _ *Options) (string, bool) {
		if !in.Internship.HasFaculty() {
			return "", false
		}
		return get(in.Internship.Faculty), true
	}
}

func contact(get func(*intern.EmergencyContact) string) Valuer {
	return func(in *Input, _ *Options) (string, bool) {
		if len(in.Contacts) == 0 {
			return "", false
		}
		return get(&in.Contacts[0]), true
	}
}

// email appends the institutional domain to a local part, even an empty one
func email(local func(*Input) string) Valuer {
	return func(in *Input, opts *Options) (string, bool) {
		return local(in) + "@" + opts.EmailDomain, true
	}
}

func facultyEmail(in *Input, opts *Options) (string, bool) {
	if !in.Internship.HasFaculty() {
		return "", false
	}
	return email(func(in *Input) string { return in.Internship.Faculty.Username })(in, opts)
}

// supervisorDisplay - the name, then ", <title>" whenever a title is set,
// even with no name
func supervisorDisplay(a *intern.Agency) string {
	display := a.SupervisorFullName()
	if a.SupervisorTitle != "" {
		display += ", " + a.SupervisorTitle
	}
	return display
}

// location is only filled in when the internship is not at the agency's address
func location(in *Input, _ *Options) (string, bool) {
	where := strings.TrimSpace(in.Internship.StreetAddress())
	agencyAt := strings.TrimSpace(in.Internship.Agency.StreetAddress())
	if where == "" || agencyAt == "" || where == agencyAt {
		return "", false
	}
	return in.Internship.LocationAddress(), true
}
