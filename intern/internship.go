package intern

import (
	"strings"

	"github.com/zeptools/gw-intern/nullable"
)

type Internship struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	BannerID   string `json:"banner"`
	Email      string `json:"email"` // local part only, the domain is appended when drawn
	Phone      string `json:"phone"`

	StudentAddress string `json:"student_address"`

	// internship location
	LocAddress  string `json:"loc_address"`
	LocCity     string `json:"loc_city"`
	LocState    string `json:"loc_state"`
	LocZip      string `json:"loc_zip"`
	LocProvince string `json:"loc_province"` // international only
	LocCountry  string `json:"loc_country"`  // international only

	Domestic      bool `json:"domestic"`
	International bool `json:"international"`
	Paid          bool `json:"paid"`
	Stipend       bool `json:"stipend"`

	CreditHours     nullable.Int `json:"credits"`
	AvgHoursPerWeek nullable.Int `json:"avg_hours_week"`
	CourseTitle     string       `json:"course_title"`
	TermCode        string       `json:"term"`

	Agency     Agency     `json:"agency"`
	Department Department `json:"department"`
	Faculty    *Faculty   `json:"faculty,omitempty"` // nil when no faculty supervisor is assigned
}

func (i *Internship) GetID() int64 { return i.ID }

func (i *Internship) FullName() string {
	return joinNonEmpty(" ", i.FirstName, i.MiddleName, i.LastName)
}

// StreetAddress of the internship location, formatted like Agency.StreetAddress
func (i *Internship) StreetAddress() string {
	return FormatAddress(i.LocAddress, i.LocCity, i.LocState, i.LocZip)
}

// LocationAddress is StreetAddress followed by province and country when set
func (i *Internship) LocationAddress() string {
	return joinNonEmpty(", ", i.StreetAddress(), i.LocProvince, i.LocCountry)
}

// HasFaculty reports whether a faculty supervisor is associated
func (i *Internship) HasFaculty() bool {
	return i.Faculty != nil
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Faculty struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Fax            string `json:"fax"`
	StreetAddress1 string `json:"street_address1"`
	StreetAddress2 string `json:"street_address2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
}

func (f *Faculty) FullName() string {
	return joinNonEmpty(" ", f.FirstName, f.LastName)
}

type EmergencyContact struct {
	ID           int64  `json:"id"`
	InternshipID int64  `json:"internship_id"`
	Name         string `json:"name"`
	Relation     string `json:"relation"`
	Phone        string `json:"phone"`
}

// joinNonEmpty joins the trimmed, non-empty parts with sep
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
