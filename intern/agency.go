package intern

type Agency struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`

	SupervisorFirstName string `json:"supervisor_first_name"`
	SupervisorLastName  string `json:"supervisor_last_name"`
	SupervisorTitle     string `json:"supervisor_title"`
	SupervisorEmail     string `json:"supervisor_email"`
	SupervisorPhone     string `json:"supervisor_phone"`
	SupervisorFax       string `json:"supervisor_fax"`
	SupervisorAddress   string `json:"supervisor_address"`
	SupervisorCity      string `json:"supervisor_city"`
	SupervisorState     string `json:"supervisor_state"`
	SupervisorZip       string `json:"supervisor_zip"`
}

// StreetAddress - "<address>, <city>, <state> <zip>", empty parts dropped
func (a *Agency) StreetAddress() string {
	return FormatAddress(a.Address, a.City, a.State, a.Zip)
}

func (a *Agency) SupervisorFullName() string {
	return joinNonEmpty(" ", a.SupervisorFirstName, a.SupervisorLastName)
}

// SupervisorStreetAddress may differ from StreetAddress when the supervisor sits elsewhere
func (a *Agency) SupervisorStreetAddress() string {
	return FormatAddress(a.SupervisorAddress, a.SupervisorCity, a.SupervisorState, a.SupervisorZip)
}

// FormatAddress joins "<street>, <city>, <state> <zip>", dropping empty parts
func FormatAddress(street, city, state, zip string) string {
	return joinNonEmpty(", ", street, city, joinNonEmpty(" ", state, zip))
}
