package intern

import "time"

// TermDateLayout - how term dates are printed on the contract
const TermDateLayout = "01/02/2006"

type Term struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date,format:DateOnly"`
	EndDate     time.Time `json:"end_date,format:DateOnly"`
}

// GetID - terms are keyed by code
func (t *Term) GetID() string { return t.Code }

func (t *Term) StartDateFormatted() string {
	return formatDate(t.StartDate)
}

func (t *Term) EndDateFormatted() string {
	return formatDate(t.EndDate)
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(TermDateLayout)
}
