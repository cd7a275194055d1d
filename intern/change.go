package intern

import (
	"fmt"
	"time"
)

// ChangeDateLayout - exact date shown next to the relative one
const ChangeDateLayout = "Jan 2, 2006 3:04 PM"

// Change is one workflow transition of an internship
type Change struct {
	ID           int64     `json:"id"`
	InternshipID int64     `json:"internship_id"`
	Username     string    `json:"username"`
	Timestamp    time.Time `json:"timestamp"`
	FromState    State     `json:"from_state"`
	ToState      State     `json:"to_state"`
}

func (c *Change) FormattedDate() string {
	return c.Timestamp.Format(ChangeDateLayout)
}

// RelativeDate describes the change time relative to now, coarsely
func (c *Change) RelativeDate(now time.Time) string {
	d := now.Sub(c.Timestamp)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 48*time.Hour:
		return "yesterday"
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month")
	default:
		return plural(int(d/(365*24*time.Hour)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// State is a workflow state name as stored with each change
type State string

var stateFriendlyNames = map[State]string{
	"CreationState":           "Created",
	"NewState":                "New",
	"SigAuthReadyState":       "Ready for Signature Authority",
	"SigAuthApprovedState":    "Signature Authority Approved",
	"DeanApprovedState":       "Dean Approved",
	"GradSchoolApprovedState": "Graduate School Approved",
	"RegisteredState":         "Registered",
	"CancelledState":          "Cancelled",
	"DeniedState":             "Denied",
}

// FriendlyName returns the display label; unknown states are shown by name
func (s State) FriendlyName() string {
	if name, ok := stateFriendlyNames[s]; ok {
		return name
	}
	return string(s)
}
