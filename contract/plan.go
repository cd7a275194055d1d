package contract

import (
	"github.com/zeptools/gw-intern/intern"
)

// DefaultEmailDomain is appended to student and faculty email local parts
const DefaultEmailDomain = "appstate.edu"

// Input - everything drawn on one contract. Only Contacts[0] is used
type Input struct {
	Internship intern.Internship
	Contacts   []intern.EmergencyContact
	Term       intern.Term
}

type Options struct {
	EmailDomain string
	Layout      Layout // nil = DefaultLayout
	Creator     string // PDF creator metadata
}

func DefaultOptions() Options {
	return Options{
		EmailDomain: DefaultEmailDomain,
		Layout:      DefaultLayout,
	}
}

func (o Options) withDefaults() Options {
	if o.EmailDomain == "" {
		o.EmailDomain = DefaultEmailDomain
	}
	if o.Layout == nil {
		o.Layout = DefaultLayout
	}
	return o
}

// Placement is one cell to draw.
// Line is 0 for a single-line value, 1 and 2 for the halves of a wrapped one
type Placement struct {
	Field string
	Line  int
	Page  int
	Slot  Slot
	Text  string
}

// Plan evaluates the layout against in. It has no side effects and
// never fails: missing optional records only drop their fields
func Plan(in Input, opts Options) []Placement {
	opts = opts.withDefaults()
	placements := make([]Placement, 0, len(opts.Layout)+2)
	for _, rule := range opts.Layout {
		value, ok := rule.Value(&in, &opts)
		if !ok {
			continue
		}
		if rule.Wrap == nil {
			placements = append(placements, Placement{Field: rule.Field, Page: rule.Page, Slot: rule.Slot, Text: value})
			continue
		}
		first, rest, split := SplitAt(value, rule.Wrap.Limit)
		if !split {
			placements = append(placements, Placement{Field: rule.Field, Page: rule.Page, Slot: rule.Slot, Text: value})
			continue
		}
		placements = append(placements,
			Placement{Field: rule.Field, Line: 1, Page: rule.Page, Slot: rule.Slot, Text: first},
			Placement{Field: rule.Field, Line: 2, Page: rule.Page, Slot: rule.Wrap.Next, Text: rest},
		)
	}
	return placements
}

// SplitAt cuts s after limit characters when s has limit characters or more.
// The cut ignores word boundaries; first+rest == s always
func SplitAt(s string, limit int) (first string, rest string, split bool) {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], s[i:], true
		}
		count++
	}
	if count == limit {
		return s, "", true
	}
	return s, "", false
}
