// Package history lists the workflow changes of one internship, oldest first
// or in whatever order the caller supplies.
package history

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/zeptools/gw-intern/intern"
	"github.com/zeptools/gw-intern/tpl"
)

// ListTemplate is the key of the embedded list template
const ListTemplate = "history/list"

//go:embed templates
var templateFS embed.FS

// Row is one rendered change
type Row struct {
	RelativeDate string
	ExactDate    string
	FromState    string
	ToState      string
	Username     string
}

// Rows maps changes to rows in the same order. No changes → nil
func Rows(changes []intern.Change, now time.Time) []Row {
	if len(changes) == 0 {
		return nil
	}
	rows := make([]Row, len(changes))
	for i := range changes {
		c := &changes[i]
		rows[i] = Row{
			RelativeDate: c.RelativeDate(now),
			ExactDate:    c.FormattedDate(),
			FromState:    c.FromState.FriendlyName(),
			ToState:      c.ToState.FriendlyName(),
			Username:     c.Username,
		}
	}
	return rows
}

type Renderer struct {
	store *tpl.TextTemplateStore
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	store := tpl.NewTextTemplateStore()
	if err := store.LoadBaseTemplates(templateFS, "templates"); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return &Renderer{store: store}, nil
}

// Render returns "" when there are no changes
func (r *Renderer) Render(changes []intern.Change, now time.Time) (string, error) {
	rows := Rows(changes, now)
	if rows == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := r.store.Execute(&sb, ListTemplate, rows); err != nil {
		return "", fmt.Errorf("history: %w", err)
	}
	return sb.String(), nil
}
