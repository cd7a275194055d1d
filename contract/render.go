package contract

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/zeptools/gw-intern/intern"
	"github.com/zeptools/gw-intern/pdfs"
	"github.com/zeptools/gw-intern/pdfs/impls/fpdf"
)

var ErrRender = errors.New("contract: rendering failed")

// Text style of every overlay field
const (
	fontFamily = "Times"
	fontSize   = 10
)

const DocumentTitle = "Internship Contract"

// Render draws plan on top of the template pages, page 1 then page 2
func Render[T any](w pdfs.Writer[T], tpl *Template, plan []Placement) error {
	if tpl == nil {
		return fmt.Errorf("%w: no template", ErrTemplate)
	}
	if err := importPages(tpl, w); err != nil {
		return err
	}
	for page := 1; page <= pageCount; page++ {
		if !w.AddTemplatePage(pageKey(page)) {
			return fmt.Errorf("%w: page %d: %w", ErrRender, page, pdfs.ErrTemplateNotFound)
		}
		if page == 1 {
			w.SetFont(fontFamily, "", fontSize)
			w.SetAutoPageBreak(true, 0)
		}
		for _, p := range plan {
			if p.Page == page {
				draw(w, p)
			}
		}
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func draw[T any](w pdfs.Writer[T], p Placement) {
	s := p.Slot
	if s.Multi {
		w.MultiCell(s.X, s.Y, s.W, s.H, p.Text, s.Align)
		return
	}
	w.Cell(s.X, s.Y, s.W, s.H, p.Text, s.Align)
}

// Document is a rendered contract, owned by the caller
type Document struct {
	writer     *fpdf.Writer
	placements []Placement
}

// Generate renders in over tpl into a new in-memory PDF
func Generate(tpl *Template, in Input, opts Options) (*Document, error) {
	opts = opts.withDefaults()
	w := fpdf.New(pdfs.LetterSize, "P")
	w.SetMetadata(DocumentTitle, opts.Creator)
	plan := Plan(in, opts)
	if err := Render[int](w, tpl, plan); err != nil {
		log.Printf("[ERROR][CONTRACT] internship %d: %v", in.Internship.ID, err)
		return nil, err
	}
	return &Document{writer: w, placements: plan}, nil
}

// NewView renders the contract for one internship; the result is complete on return
func NewView(tpl *Template, internship intern.Internship, contacts []intern.EmergencyContact, term intern.Term, opts Options) (*Document, error) {
	return Generate(tpl, Input{Internship: internship, Contacts: contacts, Term: term}, opts)
}

// PDF returns the underlying writer holding the rendered pages
func (d *Document) PDF() pdfs.Writer[int] {
	return d.writer
}

func (d *Document) Placements() []Placement {
	return append([]Placement(nil), d.placements...)
}

func (d *Document) PageCount() int {
	return d.writer.PageCount()
}

func (d *Document) Bytes() ([]byte, error) {
	b, err := d.writer.ProduceBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return b, nil
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.writer.WriteTo(w)
}

func (d *Document) WriteToFile(path string) error {
	return d.writer.WriteToFile(path)
}
