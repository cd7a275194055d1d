// Package pdftest builds fixture templates and records drawing calls for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeptools/gw-intern/pdfs"

	lowimpl "github.com/go-pdf/fpdf"
)

// TemplatePDF returns a Letter-size PDF with the given number of pages,
// each page carrying a caption so imported backgrounds are non-empty
func TemplatePDF(tb testing.TB, pages int) []byte {
	tb.Helper()
	doc := lowimpl.New("P", "mm", "Letter", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 1; i <= pages; i++ {
		doc.AddPage()
		doc.Cell(40, 10, fmt.Sprintf("fixture template page %d", i))
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		tb.Fatalf("build fixture template: %v", err)
	}
	return buf.Bytes()
}

// TemplateFile writes TemplatePDF into a temp dir and returns its path
func TemplateFile(tb testing.TB, pages int) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "template.pdf")
	if err := os.WriteFile(path, TemplatePDF(tb, pages), 0o644); err != nil {
		tb.Fatalf("write fixture template: %v", err)
	}
	return path
}

// Op is one recorded Writer call
type Op struct {
	Kind  string // "page", "cell", "multicell", "font", "autobreak"
	Page  int
	Key   string // template key for "page"
	X, Y  float64
	W, H  float64
	Text  string
	Align pdfs.Align
}

// Recorder is an in-memory pdfs.Writer that remembers every call.
// Template handles are the store keys themselves
type Recorder struct {
	Ops []Op

	// FailImport makes ImportPageAsTemplate fail for that page number
	FailImport int
	// LoseImport makes ImportPageAsTemplate report success for that page
	// number without storing it
	LoseImport int

	templates *pdfs.TemplateStore[string]
	pages     int
	err       error
}

var _ pdfs.Writer[string] = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{templates: pdfs.NewTemplateStore[string]()}
}

func (r *Recorder) PaperSize() pdfs.PaperSize { return pdfs.LetterSize }
func (r *Recorder) Orientation() string       { return "P" }

func (r *Recorder) TemplateStore() *pdfs.TemplateStore[string] { return r.templates }

func (r *Recorder) ImportPageAsTemplate(_ io.ReadSeeker, pageNum int, storeKey string) error {
	if r.FailImport == pageNum {
		return fmt.Errorf("%w: page %d", pdfs.ErrImport, pageNum)
	}
	if r.LoseImport == pageNum {
		return nil
	}
	r.templates.Store(storeKey, storeKey)
	return nil
}

func (r *Recorder) AddBlankPage() {
	r.pages++
	r.Ops = append(r.Ops, Op{Kind: "page", Page: r.pages})
}

func (r *Recorder) AddTemplatePage(storeKey string) bool {
	if !r.templates.Has(storeKey) {
		return false
	}
	r.pages++
	r.Ops = append(r.Ops, Op{Kind: "page", Page: r.pages, Key: storeKey})
	return true
}

func (r *Recorder) PageCount() int { return r.pages }

func (r *Recorder) SetFont(family string, style string, size float64) {
	r.Ops = append(r.Ops, Op{Kind: "font", Page: r.pages, Text: family + " " + style, H: size})
}

func (r *Recorder) SetAutoPageBreak(auto bool, margin float64) {
	r.Ops = append(r.Ops, Op{Kind: "autobreak", Page: r.pages, Text: fmt.Sprint(auto), H: margin})
}

func (r *Recorder) Cell(x, y, w, h float64, text string, align pdfs.Align) {
	r.Ops = append(r.Ops, Op{Kind: "cell", Page: r.pages, X: x, Y: y, W: w, H: h, Text: text, Align: align})
}

func (r *Recorder) MultiCell(x, y, w, h float64, text string, align pdfs.Align) {
	r.Ops = append(r.Ops, Op{Kind: "multicell", Page: r.pages, X: x, Y: y, W: w, H: h, Text: text, Align: align})
}

// Cells returns the drawn text ops ("cell" and "multicell") in order
func (r *Recorder) Cells() []Op {
	var cells []Op
	for _, op := range r.Ops {
		if op.Kind == "cell" || op.Kind == "multicell" {
			cells = append(cells, op)
		}
	}
	return cells
}

func (r *Recorder) Err() error { return r.err }

func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "recorded %d ops on %d pages", len(r.Ops), r.pages)
	return int64(n), err
}

func (r *Recorder) WriteToFile(filepath string) error {
	b, _ := r.ProduceBytes()
	return os.WriteFile(filepath, b, 0o644)
}

func (r *Recorder) ProduceBytes() ([]byte, error) {
	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	return buf.Bytes(), err
}
