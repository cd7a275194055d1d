package fpdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/zeptools/gw-intern/pdfs"

	lowimpl "github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Unit for all coordinates handed to the Writer
const Unit = "mm"

// importBox - page box used when importing template pages
const importBox = "/MediaBox"

type Writer struct {
	paper       pdfs.PaperSize
	orientation string

	// implementation details, not exported
	doc       *lowimpl.Fpdf
	importer  *gofpdi.Importer
	streams   map[io.ReadSeeker]*io.ReadSeeker // gofpdi identifies a source by the address of its stream
	templates *pdfs.TemplateStore[int]
	tr        func(string) string // UTF-8 -> cp1252 for the core fonts
	out       []byte              // fpdf drains its buffer on Output, so the result is kept
}

// Ensure fpdf.Writer implements pdfs.Writer interface
var _ pdfs.Writer[int] = (*Writer)(nil)

// New returns a Writer with no pages. orientation: "P" or "L"
func New(paper pdfs.PaperSize, orientation string) *Writer {
	doc := lowimpl.NewCustom(&lowimpl.InitType{
		OrientationStr: orientation,
		UnitStr:        Unit,
		Size:           lowimpl.SizeType{Wd: paper.WidthMM(), Ht: paper.HeightMM()},
	})
	return &Writer{
		paper:       paper,
		orientation: orientation,
		doc:         doc,
		importer:    gofpdi.NewImporter(), // one importer per document: no state shared across renders
		streams:     make(map[io.ReadSeeker]*io.ReadSeeker),
		templates:   pdfs.NewTemplateStore[int](),
		tr:          doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.paper
}

func (w *Writer) Orientation() string {
	return w.orientation
}

func (w *Writer) TemplateStore() *pdfs.TemplateStore[int] {
	return w.templates
}

// SetMetadata fills the document information dictionary
func (w *Writer) SetMetadata(title string, creator string) {
	w.doc.SetTitle(title, true)
	w.doc.SetCreator(creator, true)
}

// ImportPageAsTemplate
// gofpdi reports unreadable input by panicking; that is turned into pdfs.ErrImport here
func (w *Writer) ImportPageAsTemplate(src io.ReadSeeker, pageNum int, storeKey string) (err error) {
	if src == nil {
		return fmt.Errorf("%w: nil source", pdfs.ErrImport)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: page %d: %v", pdfs.ErrImport, pageNum, rec)
		}
	}()
	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", pdfs.ErrImport, err)
	}
	tplID := w.importer.ImportPageFromStream(w.doc, w.streamRef(src), pageNum, importBox)
	if w.doc.Err() {
		return fmt.Errorf("%w: page %d: %v", pdfs.ErrImport, pageNum, w.doc.Error())
	}
	w.templates.Store(storeKey, tplID)
	return nil
}

// streamRef returns a stable pointer per source so that pages imported from
// the same stream share one parsed reader
func (w *Writer) streamRef(src io.ReadSeeker) *io.ReadSeeker {
	if ref, ok := w.streams[src]; ok {
		return ref
	}
	ref := &src
	w.streams[src] = ref
	return ref
}

func (w *Writer) AddBlankPage() {
	w.doc.AddPage()
}

func (w *Writer) AddTemplatePage(storeKey string) bool {
	tplID, ok := w.templates.Get(storeKey)
	if !ok {
		return false
	}
	w.doc.AddPage()
	pageW, pageH := w.doc.GetPageSize()
	defer func() {
		if rec := recover(); rec != nil {
			w.doc.SetError(fmt.Errorf("%w: use template %q: %v", pdfs.ErrImport, storeKey, rec))
		}
	}()
	w.importer.UseImportedTemplate(w.doc, tplID, 0, 0, pageW, pageH)
	return true
}

func (w *Writer) PageCount() int {
	return w.doc.PageCount()
}

func (w *Writer) SetFont(family string, style string, size float64) {
	w.doc.SetFont(family, style, size)
}

func (w *Writer) SetAutoPageBreak(auto bool, margin float64) {
	w.doc.SetAutoPageBreak(auto, margin)
}

func (w *Writer) Cell(x, y, width, height float64, text string, align pdfs.Align) {
	w.doc.SetXY(x, y)
	w.doc.CellFormat(width, height, w.tr(text), "", 0, string(align), false, 0, "")
}

func (w *Writer) MultiCell(x, y, width, height float64, text string, align pdfs.Align) {
	w.doc.SetXY(x, y)
	w.doc.MultiCell(width, height, w.tr(text), "", string(align), false)
}

func (w *Writer) Err() error {
	if w.doc.Err() {
		return w.doc.Error()
	}
	return nil
}

// ProduceBytes closes the document on first use. Drawing after that has no effect
func (w *Writer) ProduceBytes() ([]byte, error) {
	if w.out != nil {
		return w.out, nil
	}
	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return nil, err
	}
	w.out = buf.Bytes()
	return w.out, nil
}

func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	b, err := w.ProduceBytes()
	if err != nil {
		return 0, err
	}
	return bytes.NewReader(b).WriteTo(dst)
}

func (w *Writer) WriteToFile(filepath string) error {
	b, err := w.ProduceBytes()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, b, 0o644)
}
