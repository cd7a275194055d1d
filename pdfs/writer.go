package pdfs

import (
	"errors"
	"io"
)

// Align - horizontal alignment of a cell's text inside its box
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

var (
	ErrTemplateNotFound = errors.New("pdfs: template not found in store")
	ErrImport           = errors.New("pdfs: template page import failed")
)

// Writer - minimal, stream-style, append-only PDF writer. No page navigation
// T: Concrete Template Type -> depends on each implementation
// Coordinates are in the writer's unit with the origin at the top-left corner.
// Drawing calls never fail individually; the first backend error is kept and
// reported by Err and by every output method.
type Writer[T any] interface {
	PaperSize() PaperSize
	Orientation() string

	TemplateStore() *TemplateStore[T]
	// ImportPageAsTemplate imports page pageNum (1-based) of src and stores it under storeKey
	ImportPageAsTemplate(src io.ReadSeeker, pageNum int, storeKey string) error

	AddBlankPage()
	// AddTemplatePage appends a page with the stored template drawn as its background.
	// false if storeKey is unknown
	AddTemplatePage(storeKey string) bool
	PageCount() int

	SetFont(family string, style string, size float64)
	SetAutoPageBreak(auto bool, margin float64)

	// Cell draws single-line text in the w x h box at (x, y)
	Cell(x, y, w, h float64, text string, align Align)
	// MultiCell draws text wrapped to width w, h being the line height
	MultiCell(x, y, w, h float64, text string, align Align)

	Err() error

	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	ProduceBytes() ([]byte, error)
}
