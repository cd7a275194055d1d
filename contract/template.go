package contract

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/zeptools/gw-intern/pdfs"
	"github.com/zeptools/gw-intern/pdfs/impls/fpdf"
)

// ErrTemplate - the template asset is missing or unusable. Not recoverable at runtime
var ErrTemplate = errors.New("contract: template asset unusable")

var pdfSignature = []byte("%PDF-")

// Template is the pre-printed contract. It is read once and never modified,
// so a single Template can back any number of concurrent renders
type Template struct {
	path string
	data []byte
}

// LoadTemplate reads and checks the template file at path
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	tpl, err := NewTemplate(data)
	if err != nil {
		return nil, err
	}
	tpl.path = path
	log.Printf("[INFO][CONTRACT] template loaded from %s (%d bytes)", path, len(data))
	return tpl, nil
}

// NewTemplate checks data is a PDF whose contract pages can be imported
func NewTemplate(data []byte) (*Template, error) {
	if !bytes.HasPrefix(data, pdfSignature) {
		return nil, fmt.Errorf("%w: not a PDF document", ErrTemplate)
	}
	tpl := &Template{data: data}
	// dry run: importing every page up front surfaces a corrupt asset at load time
	probe := fpdf.New(pdfs.LetterSize, "P")
	if err := importPages[int](tpl, probe); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (t *Template) Path() string {
	return t.path
}

func (t *Template) Size() int {
	return len(t.data)
}

// Digest identifies the template content (hex sha256)
func (t *Template) Digest() string {
	sum := sha256.Sum256(t.data)
	return hex.EncodeToString(sum[:])
}

// pageKey - TemplateStore key of a template page
func pageKey(page int) string {
	return fmt.Sprintf("contract-page-%d", page)
}

func importPages[T any](t *Template, w pdfs.Writer[T]) error {
	src := bytes.NewReader(t.data)
	for page := 1; page <= pageCount; page++ {
		if err := w.ImportPageAsTemplate(src, page, pageKey(page)); err != nil {
			return fmt.Errorf("%w: %w", ErrTemplate, err)
		}
	}
	return nil
}
