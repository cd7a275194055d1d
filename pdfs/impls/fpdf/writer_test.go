package fpdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/gw-intern/pdfs"
	"github.com/zeptools/gw-intern/pdfs/pdftest"
)

func TestImportAndOverlayTwoPages(t *testing.T) {
	src := bytes.NewReader(pdftest.TemplatePDF(t, 2))
	w := New(pdfs.LetterSize, "P")

	require.NoError(t, w.ImportPageAsTemplate(src, 1, "p1"))
	require.NoError(t, w.ImportPageAsTemplate(src, 2, "p2"))
	assert.Equal(t, 2, w.TemplateStore().Len())

	require.True(t, w.AddTemplatePage("p1"))
	w.SetFont("Times", "", 10)
	w.Cell(40, 84, 55, 5, "Zoë Example", pdfs.AlignLeft)
	w.MultiCell(138, 40, 73, 3, "Department of Computer Science", "")
	require.True(t, w.AddTemplatePage("p2"))
	w.Cell(60, 274, 52, 0, "Contact", "")

	require.NoError(t, w.Err())
	assert.Equal(t, 2, w.PageCount())

	out, err := w.ProduceBytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	again, err := w.ProduceBytes()
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestAddTemplatePageUnknownKey(t *testing.T) {
	w := New(pdfs.LetterSize, "P")
	assert.False(t, w.AddTemplatePage("missing"))
	assert.Equal(t, 0, w.PageCount())
}

func TestImportRejectsGarbage(t *testing.T) {
	w := New(pdfs.LetterSize, "P")
	err := w.ImportPageAsTemplate(bytes.NewReader([]byte("this is not a pdf")), 1, "p1")
	require.ErrorIs(t, err, pdfs.ErrImport)
	assert.False(t, w.TemplateStore().Has("p1"))
}

func TestImportRejectsMissingPage(t *testing.T) {
	w := New(pdfs.LetterSize, "P")
	err := w.ImportPageAsTemplate(bytes.NewReader(pdftest.TemplatePDF(t, 1)), 2, "p2")
	require.ErrorIs(t, err, pdfs.ErrImport)
}

func TestWriteToAndFile(t *testing.T) {
	w := New(pdfs.LetterSize, "P")
	w.AddBlankPage()
	w.SetFont("Times", "", 10)
	w.Cell(10, 10, 50, 5, "hello", pdfs.AlignCenter)

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, w.WriteToFile(path))
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), onDisk)
}
