package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/gw-intern/pdfs/pdftest"
)

func TestLoadTemplate(t *testing.T) {
	path := pdftest.TemplateFile(t, 2)
	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, path, tpl.Path())
	assert.Positive(t, tpl.Size())
}

func TestLoadTemplateRejects(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("plain text"), 0o644))
	truncated := filepath.Join(dir, "truncated.pdf")
	require.NoError(t, os.WriteFile(truncated, []byte("%PDF-1.4\n1 0 obj"), 0o644))

	cases := map[string]string{
		"missing":   filepath.Join(dir, "absent.pdf"),
		"not a pdf": notPDF,
		"truncated": truncated,
		"one page":  pdftest.TemplateFile(t, 1),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			tpl, err := LoadTemplate(path)
			assert.Nil(t, tpl)
			assert.ErrorIs(t, err, ErrTemplate)
		})
	}
}

func TestPageKeysAreDistinct(t *testing.T) {
	assert.NotEqual(t, pageKey(PageContract), pageKey(PageEmergencyContact))
}

func TestTemplateDigest(t *testing.T) {
	a, err := NewTemplate(pdftest.TemplatePDF(t, 2))
	require.NoError(t, err)
	b, err := NewTemplate(pdftest.TemplatePDF(t, 3))
	require.NoError(t, err)
	assert.Len(t, a.Digest(), 64)
	assert.Equal(t, a.Digest(), a.Digest())
	assert.NotEqual(t, a.Digest(), b.Digest())
}
