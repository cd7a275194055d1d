package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/gw-intern/contract"
	"github.com/zeptools/gw-intern/pdfs/pdftest"
	"github.com/zeptools/gw-intern/records"
)

// appRoot lays out config/.core.json and the template under a temp dir
func appRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pdf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", ".core.json"),
		[]byte(`{"app_name": "intern", "debug_opts": {"log_placements": true}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pdf", "AppStateInternshipContractNew.pdf"),
		pdftest.TemplatePDF(t, 2), 0o644))
	return root
}

func bundlePath(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "records", "testdata", "bundle.json"))
	require.NoError(t, err)
	return path
}

func TestParse(t *testing.T) {
	cases := [][]string{
		nil,
		{"render"},
		{"contract"},
		{"contract", "-id", "x"},
		{"history", "-id", "0"},
	}
	for _, args := range cases {
		_, _, err := parse(args)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}

	cmd, o, err := parse([]string{"contract", "-id", "42", "-bundle", "b.json", "-no-cache", "-out", "c.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "contract", cmd)
	assert.Equal(t, options{root: ".", dbName: "main", bundle: "b.json", noCache: true, id: 42, out: "c.pdf"}, o)
}

func TestContractToFile(t *testing.T) {
	root := appRoot(t)
	out := filepath.Join(t.TempDir(), "contract.pdf")
	err := run(context.Background(), []string{"contract", "-root", root, "-bundle", bundlePath(t), "-id", "42", "-out", out}, &bytes.Buffer{})
	require.NoError(t, err)

	pdf, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	tpl, err := contract.NewTemplate(pdf)
	require.NoError(t, err, "output keeps both pages")
	assert.Positive(t, tpl.Size())
}

func TestContractToStdout(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"contract", "-root", appRoot(t), "-bundle", bundlePath(t), "-id", "43"}, &stdout)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("%PDF-")))
}

func TestContractUnknownInternship(t *testing.T) {
	err := run(context.Background(), []string{"contract", "-root", appRoot(t), "-bundle", bundlePath(t), "-id", "99"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestContractMissingTemplate(t *testing.T) {
	root := appRoot(t)
	require.NoError(t, os.Remove(filepath.Join(root, "pdf", "AppStateInternshipContractNew.pdf")))
	err := run(context.Background(), []string{"contract", "-root", root, "-bundle", bundlePath(t), "-id", "42"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, contract.ErrTemplate)
}

func TestHistory(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"history", "-root", appRoot(t), "-bundle", bundlePath(t), "-id", "42"}, &stdout)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "New -> Ready for Signature Authority  by advisor")
	assert.Contains(t, lines[1], "Created -> New  by lovelacea")
}

func TestHistoryEmpty(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"history", "-root", appRoot(t), "-bundle", bundlePath(t), "-id", "43"}, &stdout)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestMissingConfig(t *testing.T) {
	err := run(context.Background(), []string{"history", "-root", t.TempDir(), "-bundle", bundlePath(t), "-id", "42"}, &bytes.Buffer{})
	assert.Error(t, err)
}
