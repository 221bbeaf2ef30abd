package pdfloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePdftotext writes a shell stub that prints fixed text into the output
// file (the last argument), standing in for the real poppler binary.
func fakePdftotext(t *testing.T, dir string) string {
	t.Helper()
	script := filepath.Join(dir, "fake-pdftotext")
	content := "#!/bin/sh\nfor last; do :; done\nprintf 'EXTRACTED' > \"$last\"\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0755))
	return script
}

func TestPdftotextExtractorRemovesTextFile(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "stmt.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.5"), 0644))

	e := &PdftotextExtractor{Binary: fakePdftotext(t, dir)}
	text, err := e.ExtractText(pdf, "")
	require.NoError(t, err)
	assert.Equal(t, "EXTRACTED", text)

	_, statErr := os.Stat(pdf + ".txt")
	assert.True(t, os.IsNotExist(statErr))
}

func TestPdftotextExtractorKeepTextFile(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "stmt.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.5"), 0644))

	e := &PdftotextExtractor{Binary: fakePdftotext(t, dir), KeepTextFile: true}
	text, err := e.ExtractText(pdf, "")
	require.NoError(t, err)
	assert.Equal(t, "EXTRACTED", text)

	data, err := os.ReadFile(pdf + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "EXTRACTED", string(data))
}
