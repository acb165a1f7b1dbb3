package ingest_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"corpusengine/internal/ingest"
)

func TestSourceForPathDispatch(t *testing.T) {
	cases := []struct {
		path    string
		wantErr bool
	}{
		{"a.pdf", false},
		{"a.docx", false},
		{"a.pptx", false},
		{"a.txt", false},
		{"a.xlsx", true}, // batch-only, see ReadSpreadsheet
		{"a.rtf", true},
	}
	for _, c := range cases {
		_, err := ingest.SourceForPath(c.path)
		if c.wantErr {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestTextSourceParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	a, err := ingest.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", a.Text)
	assert.Equal(t, "note", a.ID)
}

func writeMinimalDocx(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="ns"><w:body>
<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> paragraph.</w:t></w:r></w:p>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestDOCXSourceParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	writeMinimalDocx(t, path)

	a, err := ingest.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph. Second paragraph.", a.Text)
}

func writeMinimalPptx(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("ppt/slides/slide1.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<p:sld xmlns:p="ns" xmlns:a="ns"><p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>Slide one title</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld></p:sld>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestPPTXSourceParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slides.pptx")
	writeMinimalPptx(t, path)

	a, err := ingest.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Slide one title", a.Text)
}

func TestReadSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.xlsx")

	xf := excelize.NewFile()
	sheet := "Sheet1"
	require.NoError(t, xf.SetCellValue(sheet, "A1", "article_id"))
	require.NoError(t, xf.SetCellValue(sheet, "B1", "date"))
	require.NoError(t, xf.SetCellValue(sheet, "C1", "text"))
	require.NoError(t, xf.SetCellValue(sheet, "A2", "a1"))
	require.NoError(t, xf.SetCellValue(sheet, "B2", "2020-01-01"))
	require.NoError(t, xf.SetCellValue(sheet, "C2", "hello"))
	require.NoError(t, xf.SaveAs(path))
	require.NoError(t, xf.Close())

	articles, err := ingest.ReadSpreadsheet(path)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "a1", articles[0].ID)
	assert.Equal(t, "2020-01-01", articles[0].Date)
	assert.Equal(t, "hello", articles[0].Text)
}

func TestReadSpreadsheetRejectsHeaderlessSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	xf := excelize.NewFile()
	require.NoError(t, xf.SaveAs(path))
	require.NoError(t, xf.Close())

	_, err := ingest.ReadSpreadsheet(path)
	assert.Error(t, err)
}
