package ingest

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"corpusengine"
)

// PDFSource extracts one flat article text per PDF file, page by page, in
// visual reading order. Unlike the teacher parser this package is adapted
// from, it does not split a PDF into headed sections or extract images:
// the engine's corpus wants one article string per document, not a tree of
// sections.
type PDFSource struct{}

func (PDFSource) Parse(path string) (Article, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return Article{}, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.PDFSource.Parse", "opening PDF", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := extractPageTextOrdered(page)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return Article{Text: strings.Join(pages, " ")}, nil
}

// extractPageTextOrdered groups a page's text elements into visual lines by
// Y proximity and joins them top to bottom, falling back to the library's
// plain-text extraction when the page carries no positioned text runs.
// Grounded directly on the teacher repo's parser/pdf.go technique.
func extractPageTextOrdered(page pdf.Page) (string, error) {
	content := page.Content()
	if len(content.Text) == 0 {
		return page.GetPlainText(nil)
	}

	const lineTolerance = 3.0
	type visualLine struct {
		y   float64
		buf strings.Builder
	}
	var lines []*visualLine
	var cur *visualLine
	for _, t := range content.Text {
		if cur == nil || math.Abs(t.Y-cur.y) > lineTolerance {
			lines = append(lines, &visualLine{y: t.Y})
			cur = lines[len(lines)-1]
		}
		cur.buf.WriteString(t.S)
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var parts []string
	for _, l := range lines {
		text := strings.TrimSpace(l.buf.String())
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
