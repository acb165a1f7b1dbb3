package ingest

import (
	"archive/zip"
	"encoding/xml"
	"strings"

	"corpusengine"
)

// DOCXSource reads word/document.xml out of the OOXML zip container and
// flattens every paragraph and table into one article string: all
// paragraphs first, then all tables, so the interleaving of paragraphs and
// tables in the document is not preserved. Unlike the teacher parser this is adapted from, it does not split
// the document into headed sections or extract embedded images: the
// engine's corpus wants one article string per document, not a tree of
// sections plus a relationship graph.
type DOCXSource struct{}

func (DOCXSource) Parse(path string) (Article, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Article{}, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.DOCXSource.Parse", "opening DOCX container", err)
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Article{}, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.DOCXSource.Parse", "word/document.xml not found in container", nil)
	}

	rc, err := docFile.Open()
	if err != nil {
		return Article{}, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.DOCXSource.Parse", "opening word/document.xml", err)
	}
	defer rc.Close()

	var doc docxDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return Article{}, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.DOCXSource.Parse", "decoding word/document.xml", err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paras {
		text := extractDocxParaText(para)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(text)
	}
	for _, tbl := range doc.Body.Tables {
		text := extractDocxTableText(tbl)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(text)
	}

	return Article{Text: b.String()}, nil
}

type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	XMLName xml.Name    `xml:"body"`
	Paras   []docxPara  `xml:"p"`
	Tables  []docxTable `xml:"tbl"`
}

type docxPara struct {
	XMLName xml.Name  `xml:"p"`
	Runs    []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

func extractDocxParaText(para docxPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

func extractDocxTableText(tbl docxTable) string {
	var parts []string
	for _, row := range tbl.Rows {
		for _, cell := range row.Cells {
			for _, p := range cell.Paras {
				text := extractDocxParaText(p)
				if text != "" {
					parts = append(parts, text)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
