// Package ingest turns source documents (PDF, DOCX, PPTX, XLSX, plain
// text) into the (articleID, isoDate, text) triples corpus.Create and
// corpus.CombineContinuous consume. It is explicitly the "parser"
// collaborator spec.md §1 calls out of scope for the engine core: nothing
// under internal/corpus, internal/pipeline or internal/topicmodel imports
// this package.
package ingest

import (
	"path/filepath"
	"strings"

	"corpusengine"
)

// Article is a single ingested document ready to feed corpus.Create.
type Article struct {
	ID   string
	Date string // YYYY-MM-DD, empty if unknown
	Text string
}

// Source parses one file into an Article. Every concrete source below
// implements it.
type Source interface {
	Parse(path string) (Article, error)
}

// SourceForPath selects a Source by file extension.
func SourceForPath(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDFSource{}, nil
	case ".docx":
		return DOCXSource{}, nil
	case ".pptx":
		return PPTXSource{}, nil
	case ".xlsx":
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.SourceForPath",
			"xlsx files are ingested in batch via ReadSpreadsheet, not as a single Article", nil)
	case ".txt":
		return TextSource{}, nil
	default:
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.SourceForPath", "unsupported file extension", nil)
	}
}

// ParseFile dispatches path to the matching Source and returns one Article,
// defaulting its ID to the file's base name when the source can't infer a
// better one.
func ParseFile(path string) (Article, error) {
	src, err := SourceForPath(path)
	if err != nil {
		return Article{}, err
	}
	a, err := src.Parse(path)
	if err != nil {
		return Article{}, err
	}
	if a.ID == "" {
		a.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return a, nil
}
