package ingest

import (
	"os"

	"corpusengine"
)

// TextSource reads a whole .txt file as one article.
type TextSource struct{}

func (TextSource) Parse(path string) (Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Article{}, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.TextSource.Parse", "failed to read text file", err)
	}
	return Article{Text: string(data)}, nil
}
