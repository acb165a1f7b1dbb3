package ingest

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"corpusengine"
)

// ReadSpreadsheet reads every sheet of an XLSX workbook as a batch of
// articles, rather than one Article per file: unlike the teacher parser's
// generic table-to-markdown dump, a spreadsheet source is expected to carry
// explicit article_id / date / text columns, one article per data row.
// The header row (case-insensitive) is read from the first row of each
// sheet; sheets without a recognisable header are skipped.
func ReadSpreadsheet(path string) ([]Article, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.ReadSpreadsheet", "opening XLSX", err)
	}
	defer f.Close()

	var articles []Article
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}

		idCol, dateCol, textCol := -1, -1, -1
		for i, h := range rows[0] {
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "article_id", "id":
				idCol = i
			case "date":
				dateCol = i
			case "text", "content":
				textCol = i
			}
		}
		if textCol == -1 {
			continue
		}

		for rowIdx, row := range rows[1:] {
			a := Article{Text: cellAt(row, textCol)}
			if a.Text == "" {
				continue
			}
			if idCol != -1 {
				a.ID = cellAt(row, idCol)
			}
			if a.ID == "" {
				a.ID = sheet + "#" + strconv.Itoa(rowIdx+1)
			}
			if dateCol != -1 {
				a.Date = cellAt(row, dateCol)
			}
			articles = append(articles, a)
		}
	}

	if len(articles) == 0 {
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "ingest.ReadSpreadsheet", "no article rows found in workbook", nil)
	}
	return articles, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
