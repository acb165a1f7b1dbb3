package corpus

import "corpusengine/internal/textmap"

// Create implements 4.3.1: concatenates texts with a single space
// separator, building article and (optional) date maps as it goes.
// Consecutive texts sharing an article ID (the empty ID is a valid
// "unlabelled" article) merge into one article entry; dates behave the
// same way on the first ten characters of the datetime. If deleteInput,
// each input string is cleared from texts as soon as it is appended.
func (c *Corpus) Create(texts []string, articleIDs []string, dateTimes []string, deleteInput bool) error {
	c.Clear()

	buf := make([]byte, 0, estimateLen(texts))
	var articleMap []textmap.Entry
	var dateMap []textmap.Entry

	hasArticles := len(articleIDs) > 0
	hasDates := len(dateTimes) > 0

	for i, text := range texts {
		if i > 0 {
			buf = append(buf, ' ')
		}
		start := uint64(len(buf))
		buf = append(buf, text...)
		segLen := uint64(len(text))

		if hasArticles {
			id := articleIDs[i]
			if n := len(articleMap); n > 0 && articleMap[n-1].Value == id && articleMap[n-1].End() == start {
				articleMap[n-1].Len += segLen + 1
			} else if n := len(articleMap); n > 0 && articleMap[n-1].Value == id {
				articleMap[n-1].Len += segLen + (start - articleMap[n-1].End())
			} else {
				articleMap = append(articleMap, textmap.Entry{Pos: start, Len: segLen, Value: id})
			}
		}
		if hasDates {
			dateValue := dateTimes[i]
			if len(dateValue) > 10 {
				dateValue = dateValue[:10]
			}
			if n := len(dateMap); n > 0 && dateMap[n-1].Value == dateValue {
				dateMap[n-1].Len += segLen + (start - dateMap[n-1].End())
			} else {
				dateMap = append(dateMap, textmap.Entry{Pos: start, Len: segLen, Value: dateValue})
			}
		}

		if deleteInput {
			texts[i] = ""
		}
	}

	c.text = buf
	c.articleMap = dropEmptyEntries(articleMap)
	c.dateMap = dropEmptyEntries(dateMap)
	return c.checkContinuous()
}

func estimateLen(texts []string) int {
	n := 0
	for _, t := range texts {
		n += len(t) + 1
	}
	return n
}

func dropEmptyEntries(entries []textmap.Entry) []textmap.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Len > 0 {
			out = append(out, e)
		}
	}
	return out
}
