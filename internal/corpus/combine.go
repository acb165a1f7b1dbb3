package corpus

import (
	"strings"

	"corpusengine"
	"corpusengine/internal/textmap"
)

func shiftEntries(entries []textmap.Entry, offset uint64) []textmap.Entry {
	out := make([]textmap.Entry, len(entries))
	for i, e := range entries {
		out[i] = textmap.Entry{Pos: e.Pos + offset, Len: e.Len, Value: e.Value}
	}
	return out
}

// CombineContinuous implements 4.3.2: concatenates chunks byte-for-byte,
// merging article/date entries that straddle a chunk boundary and share a
// value with the preceding entry, otherwise appending them with positions
// shifted by the accumulated byte offset.
func (c *Corpus) CombineContinuous(chunks [][]byte, articleMaps, dateMaps [][]textmap.Entry, deleteInput bool) error {
	c.Clear()

	var text []byte
	var articleMap, dateMap []textmap.Entry
	var offset uint64

	for i, chunk := range chunks {
		text = append(text, chunk...)

		var amap, dmap []textmap.Entry
		if i < len(articleMaps) {
			amap = shiftEntries(articleMaps[i], offset)
		}
		if i < len(dateMaps) {
			dmap = shiftEntries(dateMaps[i], offset)
		}

		if len(articleMap) > 0 {
			if articleMap[0].Pos > 1 {
				return corpusengine.NewError(corpusengine.KindInvalidArticleMapStart, "corpus.CombineContinuous", "article map does not start at 0 or 1", nil)
			}
		}

		newArticleAppended := false
		if len(amap) > 0 {
			n := len(articleMap)
			if n > 0 && articleMap[n-1].Value == amap[0].Value && articleMap[n-1].End() == amap[0].Pos {
				articleMap[n-1].Len += amap[0].Len
				amap = amap[1:]
			} else {
				newArticleAppended = true
			}
			articleMap = append(articleMap, amap...)
		}

		if len(dmap) > 0 {
			n := len(dateMap)
			if n > 0 && dateMap[n-1].Value == dmap[0].Value && dateMap[n-1].End() == dmap[0].Pos {
				extra := uint64(0)
				if newArticleAppended {
					extra = 1
				}
				dateMap[n-1].Len += dmap[0].Len + extra
				dmap = dmap[1:]
			}
			dateMap = append(dateMap, dmap...)
		}

		offset += uint64(len(chunk))
		if deleteInput {
			chunks[i] = nil
		}
	}

	c.text = text
	c.articleMap = dropEmptyEntries(articleMap)
	c.dateMap = dropEmptyEntries(dateMap)
	return c.checkContinuous()
}

// CombineTokenized implements 4.3.3: rejoins newline-separated token chunks,
// carrying a token split across a chunk boundary exactly once, and
// concatenates the accompanying sentence/article/date maps with offset
// rebasing and the boundary-merge adjustments spec.md describes.
//
// wordNums[i] gives the number of complete tokens sealed in chunk i (the
// count the accompanying maps are indexed against); any text in the chunk
// beyond that count is the incomplete trailing fragment carried into the
// next chunk.
func (c *Corpus) CombineTokenized(chunks [][]byte, wordNums []uint64, articleMaps, dateMaps [][]textmap.Entry, sentenceMaps [][]textmap.SentenceEntry, deleteInput bool) error {
	if len(articleMaps) > len(chunks) || len(dateMaps) > len(chunks) || len(sentenceMaps) > len(chunks) {
		return corpusengine.NewError(corpusengine.KindInvalidPosition, "corpus.CombineTokenized", "more maps supplied than chunks", nil)
	}
	c.Clear()

	var tokens []string
	var articleMap, dateMap []textmap.Entry
	var sentenceMap []textmap.SentenceEntry
	var lastWord string
	skipNextSeparator := false

	for i, chunk := range chunks {
		var parts []string
		if len(chunk) > 0 {
			parts = strings.Split(string(chunk), "\n")
		}

		complete := len(parts)
		var fragment string
		haveFragment := false
		if i < len(wordNums) && uint64(complete) > wordNums[i] {
			complete = int(wordNums[i])
			fragment = parts[len(parts)-1]
			haveFragment = true
			parts = parts[:complete]
		}

		splitToken := false
		if lastWord != "" {
			if len(parts) > 0 {
				parts[0] = lastWord + parts[0]
				splitToken = !skipNextSeparator
			} else {
				parts = []string{lastWord}
			}
		}

		offset := uint64(len(tokens))
		tokens = append(tokens, parts...)

		var amap, dmap []textmap.Entry
		if i < len(articleMaps) {
			amap = shiftEntries(articleMaps[i], offset)
		}
		if i < len(dateMaps) {
			dmap = shiftEntries(dateMaps[i], offset)
		}
		var smap []textmap.SentenceEntry
		if i < len(sentenceMaps) {
			for _, s := range sentenceMaps[i] {
				smap = append(smap, textmap.SentenceEntry{Pos: s.Pos + offset, Len: s.Len})
			}
		}

		if i == 0 && len(smap) > 0 && smap[0].Pos != 0 {
			return corpusengine.NewError(corpusengine.KindInvalidSentenceMapStart, "corpus.CombineTokenized", "sentence map does not start at 0", nil)
		}
		if i == 0 && len(amap) > 0 && amap[0].Pos != 0 {
			return corpusengine.NewError(corpusengine.KindInvalidArticleMapStart, "corpus.CombineTokenized", "article map does not start at token 0", nil)
		}

		if len(smap) > 0 && len(sentenceMap) > 0 {
			last := sentenceMap[len(sentenceMap)-1]
			if smap[0].Pos < last.End() {
				if smap[0].Len != last.End()-smap[0].Pos {
					return corpusengine.NewError(corpusengine.KindInconsistentSentenceBoundary, "corpus.CombineTokenized", "split-sentence length disagreement at chunk join", nil)
				}
				smap = smap[1:]
			}
		}
		sentenceMap = append(sentenceMap, smap...)

		if len(amap) > 0 {
			n := len(articleMap)
			if n > 0 && articleMap[n-1].Value == amap[0].Value && articleMap[n-1].End() == amap[0].Pos {
				delta := amap[0].Len
				if splitToken {
					delta--
				}
				articleMap[n-1].Len += delta
				amap = amap[1:]
			}
			articleMap = append(articleMap, amap...)
		}
		if len(dmap) > 0 {
			n := len(dateMap)
			if n > 0 && dateMap[n-1].Value == dmap[0].Value && dateMap[n-1].End() == dmap[0].Pos {
				delta := dmap[0].Len
				if splitToken {
					delta--
				}
				dateMap[n-1].Len += delta
				dmap = dmap[1:]
			}
			dateMap = append(dateMap, dmap...)
		}

		if haveFragment {
			lastWord = fragment
		} else {
			lastWord = ""
		}
		skipNextSeparator = !haveFragment && len(parts) > 0

		if deleteInput {
			chunks[i] = nil
		}
	}

	if lastWord != "" {
		tokens = append(tokens, lastWord)
	}

	if len(sentenceMap) > 0 && sentenceMap[len(sentenceMap)-1].End() > uint64(len(tokens)) {
		return corpusengine.NewError(corpusengine.KindLastSentenceBehindCorpus, "corpus.CombineTokenized", "last sentence extends past corpus length", nil)
	}

	c.tokenised = true
	c.tokens = tokens
	c.tokenBytes = sumTokenBytes(tokens)
	c.articleMap = dropEmptyEntries(articleMap)
	c.dateMap = dropEmptyEntries(dateMap)
	c.sentenceMap = dropEmptySentences(sentenceMap)
	return c.checkTokenised()
}

func sumTokenBytes(tokens []string) uint64 {
	var n uint64
	for _, t := range tokens {
		n += uint64(len(t))
	}
	return n
}

func dropEmptySentences(entries []textmap.SentenceEntry) []textmap.SentenceEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Len > 0 {
			out = append(out, e)
		}
	}
	return out
}
