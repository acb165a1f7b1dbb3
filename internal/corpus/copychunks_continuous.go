package corpus

import (
	"corpusengine"
	"corpusengine/internal/textmap"
)

// CopyChunksContinuous implements 4.3.4: slices a continuous corpus into
// byte-budget chunks, never splitting a UTF-8 codepoint or (when an article
// map is present) an article boundary's surrounding separator space. Dates
// follow the byte ranges their articles fall within.
func (c *Corpus) CopyChunksContinuous(chunkSize uint64) (chunks [][]byte, articleMaps, dateMaps [][]textmap.Entry, err error) {
	if c.tokenised {
		return nil, nil, nil, corpusengine.NewError(corpusengine.KindCorpusAlreadyTokenised, "corpus.CopyChunksContinuous", "corpus is already tokenised", nil)
	}
	if chunkSize == 0 && len(c.text) > 0 {
		return nil, nil, nil, corpusengine.NewError(corpusengine.KindChunkSizeZero, "corpus.CopyChunksContinuous", "chunk size is zero", nil)
	}
	if len(c.text) == 0 {
		return nil, nil, nil, nil
	}
	if uint64(len(c.text)) <= chunkSize {
		return [][]byte{append([]byte(nil), c.text...)}, [][]textmap.Entry{c.ArticleMap()}, [][]textmap.Entry{c.DateMap()}, nil
	}

	var ranges []chunkRange

	if len(c.articleMap) == 0 {
		pos := uint64(0)
		for pos < uint64(len(c.text)) {
			remaining := uint64(len(c.text)) - pos
			desired := chunkSize
			if remaining < desired {
				desired = remaining
			}
			l, e := textmap.ValidLength(c.text, pos, desired, chunkSize)
			if e != nil {
				return nil, nil, nil, e
			}
			if l == 0 {
				return nil, nil, nil, corpusengine.NewError(corpusengine.KindChunkTooSmall, "corpus.CopyChunksContinuous", "chunk size too small for any codepoint", nil)
			}
			chunks = append(chunks, append([]byte(nil), c.text[pos:pos+l]...))
			ranges = append(ranges, chunkRange{pos, pos + l})
			articleMaps = append(articleMaps, nil)
			pos += l
		}
		dateMaps = make([][]textmap.Entry, len(chunks))
		for i, r := range ranges {
			dateMaps[i] = sliceEntries(c.dateMap, r.start, r.end)
		}
		return chunks, articleMaps, dateMaps, nil
	}

	pos := c.articleMap[0].Pos
	chunkStart := pos
	var curArticleMap []textmap.Entry

	flush := func() {
		chunks = append(chunks, append([]byte(nil), c.text[chunkStart:pos]...))
		ranges = append(ranges, chunkRange{chunkStart, pos})
		articleMaps = append(articleMaps, curArticleMap)
		curArticleMap = nil
		chunkStart = pos
	}

	for idx, e := range c.articleMap {
		if idx > 0 {
			gap := e.Pos - pos
			for gap > 0 {
				if pos-chunkStart >= chunkSize {
					flush()
				}
				take := chunkSize - (pos - chunkStart)
				if take > gap {
					take = gap
				}
				if take == 0 {
					flush()
					continue
				}
				pos += take
				gap -= take
			}
		}
		remaining := e.Len
		for remaining > 0 {
			if pos-chunkStart >= chunkSize {
				flush()
			}
			avail := chunkSize - (pos - chunkStart)
			if remaining <= avail {
				curArticleMap = append(curArticleMap, textmap.Entry{Pos: pos - chunkStart, Len: remaining, Value: e.Value})
				pos += remaining
				remaining = 0
			} else {
				l, err2 := textmap.ValidLength(c.text, pos, avail, chunkSize)
				if err2 != nil {
					return nil, nil, nil, err2
				}
				if l == 0 {
					return nil, nil, nil, corpusengine.NewError(corpusengine.KindChunkTooSmall, "corpus.CopyChunksContinuous", "chunk size too small for any codepoint", nil)
				}
				curArticleMap = append(curArticleMap, textmap.Entry{Pos: pos - chunkStart, Len: l, Value: e.Value})
				pos += l
				remaining -= l
				flush()
			}
		}
	}
	if pos > chunkStart {
		flush()
	}

	if pos != uint64(len(c.text)) {
		return nil, nil, nil, corpusengine.NewError(corpusengine.KindInvalidEnd, "corpus.CopyChunksContinuous", "article map does not reach end of corpus", nil)
	}

	dateMaps = make([][]textmap.Entry, len(ranges))
	for i, r := range ranges {
		dateMaps[i] = sliceEntries(c.dateMap, r.start, r.end)
	}
	return chunks, articleMaps, dateMaps, nil
}

type chunkRange struct {
	start, end uint64
}

// sliceEntries returns the portion of entries overlapping [start, end),
// clipped to that range and rebased to be relative to start.
func sliceEntries(entries []textmap.Entry, start, end uint64) []textmap.Entry {
	var out []textmap.Entry
	for _, e := range entries {
		os, oe := e.Pos, e.End()
		if os < start {
			os = start
		}
		if oe > end {
			oe = end
		}
		if os >= oe {
			continue
		}
		out = append(out, textmap.Entry{Pos: os - start, Len: oe - os, Value: e.Value})
	}
	return out
}
