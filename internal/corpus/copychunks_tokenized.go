package corpus

import (
	"strings"

	"corpusengine"
	"corpusengine/internal/textmap"
)

// CopyChunksTokenized implements 4.3.5: sentence-granular slicing of a
// tokenised corpus into newline-joined token chunks bounded by chunkSize
// bytes, splitting a sentence (and, if necessary, a token) only when a
// whole sentence does not fit.
func (c *Corpus) CopyChunksTokenized(chunkSize uint64) (chunks [][]byte, wordNums []uint64, articleMaps, dateMaps [][]textmap.Entry, sentenceMaps [][]textmap.SentenceEntry, err error) {
	if !c.tokenised {
		return nil, nil, nil, nil, nil, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.CopyChunksTokenized", "corpus is not tokenised", nil)
	}
	if chunkSize == 0 && len(c.tokens) > 0 {
		return nil, nil, nil, nil, nil, corpusengine.NewError(corpusengine.KindChunkSizeZero, "corpus.CopyChunksTokenized", "chunk size is zero", nil)
	}
	if len(c.tokens) == 0 {
		return nil, nil, nil, nil, nil, nil
	}

	var curBytes []byte
	var curLocalSentenceMap []textmap.SentenceEntry
	var curLocalTokenCount uint64
	var curTokenStart uint64

	flushFinal := func() {
		if curLocalTokenCount == 0 && len(curBytes) == 0 {
			return
		}
		chunks = append(chunks, curBytes)
		wordNums = append(wordNums, curLocalTokenCount)
		sentenceMaps = append(sentenceMaps, curLocalSentenceMap)
		articleMaps = append(articleMaps, sliceEntries(c.articleMap, curTokenStart, curTokenStart+curLocalTokenCount))
		dateMaps = append(dateMaps, sliceEntries(c.dateMap, curTokenStart, curTokenStart+curLocalTokenCount))
	}

	for _, s := range c.sentenceMap {
		sentTokens := c.tokens[s.Pos:s.End()]

		var sentBytes []byte
		if len(curBytes) > 0 {
			sentBytes = append(sentBytes, '\n')
		}
		for ti, tok := range sentTokens {
			if ti > 0 {
				sentBytes = append(sentBytes, '\n')
			}
			sentBytes = append(sentBytes, tok...)
		}

		if uint64(len(curBytes))+uint64(len(sentBytes)) <= chunkSize {
			curBytes = append(curBytes, sentBytes...)
			curLocalSentenceMap = append(curLocalSentenceMap, textmap.SentenceEntry{Pos: curLocalTokenCount, Len: uint64(len(sentTokens))})
			curLocalTokenCount += uint64(len(sentTokens))
			continue
		}

		combined := append(append([]byte(nil), curBytes...), sentBytes...)
		l, verr := textmap.ValidLength(combined, 0, chunkSize, chunkSize)
		if verr != nil {
			return nil, nil, nil, nil, nil, verr
		}

		completeBytes := combined[:l]
		restBytes := combined[l:]
		splitToken := l > 0 && combined[l-1] != '\n' && len(restBytes) > 0 && restBytes[0] != '\n'
		// A cut right after a separator must not leave an empty trailing token.
		if !splitToken && len(completeBytes) > 0 && completeBytes[len(completeBytes)-1] == '\n' {
			completeBytes = completeBytes[:len(completeBytes)-1]
		}

		tokenPieces := strings.Split(string(completeBytes), "\n")
		numCompleteTokens := len(tokenPieces)
		if splitToken {
			numCompleteTokens--
		}
		if numCompleteTokens < 0 {
			numCompleteTokens = 0
		}

		sentTokensFit := numCompleteTokens - int(curLocalTokenCount)
		if sentTokensFit < 0 {
			sentTokensFit = 0
		}
		if sentTokensFit > len(sentTokens) {
			sentTokensFit = len(sentTokens)
		}
		if sentTokensFit > 0 {
			curLocalSentenceMap = append(curLocalSentenceMap, textmap.SentenceEntry{Pos: curLocalTokenCount, Len: uint64(sentTokensFit)})
		}

		chunks = append(chunks, completeBytes)
		wordNums = append(wordNums, uint64(numCompleteTokens))
		sentenceMaps = append(sentenceMaps, curLocalSentenceMap)
		articleMaps = append(articleMaps, sliceEntries(c.articleMap, curTokenStart, curTokenStart+uint64(numCompleteTokens)))
		dateMaps = append(dateMaps, sliceEntries(c.dateMap, curTokenStart, curTokenStart+uint64(numCompleteTokens)))

		restTokensOfSentence := sentTokens[sentTokensFit:]
		curTokenStart += uint64(numCompleteTokens)
		curLocalSentenceMap = nil
		curLocalTokenCount = 0

		if splitToken {
			curBytes = append([]byte(nil), restBytes...)
			if len(restTokensOfSentence) > 1 {
				for _, tok := range restTokensOfSentence[1:] {
					curBytes = append(curBytes, '\n')
					curBytes = append(curBytes, tok...)
				}
			}
		} else {
			curBytes = nil
			for ti, tok := range restTokensOfSentence {
				if ti > 0 {
					curBytes = append(curBytes, '\n')
				}
				curBytes = append(curBytes, tok...)
			}
		}
		if len(restTokensOfSentence) > 0 {
			curLocalSentenceMap = append(curLocalSentenceMap, textmap.SentenceEntry{Pos: 0, Len: uint64(len(restTokensOfSentence))})
			curLocalTokenCount = uint64(len(restTokensOfSentence))
		}
	}

	flushFinal()
	return chunks, wordNums, articleMaps, dateMaps, sentenceMaps, nil
}
