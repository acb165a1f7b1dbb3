package corpus

import (
	"log/slog"

	"corpusengine"
	"corpusengine/internal/pipeline"
	"corpusengine/internal/textmap"
)

// Tokenize implements 4.3.8: the adapter over TokenizeCustom that dispatches
// numeric sentence/token manipulator IDs to their concrete implementations.
// sentenceModels/wordDictionaries supply the per-manipulator model or
// dictionary data that manipulators 1 and 4/5 require; entries beyond the
// manipulator list's length are ignored.
func (c *Corpus) Tokenize(
	sentenceManipIDs []int, sentenceModels []string,
	wordManipIDs []int, wordDictionaries []map[string]string,
	freeMemoryEvery uint64, status *corpusengine.Status,
) (bool, error) {
	slog.Default().Debug("tokenising corpus", "sentence_manipulators", len(sentenceManipIDs), "word_manipulators", len(wordManipIDs), "articles", len(c.articleMap))
	var sentenceFns []pipeline.SentenceManipulator
	for i, id := range sentenceManipIDs {
		model := ""
		if i < len(sentenceModels) {
			model = sentenceModels[i]
		}
		fn, err := pipeline.SentenceManipulatorByID(id, model)
		if err != nil {
			return false, err
		}
		if fn != nil {
			sentenceFns = append(sentenceFns, fn)
		}
	}
	var wordFns []pipeline.WordManipulator
	for i, id := range wordManipIDs {
		var dict map[string]string
		if i < len(wordDictionaries) {
			dict = wordDictionaries[i]
		}
		fn, err := pipeline.WordManipulatorByID(id, dict)
		if err != nil {
			return false, err
		}
		if fn != nil {
			wordFns = append(wordFns, fn)
		}
	}

	var cbSentence func([]string) []string
	if len(sentenceFns) > 0 {
		cbSentence = func(sentence []string) []string {
			for _, fn := range sentenceFns {
				sentence = fn(sentence)
			}
			return sentence
		}
	}
	var cbWord func(string) string
	if len(wordFns) > 0 {
		cbWord = func(tok string) string {
			for _, fn := range wordFns {
				tok = fn(tok)
				if tok == "" {
					return ""
				}
			}
			return tok
		}
	}

	return c.TokenizeCustom(cbSentence, cbWord, freeMemoryEvery, status)
}

// sentence/word byte classes for the continuous byte-walk (4.4.1).
func isSentenceTerminatorByte(b byte) bool {
	switch b {
	case '.', ':', ';', '!', '?':
		return true
	}
	return false
}

func isWordSeparatorByte(b byte) bool {
	if b <= 0x20 {
		return true
	}
	switch b {
	case ',', '/', '\\', '|', '&':
		return true
	}
	return false
}

// TokenizeCustom implements 4.3.9/4.4: runs the two-phase tokenisation
// pipeline. On a still-continuous corpus it performs the byte walk of
// 4.4.1; on an already tokenised corpus it re-runs the manipulators over
// the existing sentence/token structure per 4.4.2. Returns false without
// mutating the corpus if the status reporter requests cancellation.
func (c *Corpus) TokenizeCustom(
	cbSentence func([]string) []string,
	cbWord func(string) string,
	freeMemoryEvery uint64,
	status *corpusengine.Status,
) (bool, error) {
	if c.tokenised {
		return c.reTokenizeExisting(cbSentence, cbWord, status)
	}
	return c.tokenizeContinuous(cbSentence, cbWord, freeMemoryEvery, status)
}

func (c *Corpus) tokenizeContinuous(
	cbSentence func([]string) []string,
	cbWord func(string) string,
	freeMemoryEvery uint64,
	status *corpusengine.Status,
) (bool, error) {
	text := c.text
	oldArticleMap := c.articleMap
	oldDateMap := c.dateMap

	var tokens []string
	var newArticleMap, newDateMap []textmap.Entry
	var newSentenceMap []textmap.SentenceEntry

	var sentence []string
	var sentenceWordIdx []uint64

	articleIdx, dateIdx := 0, 0
	inArticle, inDate := false, false
	var articleFirstWord, dateFirstWord uint64
	var currentWord uint64
	wordBegin := -1

	dropToken := func(i int) {
		wIdx := sentenceWordIdx[i]
		if currentWord > 0 {
			currentWord--
		}
		if n := len(newArticleMap); n > 0 {
			e := &newArticleMap[n-1]
			if wIdx >= e.Pos && wIdx < e.End() && e.Len > 0 {
				e.Len--
			}
		}
		if n := len(newDateMap); n > 0 {
			e := &newDateMap[n-1]
			if wIdx >= e.Pos && wIdx < e.End() && e.Len > 0 {
				e.Len--
			}
		}
	}

	finalizeSentence := func() bool {
		if len(sentence) == 0 {
			return true
		}
		if !status.Ok("tokenising", currentWord, uint64(len(text)), false) {
			return false
		}
		s := sentence
		if cbSentence != nil {
			s = cbSentence(s)
		}
		start := uint64(len(tokens))
		var survivors []string
		for i, tok := range s {
			if cbWord != nil {
				tok = cbWord(tok)
			}
			if tok == "" {
				dropToken(i)
				continue
			}
			survivors = append(survivors, tok)
		}
		tokens = append(tokens, survivors...)
		if len(survivors) > 0 {
			newSentenceMap = append(newSentenceMap, textmap.SentenceEntry{Pos: start, Len: uint64(len(survivors))})
		}
		sentence = nil
		sentenceWordIdx = nil
		return true
	}

	emitWord := func(pos uint64, closedArticle, closedDate bool) {
		word := string(text[wordBegin:pos])
		sentenceWordIdx = append(sentenceWordIdx, currentWord)
		sentence = append(sentence, word)
		currentWord++
		if closedArticle && len(newArticleMap) > 0 {
			newArticleMap[len(newArticleMap)-1].Len++
		}
		if closedDate && len(newDateMap) > 0 {
			newDateMap[len(newDateMap)-1].Len++
		}
		wordBegin = -1
	}

	n := uint64(len(text))
	for pos := uint64(0); pos <= n; pos++ {
		if !inArticle && articleIdx < len(oldArticleMap) && oldArticleMap[articleIdx].Pos == pos {
			inArticle = true
			articleFirstWord = currentWord
		}
		if !inDate && dateIdx < len(oldDateMap) && oldDateMap[dateIdx].Pos == pos {
			inDate = true
			dateFirstWord = currentWord
		}

		closedArticle, closedDate := false, false
		if inArticle && oldArticleMap[articleIdx].End() == pos {
			e := oldArticleMap[articleIdx]
			newArticleMap = append(newArticleMap, textmap.Entry{Pos: articleFirstWord, Len: currentWord - articleFirstWord, Value: e.Value})
			inArticle = false
			articleIdx++
			closedArticle = true
		}
		if inDate && oldDateMap[dateIdx].End() == pos {
			e := oldDateMap[dateIdx]
			newDateMap = append(newDateMap, textmap.Entry{Pos: dateFirstWord, Len: currentWord - dateFirstWord, Value: e.Value})
			inDate = false
			dateIdx++
			closedDate = true
		}

		if pos == n {
			if wordBegin >= 0 {
				emitWord(pos, closedArticle, closedDate)
			}
			if !finalizeSentence() {
				return false, nil
			}
			break
		}

		b := text[pos]
		term := isSentenceTerminatorByte(b)
		sep := term || isWordSeparatorByte(b)

		if sep {
			if wordBegin >= 0 {
				emitWord(pos, closedArticle, closedDate)
			}
			if term {
				if !finalizeSentence() {
					return false, nil
				}
			}
		} else if wordBegin < 0 {
			wordBegin = pos
		}
	}

	if articleIdx != len(oldArticleMap) || dateIdx != len(oldDateMap) {
		return false, corpusengine.NewError(corpusengine.KindInvalidEnd, "corpus.TokenizeCustom", "not every article/date was closed by end of text", nil)
	}

	c.tokenised = true
	c.text = nil
	c.tokens = tokens
	c.tokenBytes = sumTokenBytes(tokens)
	c.articleMap = dropEmptyEntries(newArticleMap)
	c.dateMap = dropEmptyEntries(newDateMap)
	c.sentenceMap = dropEmptySentences(newSentenceMap)

	_ = freeMemoryEvery // trimming is a memory optimisation only; behaviour is identical without it.

	if err := c.checkTokenised(); err != nil {
		return false, err
	}
	return true, nil
}

// reTokenizeExisting implements 4.4.2 by running the manipulators over a
// copy of the corpus's tokens along the existing sentence structure,
// committing the copy only once every sentence is done, then compacting
// emptied tokens and their map entries with the same pass FilterArticles
// uses.
func (c *Corpus) reTokenizeExisting(
	cbSentence func([]string) []string,
	cbWord func(string) string,
	status *corpusengine.Status,
) (bool, error) {
	total := uint64(len(c.sentenceMap))
	tokens := append([]string(nil), c.tokens...)
	for i, s := range c.sentenceMap {
		if !status.Ok("re-tokenising", uint64(i), total, false) {
			return false, nil
		}
		slice := tokens[s.Pos:s.End()]
		sentence := append([]string(nil), slice...)
		if cbSentence != nil {
			sentence = cbSentence(sentence)
		}
		if cbWord != nil {
			for i, tok := range sentence {
				sentence[i] = cbWord(tok)
			}
		}
		copy(slice, sentence)
	}

	c.tokens = tokens
	c.reTokenize()
	if err := c.checkTokenised(); err != nil {
		return false, err
	}
	return true, nil
}
