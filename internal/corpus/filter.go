package corpus

import (
	"corpusengine"
	"corpusengine/internal/textmap"
)

// FilterByDate implements 4.3.6: trims the corpus to articles whose date
// lies in the inclusive [from, to] range (YYYY-MM-DD strings; an empty
// bound is unbounded on that side). Returns whether the corpus changed.
func (c *Corpus) FilterByDate(from, to string) (bool, error) {
	if len(c.dateMap) == 0 {
		return false, nil
	}

	firstIdx := -1
	for i, d := range c.dateMap {
		if (from == "" || d.Value >= from) && (to == "" || d.Value <= to) {
			firstIdx = i
			break
		}
	}
	if firstIdx == -1 {
		c.Clear()
		return true, nil
	}

	lastIdx := len(c.dateMap)
	for i := firstIdx; i < len(c.dateMap); i++ {
		d := c.dateMap[i]
		if (to != "" && d.Value > to) || (from != "" && d.Value < from) {
			lastIdx = i
			break
		}
	}

	if firstIdx == 0 && lastIdx == len(c.dateMap) {
		return false, nil
	}

	retained := c.dateMap[firstIdx:lastIdx]
	offset := retained[0].Pos
	end := retained[len(retained)-1].End()
	length := end - offset

	newDateMap := make([]textmap.Entry, len(retained))
	for i, d := range retained {
		newDateMap[i] = textmap.Entry{Pos: d.Pos - offset, Len: d.Len, Value: d.Value}
	}

	var newArticleMap []textmap.Entry
	firstArticle := true
	for _, a := range c.articleMap {
		if a.Pos < offset || a.Pos >= offset+length {
			continue
		}
		if firstArticle {
			if a.Pos != offset {
				return false, corpusengine.NewError(corpusengine.KindArticleDateMismatch, "corpus.FilterByDate", "first retained article does not begin at the date offset", nil)
			}
			firstArticle = false
		}
		newArticleMap = append(newArticleMap, textmap.Entry{Pos: a.Pos - offset, Len: a.Len, Value: a.Value})
	}

	if c.tokenised {
		newTokens := append([]string(nil), c.tokens[offset:offset+length]...)
		var newSentenceMap []textmap.SentenceEntry
		for _, s := range c.sentenceMap {
			if s.Pos < offset || s.Pos >= offset+length {
				continue
			}
			newSentenceMap = append(newSentenceMap, textmap.SentenceEntry{Pos: s.Pos - offset, Len: s.Len})
		}
		c.tokens = newTokens
		c.tokenBytes = sumTokenBytes(newTokens)
		c.sentenceMap = newSentenceMap
	} else {
		c.text = append([]byte(nil), c.text[offset:offset+length]...)
	}

	c.dateMap = newDateMap
	c.articleMap = newArticleMap

	if err := c.validateAfterFilter(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Corpus) validateAfterFilter() error {
	if c.tokenised {
		return c.checkTokenised()
	}
	return c.checkContinuous()
}

// FilterArticles implements 4.3.7: iterates the article map, offering each
// article's tokens to cb and clearing (in place) those it rejects, then
// compacting the corpus to remove every entry and token emptied by the
// pass. Returns the number of articles removed, or 0 if nothing changed and
// no compaction was performed.
func (c *Corpus) FilterArticles(cb func(tokens []string, pos, len uint64) bool, status *corpusengine.Status) (uint64, error) {
	if !c.tokenised {
		return 0, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.FilterArticles", "corpus is not tokenised", nil)
	}

	var rejected []textmap.Entry
	total := uint64(len(c.articleMap))
	for i, a := range c.articleMap {
		if !status.Ok("filtering articles", uint64(i), total, false) {
			return 0, nil
		}
		if !cb(c.tokens, a.Pos, a.Len) {
			rejected = append(rejected, a)
		}
	}

	if len(rejected) == 0 {
		return 0, nil
	}

	for _, a := range rejected {
		for t := a.Pos; t < a.End(); t++ {
			if c.tokens[t] != "" {
				c.tokenBytes -= uint64(len(c.tokens[t]))
				c.tokens[t] = ""
			}
		}
	}
	removed := uint64(len(rejected))

	c.reTokenize()
	if err := c.checkTokenised(); err != nil {
		return 0, err
	}
	return removed, nil
}

// reTokenize removes every empty entry from every map and every empty token
// from the token slice, shifting positions/lengths of the surviving entries
// to account for the gaps left behind. Shared by FilterArticles and the
// pipeline's already-tokenised re-tokenisation pass (4.4.2).
func (c *Corpus) reTokenize() {
	n := len(c.tokens)
	shift := make([]uint64, n+1)
	var running uint64
	for i := 0; i < n; i++ {
		shift[i] = running
		if c.tokens[i] == "" {
			running++
		}
	}
	shift[n] = running

	shiftEntry := func(e textmap.Entry) (textmap.Entry, bool) {
		first, last := e.Pos, e.End()
		var newLen uint64
		for t := first; t < last; t++ {
			if c.tokens[t] != "" {
				newLen++
			}
		}
		if newLen == 0 {
			return textmap.Entry{}, false
		}
		return textmap.Entry{Pos: e.Pos - shift[e.Pos], Len: newLen, Value: e.Value}, true
	}

	newArticleMap := make([]textmap.Entry, 0, len(c.articleMap))
	for _, e := range c.articleMap {
		if ne, ok := shiftEntry(e); ok {
			newArticleMap = append(newArticleMap, ne)
		}
	}
	newDateMap := make([]textmap.Entry, 0, len(c.dateMap))
	for _, e := range c.dateMap {
		if ne, ok := shiftEntry(e); ok {
			newDateMap = append(newDateMap, ne)
		}
	}
	newSentenceMap := make([]textmap.SentenceEntry, 0, len(c.sentenceMap))
	for _, s := range c.sentenceMap {
		first, last := s.Pos, s.End()
		var newLen uint64
		for t := first; t < last; t++ {
			if c.tokens[t] != "" {
				newLen++
			}
		}
		if newLen == 0 {
			continue
		}
		newSentenceMap = append(newSentenceMap, textmap.SentenceEntry{Pos: s.Pos - shift[s.Pos], Len: newLen})
	}

	newTokens := make([]string, 0, n)
	for _, t := range c.tokens {
		if t != "" {
			newTokens = append(newTokens, t)
		}
	}

	c.tokens = newTokens
	c.articleMap = newArticleMap
	c.dateMap = newDateMap
	c.sentenceMap = newSentenceMap
	c.tokenBytes = sumTokenBytes(newTokens)
}
