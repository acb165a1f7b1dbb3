// Package corpus implements C3, the Corpus component: the owner of a
// corpus's text or token sequence plus its three parallel text maps
// (article, date, sentence), and every operation that creates, combines,
// chunks, filters or tokenises it.
package corpus

import (
	"corpusengine"
	"corpusengine/internal/textmap"
)

// Corpus is a tagged variant: continuous (owns Text) or tokenised (owns
// Tokens/TokenBytes/SentenceMap). Exactly one is active; once Tokenize*
// succeeds the corpus is tokenised for the rest of its lifetime.
type Corpus struct {
	checkConsistency bool
	tokenised        bool

	text []byte

	tokens     []string
	tokenBytes uint64

	articleMap  []textmap.Entry
	dateMap     []textmap.Entry
	sentenceMap []textmap.SentenceEntry
}

// New returns an empty continuous corpus. checkConsistency controls whether
// invariants I1-I7 are validated after each mutation; production callers
// that trust their inputs may disable it for speed, tests should enable it.
func New(checkConsistency bool) *Corpus {
	return &Corpus{checkConsistency: checkConsistency}
}

// Clear resets the corpus to its initial empty, continuous state.
func (c *Corpus) Clear() {
	c.tokenised = false
	c.text = nil
	c.tokens = nil
	c.tokenBytes = 0
	c.articleMap = nil
	c.dateMap = nil
	c.sentenceMap = nil
}

// Size returns the corpus's length: bytes if continuous, tokens if
// tokenised.
func (c *Corpus) Size() uint64 {
	if c.tokenised {
		return uint64(len(c.tokens))
	}
	return uint64(len(c.text))
}

// Empty reports whether the corpus holds no content.
func (c *Corpus) Empty() bool { return c.Size() == 0 }

// IsTokenised reports which variant is active.
func (c *Corpus) IsTokenised() bool { return c.tokenised }

// HasArticleMap reports whether any article entries are present.
func (c *Corpus) HasArticleMap() bool { return len(c.articleMap) > 0 }

// HasDateMap reports whether any date entries are present.
func (c *Corpus) HasDateMap() bool { return len(c.dateMap) > 0 }

// HasSentenceMap reports whether any sentence entries are present (only
// possible once tokenised).
func (c *Corpus) HasSentenceMap() bool { return len(c.sentenceMap) > 0 }

// GetNumTokens returns the token count; fails with CorpusNotTokenised on a
// continuous corpus.
func (c *Corpus) GetNumTokens() (uint64, error) {
	if !c.tokenised {
		return 0, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.GetNumTokens", "corpus is not tokenised", nil)
	}
	return uint64(len(c.tokens)), nil
}

// ArticleMap returns a defensive copy of the article map.
func (c *Corpus) ArticleMap() []textmap.Entry {
	out := make([]textmap.Entry, len(c.articleMap))
	copy(out, c.articleMap)
	return out
}

// DateMap returns a defensive copy of the date map.
func (c *Corpus) DateMap() []textmap.Entry {
	out := make([]textmap.Entry, len(c.dateMap))
	copy(out, c.dateMap)
	return out
}

// SentenceMap returns a defensive copy of the sentence map.
func (c *Corpus) SentenceMap() []textmap.SentenceEntry {
	out := make([]textmap.SentenceEntry, len(c.sentenceMap))
	copy(out, c.sentenceMap)
	return out
}

// Text returns the continuous corpus's bytes; fails with
// CorpusAlreadyTokenised once tokenised.
func (c *Corpus) Text() ([]byte, error) {
	if c.tokenised {
		return nil, corpusengine.NewError(corpusengine.KindCorpusAlreadyTokenised, "corpus.Text", "corpus is already tokenised", nil)
	}
	return c.text, nil
}

// Tokens returns the tokenised corpus's token slice; fails with
// CorpusNotTokenised on a continuous corpus.
func (c *Corpus) Tokens() ([]string, error) {
	if !c.tokenised {
		return nil, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.Tokens", "corpus is not tokenised", nil)
	}
	return c.tokens, nil
}

// TokenBytes returns the sum of UTF-8 byte lengths of non-empty tokens
// (invariant I7); fails with CorpusNotTokenised on a continuous corpus.
func (c *Corpus) TokenBytes() (uint64, error) {
	if !c.tokenised {
		return 0, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.TokenBytes", "corpus is not tokenised", nil)
	}
	return c.tokenBytes, nil
}

// Get returns the text of the i'th article in a continuous corpus.
func (c *Corpus) Get(i uint64) (string, error) {
	if c.tokenised {
		return "", corpusengine.NewError(corpusengine.KindCorpusAlreadyTokenised, "corpus.Get", "corpus is already tokenised", nil)
	}
	if len(c.articleMap) == 0 {
		return "", corpusengine.NewError(corpusengine.KindArticleMapEmpty, "corpus.Get", "article map is empty", nil)
	}
	if i >= uint64(len(c.articleMap)) {
		return "", corpusengine.NewError(corpusengine.KindArticleOutOfBounds, "corpus.Get", "article index out of bounds", nil)
	}
	e := c.articleMap[i]
	return string(c.text[e.Pos:e.End()]), nil
}

// GetByID returns the text of the article with the given ID, or "" if
// absent (not an error).
func (c *Corpus) GetByID(id string) (string, error) {
	if c.tokenised {
		return "", corpusengine.NewError(corpusengine.KindCorpusAlreadyTokenised, "corpus.GetByID", "corpus is already tokenised", nil)
	}
	for _, e := range c.articleMap {
		if e.Value == id {
			return string(c.text[e.Pos:e.End()]), nil
		}
	}
	return "", nil
}

// GetDate returns the text of every article stamped with the given date;
// fails with InvalidDateLength if date isn't exactly 10 bytes.
func (c *Corpus) GetDate(date string) ([]string, error) {
	if c.tokenised {
		return nil, corpusengine.NewError(corpusengine.KindCorpusAlreadyTokenised, "corpus.GetDate", "corpus is already tokenised", nil)
	}
	if len(date) != 10 {
		return nil, corpusengine.NewError(corpusengine.KindInvalidDateLength, "corpus.GetDate", "date must be exactly 10 bytes", nil)
	}
	var out []string
	for _, d := range c.dateMap {
		if d.Value != date {
			continue
		}
		for _, a := range c.articleMap {
			if a.Pos >= d.Pos && a.End() <= d.End() {
				out = append(out, string(c.text[a.Pos:a.End()]))
			}
		}
	}
	return out, nil
}

// GetTokenized returns the tokens of the i'th article in a tokenised
// corpus.
func (c *Corpus) GetTokenized(i uint64) ([]string, error) {
	if !c.tokenised {
		return nil, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.GetTokenized", "corpus is not tokenised", nil)
	}
	if len(c.articleMap) == 0 {
		return nil, corpusengine.NewError(corpusengine.KindArticleMapEmpty, "corpus.GetTokenized", "article map is empty", nil)
	}
	if i >= uint64(len(c.articleMap)) {
		return nil, corpusengine.NewError(corpusengine.KindArticleOutOfBounds, "corpus.GetTokenized", "article index out of bounds", nil)
	}
	e := c.articleMap[i]
	return append([]string(nil), c.tokens[e.Pos:e.End()]...), nil
}

// GetTokenizedByID returns the tokens of the article with the given ID, or
// nil if absent.
func (c *Corpus) GetTokenizedByID(id string) ([]string, error) {
	if !c.tokenised {
		return nil, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.GetTokenizedByID", "corpus is not tokenised", nil)
	}
	for _, e := range c.articleMap {
		if e.Value == id {
			return append([]string(nil), c.tokens[e.Pos:e.End()]...), nil
		}
	}
	return nil, nil
}

// GetDateTokenized returns the concatenated tokens of every article stamped
// with the given date.
func (c *Corpus) GetDateTokenized(date string) ([]string, error) {
	if !c.tokenised {
		return nil, corpusengine.NewError(corpusengine.KindCorpusNotTokenised, "corpus.GetDateTokenized", "corpus is not tokenised", nil)
	}
	if len(date) != 10 {
		return nil, corpusengine.NewError(corpusengine.KindInvalidDateLength, "corpus.GetDateTokenized", "date must be exactly 10 bytes", nil)
	}
	var out []string
	for _, d := range c.dateMap {
		if d.Value != date {
			continue
		}
		for _, a := range c.articleMap {
			if a.Pos >= d.Pos && a.End() <= d.End() {
				out = append(out, c.tokens[a.Pos:a.End()]...)
			}
		}
	}
	return out, nil
}

// GetArticles returns every article ID present in the article map, in
// order, including repeats.
func (c *Corpus) GetArticles() []string {
	out := make([]string, len(c.articleMap))
	for i, e := range c.articleMap {
		out[i] = e.Value
	}
	return out
}

// Substr returns a byte range of the continuous text.
func (c *Corpus) Substr(pos, length uint64) (string, error) {
	if c.tokenised {
		return "", corpusengine.NewError(corpusengine.KindCorpusAlreadyTokenised, "corpus.Substr", "corpus is already tokenised", nil)
	}
	if pos+length > uint64(len(c.text)) {
		return "", corpusengine.NewError(corpusengine.KindInvalidEnd, "corpus.Substr", "range exceeds corpus length", nil)
	}
	return string(c.text[pos : pos+length]), nil
}
