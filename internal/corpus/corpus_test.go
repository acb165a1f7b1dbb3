package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusengine/internal/corpus"
	"corpusengine/internal/textmap"
)

func TestCreateEmptyCorpus(t *testing.T) {
	c := corpus.New(true)
	require.NoError(t, c.Create(nil, nil, nil, false))
	assert.EqualValues(t, 0, c.Size())
	assert.True(t, c.Empty())
	assert.False(t, c.HasArticleMap())
	assert.False(t, c.HasDateMap())
}

func TestCreateThreeArticlesSameDate(t *testing.T) {
	c := corpus.New(true)
	texts := []string{"A b c", "D e", "F g h i"}
	ids := []string{"a1", "a2", "a3"}
	dates := []string{"2020-01-01T00:00:00", "2020-01-01T12:00:00", "2020-01-01T23:59:59"}
	require.NoError(t, c.Create(texts, ids, dates, false))

	text, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, "A b c D e F g h i", string(text))

	am := c.ArticleMap()
	require.Len(t, am, 3)
	assert.Equal(t, textmap.Entry{Pos: 0, Len: 5, Value: "a1"}, am[0])
	assert.Equal(t, textmap.Entry{Pos: 6, Len: 3, Value: "a2"}, am[1])
	assert.Equal(t, textmap.Entry{Pos: 10, Len: 7, Value: "a3"}, am[2])

	dm := c.DateMap()
	require.Len(t, dm, 1)
	assert.Equal(t, textmap.Entry{Pos: 0, Len: 17, Value: "2020-01-01"}, dm[0])
}

func TestFilterByDatePrunesToNothing(t *testing.T) {
	c := corpus.New(true)
	texts := []string{"A b c", "D e", "F g h i"}
	ids := []string{"a1", "a2", "a3"}
	dates := []string{"2020-01-01T00:00:00", "2020-01-01T12:00:00", "2020-01-01T23:59:59"}
	require.NoError(t, c.Create(texts, ids, dates, false))

	changed, err := c.FilterByDate("2019-01-01", "2019-12-31")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, c.Empty())
}

func TestFilterByDateUnboundedIsNoop(t *testing.T) {
	c := corpus.New(true)
	texts := []string{"A b c"}
	ids := []string{"a1"}
	dates := []string{"2020-01-01T00:00:00"}
	require.NoError(t, c.Create(texts, ids, dates, false))

	changed, err := c.FilterByDate("", "")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTokenizeThenChunkRoundTrips(t *testing.T) {
	c := corpus.New(true)
	texts := []string{"A b c", "D e", "F g h i"}
	ids := []string{"a1", "a2", "a3"}
	dates := []string{"2020-01-01T00:00:00", "2020-01-01T12:00:00", "2020-01-01T23:59:59"}
	require.NoError(t, c.Create(texts, ids, dates, false))

	ok, err := c.TokenizeCustom(nil, nil, 0, nil)
	require.NoError(t, err)
	require.True(t, ok)

	tokens, err := c.Tokens()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "b", "c", "D", "e", "F", "g", "h", "i"}, tokens)

	sm := c.SentenceMap()
	require.Len(t, sm, 1)
	assert.Equal(t, textmap.SentenceEntry{Pos: 0, Len: 9}, sm[0])

	chunks, wordNums, articleMaps, dateMaps, sentenceMaps, err := c.CopyChunksTokenized(10)
	require.NoError(t, err)
	assert.True(t, len(chunks) >= 1)

	c2 := corpus.New(true)
	require.NoError(t, c2.CombineTokenized(chunks, wordNums, articleMaps, dateMaps, sentenceMaps, false))

	tokens2, err := c2.Tokens()
	require.NoError(t, err)
	assert.Equal(t, tokens, tokens2)
}

func TestCopyChunksContinuousUTF8Safety(t *testing.T) {
	c := corpus.New(false)
	require.NoError(t, c.Create([]string{"AB\xC3\xA9CD"}, nil, nil, false))

	chunks, _, _, err := c.CopyChunksContinuous(3)
	require.NoError(t, err)
	for _, chunk := range chunks {
		if len(chunk) > 0 {
			assert.NotEqual(t, byte(0xC3), chunk[len(chunk)-1])
		}
	}
}

func TestCopyChunksContinuousSingleChunk(t *testing.T) {
	c := corpus.New(true)
	require.NoError(t, c.Create([]string{"hello world"}, nil, nil, false))
	chunks, _, _, err := c.CopyChunksContinuous(c.Size())
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", string(chunks[0]))
}
