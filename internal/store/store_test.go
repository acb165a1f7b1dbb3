//go:build cgo

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, 3)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub", "dir")
	dbPath := filepath.Join(dir, "test.db")
	s, err := Open(dbPath, 3)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 3, s.TopicDim())
}

func TestSaveAndLoadChunks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	corpusID, err := s.CreateCorpus(ctx, "demo", false, 2000)
	require.NoError(t, err)

	chunks := []CorpusChunk{
		{Index: 0, Content: "chunk zero text", WordCount: 3},
		{Index: 1, Content: "chunk one text", WordCount: 3},
	}
	require.NoError(t, s.SaveChunks(ctx, corpusID, chunks))

	loaded, err := s.LoadChunks(ctx, corpusID)
	require.NoError(t, err)
	assert.Equal(t, chunks, loaded)
}

func TestSaveChunksReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	corpusID, err := s.CreateCorpus(ctx, "demo", false, 2000)
	require.NoError(t, err)

	require.NoError(t, s.SaveChunks(ctx, corpusID, []CorpusChunk{{Index: 0, Content: "old"}}))
	require.NoError(t, s.SaveChunks(ctx, corpusID, []CorpusChunk{{Index: 0, Content: "new"}}))

	loaded, err := s.LoadChunks(ctx, corpusID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new", loaded[0].Content)
}

func TestDocumentTopicsRoundTripAndSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveDocumentTopics(ctx, 0, "doc-a", []float64{1, 0, 0})
	require.NoError(t, err)
	_, err = s.SaveDocumentTopics(ctx, 0, "doc-b", []float64{0, 1, 0})
	require.NoError(t, err)
	_, err = s.SaveDocumentTopics(ctx, 0, "doc-c", []float64{0.9, 0.1, 0})
	require.NoError(t, err)

	matches, err := s.NearestDocuments(ctx, []float64{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "doc-a", matches[0].DocumentName)
}

func TestSaveDocumentTopicsRejectsWrongDimension(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveDocumentTopics(ctx, 0, "doc-a", []float64{1, 0})
	assert.Error(t, err)
}

func TestEncodeDecodeTokensRoundTrip(t *testing.T) {
	tokens := []string{"alpha", "beta", "gamma"}
	assert.Equal(t, tokens, DecodeTokens(EncodeTokens(tokens)))
	assert.Nil(t, DecodeTokens(""))
}
