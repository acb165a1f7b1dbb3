package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusengine"
	"corpusengine/internal/pipeline"
)

func TestWordManipulatorByIDUnknown(t *testing.T) {
	_, err := pipeline.WordManipulatorByID(99, nil)
	require.Error(t, err)
	assert.Equal(t, corpusengine.KindUnknownManipulator, corpusengine.KindOf(err))
}

func TestSentenceManipulatorByIDUnknown(t *testing.T) {
	_, err := pipeline.SentenceManipulatorByID(99, "")
	require.Error(t, err)
	assert.Equal(t, corpusengine.KindUnknownManipulator, corpusengine.KindOf(err))
}

func TestSentenceManipulatorByIDNoneReturnsNil(t *testing.T) {
	fn, err := pipeline.SentenceManipulatorByID(pipeline.SentenceManipulatorNone, "")
	require.NoError(t, err)
	assert.Nil(t, fn)
}

func TestDropShortUnicode(t *testing.T) {
	fn := pipeline.DropShortUnicode()
	assert.Equal(t, "", fn("é")) // single codepoint, 2 bytes
	assert.Equal(t, "hello", fn("hello"))
}

func TestEnglishStemmer(t *testing.T) {
	fn := pipeline.EnglishStemmer()
	assert.Equal(t, "launch", fn("launching"))
	assert.Equal(t, "rocket", fn("rockets"))
	assert.Equal(t, "bak", fn("baked"))
}

func TestGermanStemmer(t *testing.T) {
	fn := pipeline.GermanStemmer()
	assert.Equal(t, "bestell", fn("bestellungen"))
}

func TestLemmatiser(t *testing.T) {
	fn := pipeline.Lemmatiser(map[string]string{"ran": "run", "better": "good"})
	assert.Equal(t, "run", fn("ran"))
	assert.Equal(t, "good", fn("better"))
	assert.Equal(t, "walking", fn("walking"))
}

func TestStopwordRemover(t *testing.T) {
	fn := pipeline.StopwordRemover(pipeline.DefaultEnglishStopwords)
	assert.Equal(t, "", fn("the"))
	assert.Equal(t, "rocket", fn("rocket"))
}

func TestPOSTaggerIsIdentity(t *testing.T) {
	fn := pipeline.POSTagger()
	sentence := []string{"a", "b", "c"}
	assert.Equal(t, sentence, fn(sentence))
}

func TestWordManipulatorByIDDispatchesAllKnownIDs(t *testing.T) {
	ids := []int{
		pipeline.WordManipulatorNone,
		pipeline.WordManipulatorDropShortUnicode,
		pipeline.WordManipulatorEnglishStemmer,
		pipeline.WordManipulatorGermanStemmer,
		pipeline.WordManipulatorLemmatiser,
		pipeline.WordManipulatorStopwordRemover,
	}
	for _, id := range ids {
		_, err := pipeline.WordManipulatorByID(id, map[string]string{"x": "y"})
		require.NoError(t, err)
	}
}

func TestWordManipulatorByIDRequiresDictionaryForLemmatiserAndStopwordRemover(t *testing.T) {
	_, err := pipeline.WordManipulatorByID(pipeline.WordManipulatorLemmatiser, nil)
	require.Error(t, err)

	_, err = pipeline.WordManipulatorByID(pipeline.WordManipulatorStopwordRemover, map[string]string{})
	require.Error(t, err)
}
