package textmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusengine"
	"corpusengine/internal/textmap"
)

func TestValidLengthASCII(t *testing.T) {
	s := []byte("abcdefghij")
	l, err := textmap.ValidLength(s, 0, uint64(len(s)), uint64(len(s)))
	require.NoError(t, err)
	assert.EqualValues(t, len(s), l)
}

func TestValidLengthSplitsCodepoint(t *testing.T) {
	// "AB\xC3\xA9CD": é occupies bytes 2-3.
	s := []byte{'A', 'B', 0xC3, 0xA9, 'C', 'D'}
	l, err := textmap.ValidLength(s, 0, 3, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, l)
}

func TestValidLengthChunkTooSmall(t *testing.T) {
	s := []byte{0xC3, 0xA9, 0xC3, 0xA9}
	_, err := textmap.ValidLength(s, 0, 1, 1)
	require.Error(t, err)
	assert.Equal(t, corpusengine.KindChunkTooSmall, corpusengine.KindOf(err))
}

func TestValidLengthInvalidChunkSize(t *testing.T) {
	s := []byte("abc")
	_, err := textmap.ValidLength(s, 0, 5, 3)
	require.Error(t, err)
	assert.Equal(t, corpusengine.KindInvalidChunkSize, corpusengine.KindOf(err))
}

func TestValidLengthEndOfBuffer(t *testing.T) {
	s := []byte("abc")
	l, err := textmap.ValidLength(s, 0, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, l)
}
