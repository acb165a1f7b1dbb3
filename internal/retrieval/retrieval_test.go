package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuseRRFCombinesBothLegs(t *testing.T) {
	vec := []string{"doc-a", "doc-b"}
	name := []string{"doc-b", "doc-c"}

	results := fuseRRF(vec, name, Weights{Vector: 1.0, Name: 1.0}, 10)
	assert.Len(t, results, 3)

	// doc-b appears in both legs (vec rank 1, name rank 0) so it should
	// outscore doc-a (vec rank 0 only) and doc-c (name rank 1 only).
	assert.Equal(t, "doc-b", results[0].DocumentName)
	assert.ElementsMatch(t, []string{"vector", "name"}, results[0].MatchedBy)
}

func TestFuseRRFRespectsMaxResults(t *testing.T) {
	vec := []string{"a", "b", "c", "d"}
	results := fuseRRF(vec, nil, DefaultWeights(), 2)
	assert.Len(t, results, 2)
	assert.Equal(t, "a", results[0].DocumentName)
}

func TestFuseRRFSingleLeg(t *testing.T) {
	results := fuseRRF(nil, []string{"only-name"}, DefaultWeights(), 10)
	assert.Len(t, results, 1)
	assert.Equal(t, "only-name", results[0].DocumentName)
	assert.Equal(t, []string{"name"}, results[0].MatchedBy)
}
