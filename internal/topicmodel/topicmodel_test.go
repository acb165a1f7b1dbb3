package topicmodel_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusengine/internal/topicmodel"
)

func fourDocuments() []topicmodel.Document {
	return []topicmodel.Document{
		{Name: "d1", Tokens: []string{"rocket", "engine", "fuel", "rocket", "launch"}},
		{Name: "d2", Tokens: []string{"rocket", "orbit", "fuel", "launch", "engine"}},
		{Name: "d3", Tokens: []string{"bread", "oven", "flour", "bread", "bake"}},
		{Name: "d4", Tokens: []string{"bread", "yeast", "flour", "bake", "oven"}},
	}
}

func trainedModel(t *testing.T) *topicmodel.TopicModel {
	t.Helper()
	m := topicmodel.New()
	require.NoError(t, m.SetRandomNumberGenerationSeed(42))
	require.NoError(t, m.SetInitialParameters(2, 0.5, 0.1, 1.0))
	for _, doc := range fourDocuments() {
		require.NoError(t, m.AddDocument(doc.Name, doc.Tokens, 0, uint64(len(doc.Tokens))))
	}
	require.NoError(t, m.StartTraining())
	require.NoError(t, m.Train(50, 0, nil))
	return m
}

func TestTopicModelRoundTrip(t *testing.T) {
	m := trainedModel(t)

	topics, err := m.GetTopicTopNTokens(0, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, topics)

	path := filepath.Join(t.TempDir(), "model.bin")
	written, err := m.Save(path, true)
	require.NoError(t, err)
	assert.Positive(t, written)

	loaded := topicmodel.New()
	read, err := loaded.Load(path)
	require.NoError(t, err)
	assert.Equal(t, written, read)

	assert.Equal(t, m.GetTopicsSorted(), loaded.GetTopicsSorted())
}

func TestTopicModelDocumentsTopics(t *testing.T) {
	m := trainedModel(t)
	docs, err := m.GetDocumentsTopics(nil)
	require.NoError(t, err)
	assert.Len(t, docs, 4)
	for _, d := range docs {
		var sum float64
		for _, p := range d.Topics {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}
}

func TestTopicModelRepresentativeLabels(t *testing.T) {
	m := topicmodel.New()
	require.NoError(t, m.SetRandomNumberGenerationSeed(42))
	require.NoError(t, m.SetInitialParameters(2, 0.5, 0.1, 1.0))
	require.NoError(t, m.SetLabelingOptions(true, 0, 0, 1, 20, 10, 0.01, 1.0, 0))
	for _, doc := range fourDocuments() {
		require.NoError(t, m.AddDocument(doc.Name, doc.Tokens, 0, uint64(len(doc.Tokens))))
	}
	require.NoError(t, m.StartTraining())
	require.NoError(t, m.Train(50, 0, nil))
	require.NoError(t, m.Label(0))

	labels, err := m.RepresentativeLabels(5, 0.2, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, labels)
}

func TestTopicModelSetterAfterDocumentFails(t *testing.T) {
	m := topicmodel.New()
	require.NoError(t, m.AddDocument("d1", []string{"a", "b"}, 0, 2))
	require.NoError(t, m.StartTraining())
	err := m.SetUseIDF(true)
	require.Error(t, err)
}
