package topicmodel

import (
	"sort"

	"corpusengine"
)

// GetTopicTopNTokens implements get_topic_top_n_tokens: the n highest-
// probability vocabulary tokens for topic, sorted descending.
func (m *TopicModel) GetTopicTopNTokens(topic, n int) ([]TokenScore, error) {
	if m.state < StateTrained {
		return nil, corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.GetTopicTopNTokens", "model is not trained", nil)
	}
	if topic < 0 || topic >= m.k {
		return nil, corpusengine.NewError(corpusengine.KindUnknownDocument, "topicmodel.GetTopicTopNTokens", "topic index out of range", nil)
	}
	vocabSize := len(m.vocabList)
	total := float64(m.topicTotal[topic]) + m.eta*float64(vocabSize)
	scores := make([]TokenScore, 0, vocabSize)
	for i, tok := range m.vocabList {
		p := (float64(m.topicWordCounts[topic][i]) + m.eta) / total
		scores = append(scores, TokenScore{Token: tok, Probability: p})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Probability > scores[j].Probability })
	if n < len(scores) {
		scores = scores[:n]
	}
	return scores, nil
}

// GetTopicTopNLabels implements get_topic_top_n_labels. An empty result
// means labelling was never performed or never activated; callers must not
// treat that as an error unless they explicitly require labels.
func (m *TopicModel) GetTopicTopNLabels(topic, n int) ([]TokenScore, error) {
	if m.state < StateTrained {
		return nil, corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.GetTopicTopNLabels", "model is not trained", nil)
	}
	labels := m.labels[topic]
	if n < len(labels) {
		labels = labels[:n]
	}
	return append([]TokenScore(nil), labels...), nil
}

// GetTopicsSorted returns every live topic's (index, total token count)
// pair sorted by descending count, used by the topic-model round-trip test
// (scenario 6) to compare a trained model against one reloaded from disk.
func (m *TopicModel) GetTopicsSorted() []struct {
	Topic int
	Count int
} {
	type pair struct {
		Topic int
		Count int
	}
	out := make([]pair, 0, m.k)
	for t := 0; t < m.k; t++ {
		if !m.liveTopics[t] {
			continue
		}
		out = append(out, pair{t, m.topicTotal[t]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Topic < out[j].Topic
	})
	result := make([]struct {
		Topic int
		Count int
	}, len(out))
	for i, p := range out {
		result[i] = struct {
			Topic int
			Count int
		}{p.Topic, p.Count}
	}
	return result
}
