package topicmodel

import (
	"corpusengine"
	"corpusengine/internal/topicgraph"
)

// TopicClusters groups live topics whose top-N tokens overlap by at least
// minJaccard, so a caller can pick one representative label per cluster
// instead of emitting near-duplicate labels for near-duplicate topics. Each
// returned cluster is a slice of topic indices; topicN controls how many
// top tokens feed the overlap comparison.
func (m *TopicModel) TopicClusters(topicN int, minJaccard float64) ([][]int, error) {
	if m.state < StateTrained {
		return nil, corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.TopicClusters", "model is not trained", nil)
	}

	var summaries []topicgraph.TopicSummary
	for t := 0; t < m.k; t++ {
		if !m.liveTopics[t] {
			continue
		}
		scores, err := m.GetTopicTopNTokens(t, topicN)
		if err != nil {
			return nil, err
		}
		tokens := make([]string, len(scores))
		for i, s := range scores {
			tokens[i] = s.Token
		}
		summaries = append(summaries, topicgraph.TopicSummary{Topic: t, TopTokens: tokens})
	}

	return topicgraph.ClusterTopics(summaries, minJaccard), nil
}

// RepresentativeLabels returns GetTopicTopNLabels for only one topic per
// cluster from TopicClusters, keyed by every topic index in that cluster,
// so duplicate-topic labels collapse onto a shared label set.
func (m *TopicModel) RepresentativeLabels(topicN int, minJaccard float64, labelN int) (map[int][]TokenScore, error) {
	clusters, err := m.TopicClusters(topicN, minJaccard)
	if err != nil {
		return nil, err
	}
	out := make(map[int][]TokenScore, m.k)
	for _, cluster := range clusters {
		rep := topicgraph.RepresentativeTopic(cluster)
		labels, err := m.GetTopicTopNLabels(rep, labelN)
		if err != nil {
			return nil, err
		}
		for _, t := range cluster {
			out[t] = labels
		}
	}
	return out, nil
}
