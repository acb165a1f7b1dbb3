package topicgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corpusengine/internal/topicgraph"
)

func TestClusterTopicsGroupsOverlappingTopics(t *testing.T) {
	topics := []topicgraph.TopicSummary{
		{Topic: 0, TopTokens: []string{"rocket", "engine", "fuel", "launch"}},
		{Topic: 1, TopTokens: []string{"rocket", "fuel", "launch", "orbit"}}, // overlaps heavily with 0
		{Topic: 2, TopTokens: []string{"bread", "oven", "flour", "bake"}},    // unrelated
	}

	clusters := topicgraph.ClusterTopics(topics, 0.5)
	assert.Len(t, clusters, 2)

	var sawPair, sawSingle bool
	for _, c := range clusters {
		switch len(c) {
		case 2:
			sawPair = true
			assert.ElementsMatch(t, []int{0, 1}, c)
		case 1:
			sawSingle = true
			assert.Equal(t, []int{2}, c)
		}
	}
	assert.True(t, sawPair)
	assert.True(t, sawSingle)
}

func TestClusterTopicsAllSingletonsWhenDisjoint(t *testing.T) {
	topics := []topicgraph.TopicSummary{
		{Topic: 0, TopTokens: []string{"a", "b"}},
		{Topic: 1, TopTokens: []string{"c", "d"}},
	}
	clusters := topicgraph.ClusterTopics(topics, 0.1)
	assert.Len(t, clusters, 2)
}

func TestClusterTopicsEmpty(t *testing.T) {
	assert.Nil(t, topicgraph.ClusterTopics(nil, 0.5))
}

func TestRepresentativeTopicPicksLowestID(t *testing.T) {
	assert.Equal(t, 2, topicgraph.RepresentativeTopic([]int{5, 2, 9}))
}
