package topicmodel

import (
	"sort"

	"corpusengine"
)

// StartTraining implements the `prepared` transition: builds the pruned
// vocabulary (applying minCF/minDF/topN removal per SetTokenRemoval),
// allocates the Gibbs sampling state and records the library version used.
func (m *TopicModel) StartTraining() error {
	if m.state >= StatePrepared {
		return nil
	}
	if len(m.documents) == 0 {
		return corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.StartTraining", "no documents added", nil)
	}

	cf := map[string]uint64{}
	df := map[string]uint64{}
	for _, doc := range m.documents {
		seen := map[string]bool{}
		for _, tok := range doc.Tokens {
			cf[tok]++
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	removed := map[string]bool{}
	for tok, c := range cf {
		if c < m.minCF || df[tok] < m.minDF {
			removed[tok] = true
		}
	}
	if m.topNRemoval > 0 {
		type cfEntry struct {
			tok string
			c   uint64
		}
		entries := make([]cfEntry, 0, len(cf))
		for tok, c := range cf {
			entries = append(entries, cfEntry{tok, c})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].c > entries[j].c })
		for i := 0; i < m.topNRemoval && i < len(entries); i++ {
			removed[entries[i].tok] = true
		}
	}

	m.vocab = make(map[string]int)
	m.vocabList = nil
	for tok := range cf {
		if removed[tok] {
			m.removedTop = append(m.removedTop, tok)
			continue
		}
		m.vocab[tok] = len(m.vocabList)
		m.vocabList = append(m.vocabList, tok)
	}
	sort.Strings(m.removedTop)
	m.docFreq = df

	m.k = m.initialK
	if m.fixedK > 0 {
		m.k = m.fixedK
	}
	if m.k <= 0 {
		m.k = 1
	}

	m.alphaPerTopic = make([]float64, m.k)
	for i := range m.alphaPerTopic {
		m.alphaPerTopic[i] = m.alpha
	}
	m.tableCounts = make([]int, m.k)
	m.liveTopics = make([]bool, m.k)
	for i := range m.liveTopics {
		m.liveTopics[i] = true
	}

	m.docTopicCounts = make([][]int, len(m.documents))
	m.topicWordCounts = make([][]int, m.k)
	for t := range m.topicWordCounts {
		m.topicWordCounts[t] = make([]int, len(m.vocabList))
	}
	m.topicTotal = make([]int, m.k)
	m.assignments = make([][]int, len(m.documents))

	rng := m.rngOrDefault()
	for d, doc := range m.documents {
		m.docTopicCounts[d] = make([]int, m.k)
		assign := make([]int, 0, len(doc.Tokens))
		for _, tok := range doc.Tokens {
			vi, ok := m.vocab[tok]
			if !ok {
				assign = append(assign, -1)
				continue
			}
			topic := rng.Intn(m.k)
			assign = append(assign, topic)
			m.docTopicCounts[d][topic]++
			m.topicWordCounts[topic][vi]++
			m.topicTotal[topic]++
			m.tableCounts[topic]++
		}
		m.assignments[d] = assign
	}

	m.trainedVersion = libraryVersion
	m.state = StatePrepared
	return nil
}

// tokenWeight returns the term weight for tok under the configured
// weighting scheme: 1 under WeightingOne, inverse document frequency under
// WeightingIDF.
func (m *TopicModel) tokenWeight(tok string) float64 {
	if !m.useIDF {
		return 1
	}
	d := m.docFreq[tok]
	if d == 0 {
		d = 1
	}
	n := float64(len(m.documents))
	idf := 1.0
	if n > 0 {
		idf = 1.0 + (n / float64(d))
	}
	return idf
}
