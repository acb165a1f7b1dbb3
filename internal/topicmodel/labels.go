package topicmodel

import (
	"log/slog"
	"sort"

	"corpusengine"
)

// Label implements label(threads): performs relevance-ranked label
// extraction when labelling is active, otherwise clears any previous
// labelling. Candidate labels are drawn from the pruned vocabulary filtered
// by the labelling-specific minCF/minDF/length bounds, scored by
// topic-relative frequency smoothed by labelSmoothing and penalised by
// labelMu for corpus-wide commonness (a simplified relevance score in the
// spirit of the labelled-LDA "most relevant n-gram" pass spec.md leaves
// unspecified beyond its tunables). threads is advisory, as for Train.
func (m *TopicModel) Label(threads int) error {
	if m.state < StateTrained {
		return corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.Label", "model is not trained", nil)
	}
	slog.Default().Debug("labelling topics", "active", m.labellingActive, "topics", m.k)
	if !m.labellingActive {
		m.labels = nil
		m.state = StateLabelled
		return nil
	}

	cf := map[string]uint64{}
	for tok, idx := range m.vocab {
		var c uint64
		for t := 0; t < m.k; t++ {
			c += uint64(m.topicWordCounts[t][idx])
		}
		cf[tok] = c
	}

	m.labels = make(map[int][]TokenScore, m.k)
	for t := 0; t < m.k; t++ {
		if !m.liveTopics[t] {
			continue
		}
		type cand struct {
			tok   string
			score float64
		}
		var cands []cand
		for tok, idx := range m.vocab {
			if len(tok) < m.labelMinLen || (m.labelMaxLen > 0 && len(tok) > m.labelMaxLen) {
				continue
			}
			if cf[tok] < m.labelMinCF || m.docFreq[tok] < m.labelMinDF {
				continue
			}
			topicCount := float64(m.topicWordCounts[t][idx])
			overall := float64(cf[tok])
			relevance := (topicCount + m.labelSmoothing) / (overall + m.labelMu + m.labelSmoothing)
			if relevance <= 0 {
				continue
			}
			cands = append(cands, cand{tok, relevance})
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
		max := m.labelMaxCandidates
		if max <= 0 || max > len(cands) {
			max = len(cands)
		}
		scores := make([]TokenScore, max)
		for i := 0; i < max; i++ {
			scores[i] = TokenScore{Token: cands[i].tok, Probability: cands[i].score}
		}
		m.labels[t] = scores
	}

	m.state = StateLabelled
	return nil
}
