package topicmodel

import (
	"log/slog"

	"corpusengine"
)

// Train implements train(iterations, threads): performs `iterations`
// collapsed Gibbs passes over every document. threads is advisory; the
// sampler runs single-threaded regardless, since multi-threaded training
// is documented (spec §4.5.1) to harm reproducibility and nothing in this
// engine's concurrency model (§5) requires it. May be called repeatedly to
// extend training.
func (m *TopicModel) Train(iterations int, threads int, status *corpusengine.Status) error {
	slog.Default().Debug("training topic model", "iterations", iterations, "documents", len(m.documents))
	if m.state < StatePrepared {
		if err := m.StartTraining(); err != nil {
			return err
		}
	}
	m.state = StateTraining
	rng := m.rngOrDefault()

	vocabSize := len(m.vocabList)
	weights := make([]float64, vocabSize)
	for i, tok := range m.vocabList {
		weights[i] = m.tokenWeight(tok)
	}

	for it := 0; it < iterations; it++ {
		for d, doc := range m.documents {
			if !status.Ok("training topic model", uint64(it*len(m.documents)+d), uint64(iterations*len(m.documents)), false) {
				return nil
			}
			assign := m.assignments[d]
			for pos, tok := range doc.Tokens {
				vi, ok := m.vocab[tok]
				if !ok {
					continue
				}
				old := assign[pos]
				m.docTopicCounts[d][old]--
				m.topicWordCounts[old][vi]--
				m.topicTotal[old]--

				weight := weights[vi]
				probs := make([]float64, m.k)
				var sum float64
				for t := 0; t < m.k; t++ {
					wordTerm := (float64(m.topicWordCounts[t][vi]) + m.eta*weight) / (float64(m.topicTotal[t]) + m.eta*float64(vocabSize))
					docTerm := float64(m.docTopicCounts[d][t]) + m.alphaPerTopic[t]
					p := wordTerm * docTerm
					probs[t] = p
					sum += p
				}
				newTopic := sampleFrom(rng, probs, sum)

				assign[pos] = newTopic
				m.docTopicCounts[d][newTopic]++
				m.topicWordCounts[newTopic][vi]++
				m.topicTotal[newTopic]++
			}
		}
		m.iterationsDone++
	}

	m.recomputeLiveTopics()
	m.state = StateTrained
	return nil
}

// sampleFrom draws a topic index proportionally to probs (which sum to
// sum); falls back to a uniform draw if sum is non-positive (e.g. every
// topic is currently empty for this token).
func sampleFrom(rng interface{ Float64() float64 }, probs []float64, sum float64) int {
	if sum <= 0 {
		return 0
	}
	r := rng.Float64() * sum
	var acc float64
	for i, p := range probs {
		acc += p
		if r <= acc {
			return i
		}
	}
	return len(probs) - 1
}

// recomputeLiveTopics implements is_live_topic: a topic is live if it holds
// at least one token across the whole corpus. For LDA (fixed k) every
// topic is always live; for the HDP approximation, a topic that holds no
// tokens is dead and is skipped by dead-topic filtering
// (§4.5.3).
func (m *TopicModel) recomputeLiveTopics() {
	for t := 0; t < m.k; t++ {
		m.liveTopics[t] = m.fixedK > 0 || m.topicTotal[t] > 0
	}
}

// GetModelInfo implements get_model_info.
func (m *TopicModel) GetModelInfo() TopicModelInfo {
	info := TopicModelInfo{
		VocabSize:        len(m.vocab) + len(m.removedTop),
		UsedVocabSize:    len(m.vocab),
		RemovedTopTokens: append([]string(nil), m.removedTop...),
		Iterations:       m.iterationsDone,
		Eta:              m.eta,
		Version:          m.trainedVersion,
	}
	if m.fixedK > 0 {
		info.Alpha = append([]float64(nil), m.alphaPerTopic...)
	} else {
		info.Alpha = []float64{m.alpha}
		info.Gamma = m.gamma
		for _, c := range m.tableCounts {
			if c > 0 {
				info.NumTables++
			}
		}
	}
	for _, live := range m.liveTopics {
		if live {
			info.NumLiveTopics++
		}
	}
	return info
}
