package topicmodel

import "corpusengine"

// topicVectorFor computes the per-live-topic probability vector for a
// document's topic counts, or nil if the counts plus the per-topic alpha
// prior sum to zero over the live topics (the all-NaN case spec §4.5.1 says
// must be discarded rather than division-by-zero). With a positive alpha, a
// document without usable tokens gets the prior's distribution, not nil.
func (m *TopicModel) topicVectorFor(counts []int) []float64 {
	var sum float64
	for t, c := range counts {
		if m.liveTopics[t] {
			sum += float64(c) + m.alphaPerTopic[t]
		}
	}
	if sum == 0 {
		return nil
	}
	var vec []float64
	for t, c := range counts {
		if !m.liveTopics[t] {
			continue
		}
		vec = append(vec, (float64(c)+m.alphaPerTopic[t])/sum)
	}
	return vec
}

// GetDocumentsTopics implements get_documents_topics(done): returns, for
// each trained document whose name is not already in done, its per-live-
// topic probability vector.
func (m *TopicModel) GetDocumentsTopics(done map[string]bool) ([]DocumentTopics, error) {
	if m.state < StateTrained {
		return nil, corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.GetDocumentsTopics", "model is not trained", nil)
	}
	var out []DocumentTopics
	for d, doc := range m.documents {
		if done != nil && done[doc.Name] {
			continue
		}
		vec := m.topicVectorFor(m.docTopicCounts[d])
		if vec == nil {
			continue
		}
		out = append(out, DocumentTopics{Name: doc.Name, Topics: vec})
	}
	if m.state < StateClassified {
		m.state = StateClassified
	}
	return out, nil
}

// InferDocumentsTopics implements get_documents_topics(documents, max_iters,
// workers): infers topic distributions for previously unseen tokenised
// documents using the trained model's word-topic counts, without mutating
// them. workers is advisory and ignored, consistent with Train.
func (m *TopicModel) InferDocumentsTopics(documents []Document, maxIters, workers int) ([]DocumentTopics, error) {
	if m.state < StateTrained {
		return nil, corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.InferDocumentsTopics", "model is not trained", nil)
	}
	rng := m.rngOrDefault()
	vocabSize := len(m.vocabList)
	weights := make([]float64, vocabSize)
	for i, tok := range m.vocabList {
		weights[i] = m.tokenWeight(tok)
	}

	var out []DocumentTopics
	for _, doc := range documents {
		counts := make([]int, m.k)
		assign := make([]int, len(doc.Tokens))
		for i := range assign {
			assign[i] = -1
		}
		for iter := 0; iter < maxIters; iter++ {
			for pos, tok := range doc.Tokens {
				vi, ok := m.vocab[tok]
				if !ok {
					continue
				}
				if old := assign[pos]; old >= 0 {
					counts[old]--
				}
				probs := make([]float64, m.k)
				var sum float64
				for t := 0; t < m.k; t++ {
					wordTerm := (float64(m.topicWordCounts[t][vi]) + m.eta*weights[vi]) / (float64(m.topicTotal[t]) + m.eta*float64(vocabSize))
					docTerm := float64(counts[t]) + m.alphaPerTopic[t]
					p := wordTerm * docTerm
					probs[t] = p
					sum += p
				}
				nt := sampleFrom(rng, probs, sum)
				assign[pos] = nt
				counts[nt]++
			}
		}
		vec := m.topicVectorFor(counts)
		if vec == nil {
			continue
		}
		out = append(out, DocumentTopics{Name: doc.Name, Topics: vec})
	}
	return out, nil
}
