// Package retrieval performs hybrid nearest-neighbor search over the
// documents a topicmodel.TopicModel has assigned topic vectors to,
// combining the vector search internal/store exposes via sqlite-vec with a
// lexical search over document names. It is adapted from the teacher's
// vector+FTS+graph fusion engine, trimmed to the two legs that apply once
// there is no free-text chunk index or knowledge graph to fuse against.
package retrieval

import (
	"context"
	"sort"

	"corpusengine/internal/store"
)

// Weights controls how much each leg of a hybrid search contributes to the
// fused ranking.
type Weights struct {
	Vector float64
	Name   float64
}

// DefaultWeights favors topic similarity over name matching.
func DefaultWeights() Weights {
	return Weights{Vector: 1.0, Name: 0.3}
}

// Result is one fused hit from Search.
type Result struct {
	DocumentName string
	Score        float64
	MatchedBy    []string // "vector", "name"
}

// Engine runs hybrid searches against a store.Store.
type Engine struct {
	store   *store.Store
	weights Weights
}

func New(s *store.Store, weights Weights) *Engine {
	return &Engine{store: s, weights: weights}
}

// Search fuses a topic-vector nearest-neighbor search with a document-name
// substring search via reciprocal rank fusion. Either queryVector or
// nameTerm may be empty/nil to run a single-leg search.
func (e *Engine) Search(ctx context.Context, queryVector []float64, nameTerm string, maxResults int) ([]Result, error) {
	var vecNames []string
	if len(queryVector) > 0 {
		matches, err := e.store.NearestDocuments(ctx, queryVector, maxResults*3+10)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			vecNames = append(vecNames, m.DocumentName)
		}
	}

	var nameMatches []string
	if nameTerm != "" {
		names, err := e.store.SearchDocumentNames(ctx, nameTerm, maxResults*3+10)
		if err != nil {
			return nil, err
		}
		nameMatches = names
	}

	return fuseRRF(vecNames, nameMatches, e.weights, maxResults), nil
}

const rrfK = 60

// fuseRRF combines two independently ranked name lists using reciprocal
// rank fusion: score = sum(weight_i / (k + rank_i)). Grounded on the
// teacher's retrieval/rrf.go, simplified from three legs to two since there
// is no FTS chunk index or knowledge graph here.
func fuseRRF(vecNames, nameNames []string, w Weights, maxResults int) []Result {
	type entry struct {
		score     float64
		matchedBy []string
	}
	fused := make(map[string]*entry)

	for rank, name := range vecNames {
		e, ok := fused[name]
		if !ok {
			e = &entry{}
			fused[name] = e
		}
		e.score += w.Vector / float64(rrfK+rank+1)
		e.matchedBy = append(e.matchedBy, "vector")
	}
	for rank, name := range nameNames {
		e, ok := fused[name]
		if !ok {
			e = &entry{}
			fused[name] = e
		}
		e.score += w.Name / float64(rrfK+rank+1)
		e.matchedBy = append(e.matchedBy, "name")
	}

	results := make([]Result, 0, len(fused))
	for name, e := range fused {
		results = append(results, Result{DocumentName: name, Score: e.score, MatchedBy: e.matchedBy})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentName < results[j].DocumentName
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
