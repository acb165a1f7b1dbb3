// Package topicmodel implements C5: an HDP/LDA topic-model core trained by
// collapsed Gibbs sampling over a tokenised corpus, with IDF term
// weighting, token-frequency pruning, per-topic top-N token/label
// extraction and opaque save/load.
//
// No HDP/LDA library exists anywhere in the retrieval pack, so both the
// LDA sampler and the HDP approximation (a fixed-truncation Dirichlet
// process stand-in: the "HDP" path simply starts from InitialK topics and
// never grows the truncation, tracking per-topic customer counts as a
// stand-in for per-topic table counts) are implemented directly in Go;
// see DESIGN.md for the stdlib-only justification.
package topicmodel

import (
	"math/rand"

	"corpusengine"
)

// State is the model's lifecycle state, spec §4.5.2.
type State int

const (
	StateEmpty State = iota
	StateInitialised
	StateDocumentsAdded
	StatePrepared
	StateTraining
	StateTrained
	StateClassified
	StateLabelled
)

// Weighting selects term weighting: WeightingOne weights every token 1,
// WeightingIDF applies inverse document frequency.
type Weighting int

const (
	WeightingOne Weighting = iota
	WeightingIDF
)

// Document is a single tokenised input to the model.
type Document struct {
	Name   string
	Tokens []string
}

// TokenScore pairs a vocabulary token (or generated label) with a
// probability, used by top-N extraction and labelling.
type TokenScore struct {
	Token       string
	Probability float64
}

// DocumentTopics is one document's per-live-topic probability vector.
type DocumentTopics struct {
	Name   string
	Topics []float64 // indexed by live-topic position, not raw topic id
}

// TopicModelInfo reports model metadata, spec §4.5.1's get_model_info.
type TopicModelInfo struct {
	VocabSize        int
	UsedVocabSize    int
	RemovedTopTokens []string
	Iterations       int
	Alpha            []float64 // per-topic for LDA, single scalar for HDP
	Gamma            float64   // HDP concentration, 0 for LDA
	Eta              float64
	NumLiveTopics    int
	NumTables        int // HDP only
	Version          string
}

const libraryVersion = "corpusengine-topicmodel/1"

// TopicModel is the C5 component.
type TopicModel struct {
	state State

	fixedK            int // 0 selects HDP
	useIDF            bool
	burnIn            int
	minCF, minDF      uint64
	topNRemoval       int
	initialK          int
	alpha, eta, gamma float64
	paramOptInterval  int
	seed              int64

	labellingActive          bool
	labelMinCF, labelMinDF   uint64
	labelMinLen, labelMaxLen int
	labelMaxCandidates       int
	labelSmoothing           float64
	labelMu                  float64
	labelWindowSize          int

	documents    []Document
	docNameIndex map[string]int

	vocab      map[string]int
	vocabList  []string
	docFreq    map[string]uint64
	removedTop []string

	k               int
	alphaPerTopic   []float64
	docTopicCounts  [][]int
	topicWordCounts [][]int
	topicTotal      []int
	assignments     [][]int
	liveTopics      []bool
	tableCounts     []int // HDP stand-in for per-topic table counts

	rng            *rand.Rand
	iterationsDone int
	trainedVersion string

	labels map[int][]TokenScore

	classifiedDone map[string]bool
}

// New returns an empty model in StateEmpty with the spec's documented
// defaults (k=0 -> HDP, alpha=0.1, eta=0.01, gamma=1.0).
func New() *TopicModel {
	return &TopicModel{
		state:        StateEmpty,
		fixedK:       0,
		initialK:     10,
		alpha:        0.1,
		eta:          0.01,
		gamma:        1.0,
		burnIn:       100,
		vocab:        make(map[string]int),
		docFreq:      make(map[string]uint64),
		docNameIndex: make(map[string]int),
	}
}

func (m *TopicModel) requireNotInitialised(op string) error {
	if m.state > StateInitialised {
		return corpusengine.NewError(corpusengine.KindModelAlreadyInitialised, op, "model configuration cannot change after documents were added", nil)
	}
	if m.state == StateEmpty {
		m.state = StateInitialised
	}
	return nil
}

func (m *TopicModel) SetFixedNumberOfTopics(k int) error {
	if err := m.requireNotInitialised("topicmodel.SetFixedNumberOfTopics"); err != nil {
		return err
	}
	m.fixedK = k
	return nil
}

func (m *TopicModel) SetUseIDF(use bool) error {
	if err := m.requireNotInitialised("topicmodel.SetUseIDF"); err != nil {
		return err
	}
	m.useIDF = use
	return nil
}

func (m *TopicModel) SetBurnIn(iterations int) error {
	if err := m.requireNotInitialised("topicmodel.SetBurnIn"); err != nil {
		return err
	}
	m.burnIn = iterations
	return nil
}

func (m *TopicModel) SetTokenRemoval(minCF, minDF uint64, topN int) error {
	if err := m.requireNotInitialised("topicmodel.SetTokenRemoval"); err != nil {
		return err
	}
	m.minCF, m.minDF, m.topNRemoval = minCF, minDF, topN
	return nil
}

func (m *TopicModel) SetInitialParameters(initialK int, alpha, eta, gamma float64) error {
	if err := m.requireNotInitialised("topicmodel.SetInitialParameters"); err != nil {
		return err
	}
	m.initialK, m.alpha, m.eta, m.gamma = initialK, alpha, eta, gamma
	return nil
}

func (m *TopicModel) SetParameterOptimizationInterval(n int) error {
	if err := m.requireNotInitialised("topicmodel.SetParameterOptimizationInterval"); err != nil {
		return err
	}
	m.paramOptInterval = n
	return nil
}

func (m *TopicModel) SetRandomNumberGenerationSeed(seed int64) error {
	if err := m.requireNotInitialised("topicmodel.SetRandomNumberGenerationSeed"); err != nil {
		return err
	}
	m.seed = seed
	return nil
}

func (m *TopicModel) SetLabelingOptions(active bool, minCF, minDF uint64, minLen, maxLen, maxCandidates int, smoothing, mu float64, windowSize int) error {
	if err := m.requireNotInitialised("topicmodel.SetLabelingOptions"); err != nil {
		return err
	}
	m.labellingActive = active
	m.labelMinCF, m.labelMinDF = minCF, minDF
	m.labelMinLen, m.labelMaxLen = minLen, maxLen
	m.labelMaxCandidates = maxCandidates
	m.labelSmoothing, m.labelMu = smoothing, mu
	m.labelWindowSize = windowSize
	return nil
}

// AddDocument copies tokens[firstToken:firstToken+numTokens] into the model
// as a new named document. Fails with ModelAlreadyTrained once training has
// started (state >= StatePrepared).
func (m *TopicModel) AddDocument(name string, tokens []string, firstToken, numTokens uint64) error {
	if m.state >= StatePrepared {
		return corpusengine.NewError(corpusengine.KindModelAlreadyTrained, "topicmodel.AddDocument", "cannot add documents once training has started", nil)
	}
	if m.state < StateDocumentsAdded {
		m.state = StateDocumentsAdded
	}
	end := firstToken + numTokens
	if end > uint64(len(tokens)) {
		end = uint64(len(tokens))
	}
	doc := Document{Name: name, Tokens: append([]string(nil), tokens[firstToken:end]...)}
	m.docNameIndex[name] = len(m.documents)
	m.documents = append(m.documents, doc)
	return nil
}

func (m *TopicModel) rngOrDefault() *rand.Rand {
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(m.seed))
	}
	return m.rng
}
