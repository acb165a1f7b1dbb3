package corpusengine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"corpusengine/internal/corpus"
	"corpusengine/internal/ingest"
	"corpusengine/internal/retrieval"
	"corpusengine/internal/store"
	"corpusengine/internal/topicmodel"
)

// Engine wires together ingestion, the corpus, the tokenisation pipeline,
// topic modelling and persistence into the single orchestration surface a
// caller drives end to end. It is the engine's analogue of the teacher
// repo's goreason.go Engine interface: one entry point per lifecycle stage,
// backed by a *store.Store for everything durable.
type Engine interface {
	// IngestDirectory parses every supported file under dir and makes the
	// result the named corpus's content, creating the corpus if this is its
	// first use; earlier content of that corpus is replaced. Files that fail
	// to parse are skipped.
	IngestDirectory(ctx context.Context, corpusName, dir string) error

	// Tokenize runs the pipeline's word manipulators over the named corpus
	// and persists the resulting chunks to the store.
	Tokenize(ctx context.Context, corpusName string, wordManipIDs []int, wordDictionaries []map[string]string) error

	// TrainTopics builds one topicmodel.Document per article in the named
	// corpus, trains a topic model over them, and persists each document's
	// topic-probability vector for nearest-neighbor search.
	TrainTopics(ctx context.Context, corpusName string, iterations int) (*topicmodel.TopicModel, error)

	// FindSimilarDocuments runs a hybrid vector+name search across every
	// document TrainTopics has persisted a topic vector for.
	FindSimilarDocuments(ctx context.Context, queryVector []float64, nameTerm string, maxResults int) ([]retrieval.Result, error)

	Close() error
}

type corpusState struct {
	corpus *corpus.Corpus
	id     int64 // store-assigned corpus row, set once Tokenize has run
}

type engine struct {
	cfg     Config
	store   *store.Store
	corpora map[string]*corpusState
}

// NewEngine opens a Store at cfg.StoragePath sized for cfg.NumTopics-
// dimensional topic vectors and returns a ready-to-use Engine.
func NewEngine(cfg Config) (Engine, error) {
	s, err := store.Open(cfg.StoragePath, cfg.NumTopics)
	if err != nil {
		return nil, err
	}
	return &engine{
		cfg:     cfg,
		store:   s,
		corpora: make(map[string]*corpusState),
	}, nil
}

func (e *engine) corpusFor(name string) *corpusState {
	cs, ok := e.corpora[name]
	if !ok {
		cs = &corpusState{corpus: corpus.New(true)}
		e.corpora[name] = cs
	}
	return cs
}

func (e *engine) IngestDirectory(ctx context.Context, corpusName, dir string) error {
	paths, err := walkFiles(dir)
	if err != nil {
		return err
	}

	var texts, ids, dates []string
	addArticle := func(a ingest.Article) {
		texts = append(texts, a.Text)
		ids = append(ids, a.ID)
		dates = append(dates, a.Date)
	}

	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			rows, err := ingest.ReadSpreadsheet(path)
			if err != nil {
				continue
			}
			for _, a := range rows {
				addArticle(a)
			}
			continue
		}
		a, err := ingest.ParseFile(path)
		if err != nil {
			continue
		}
		addArticle(a)
	}

	// Sources without a known date (plain text, most DOCX/PPTX) report "";
	// a date map is only built when every article has a date.
	for _, d := range dates {
		if d == "" {
			dates = nil
			break
		}
	}

	cs := e.corpusFor(corpusName)
	return cs.corpus.Create(texts, ids, dates, false)
}

// walkFiles lists every regular file under dir, in deterministic
// lexical order, for ingest.ParseFile to attempt in turn.
func walkFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (e *engine) Tokenize(ctx context.Context, corpusName string, wordManipIDs []int, wordDictionaries []map[string]string) error {
	cs, ok := e.corpora[corpusName]
	if !ok {
		return NewError(KindUnknownDocument, "Engine.Tokenize", "no such corpus: "+corpusName, nil)
	}

	if _, err := cs.corpus.Tokenize(nil, nil, wordManipIDs, wordDictionaries, e.cfg.FreeMemoryEvery, nil); err != nil {
		return err
	}

	chunks, wordNums, _, _, _, err := cs.corpus.CopyChunksTokenized(e.cfg.ChunkSize)
	if err != nil {
		return err
	}

	corpusID, err := e.store.CreateCorpus(ctx, corpusName, true, e.cfg.ChunkSize)
	if err != nil {
		return err
	}
	cs.id = corpusID

	storeChunks := make([]store.CorpusChunk, len(chunks))
	for i, raw := range chunks {
		// CopyChunksTokenized joins tokens with newlines; re-encoding them
		// through EncodeTokens gives SaveChunks a NUL-joined representation
		// that round-trips even if a manipulator ever emits a token
		// containing a literal newline.
		storeChunks[i] = store.CorpusChunk{
			Index:     i,
			Content:   store.EncodeTokens(splitNewlineTokens(raw)),
			WordCount: wordNums[i],
		}
	}
	return e.store.SaveChunks(ctx, corpusID, storeChunks)
}

func (e *engine) TrainTopics(ctx context.Context, corpusName string, iterations int) (*topicmodel.TopicModel, error) {
	cs, ok := e.corpora[corpusName]
	if !ok {
		return nil, NewError(KindUnknownDocument, "Engine.TrainTopics", "no such corpus: "+corpusName, nil)
	}
	if !cs.corpus.IsTokenised() {
		return nil, NewError(KindCorpusNotTokenised, "Engine.TrainTopics", "corpus must be tokenised before training", nil)
	}

	m := topicmodel.New()
	if err := m.SetRandomNumberGenerationSeed(e.cfg.RandomSeed); err != nil {
		return nil, err
	}
	if err := m.SetInitialParameters(e.cfg.NumTopics, e.cfg.Alpha, e.cfg.Eta, 1.0); err != nil {
		return nil, err
	}
	// Fix the topic count rather than letting HDP prune dead topics: the
	// store was opened with topicDim == cfg.NumTopics, and SaveDocumentTopics
	// requires every persisted vector to have exactly that many dimensions.
	if err := m.SetFixedNumberOfTopics(e.cfg.NumTopics); err != nil {
		return nil, err
	}
	if err := m.SetTokenRemoval(e.cfg.MinTokenCount, 0, 0); err != nil {
		return nil, err
	}

	for _, articleID := range cs.corpus.GetArticles() {
		tokens, err := cs.corpus.GetTokenizedByID(articleID)
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			continue
		}
		if err := m.AddDocument(articleID, tokens, 0, uint64(len(tokens))); err != nil {
			return nil, err
		}
	}

	if err := m.StartTraining(); err != nil {
		return nil, err
	}
	if err := m.Train(iterations, 0, nil); err != nil {
		return nil, err
	}

	docs, err := m.GetDocumentsTopics(nil)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if _, err := e.store.SaveDocumentTopics(ctx, cs.id, doc.Name, doc.Topics); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (e *engine) FindSimilarDocuments(ctx context.Context, queryVector []float64, nameTerm string, maxResults int) ([]retrieval.Result, error) {
	r := retrieval.New(e.store, retrieval.DefaultWeights())
	return r.Search(ctx, queryVector, nameTerm, maxResults)
}

func (e *engine) Close() error {
	return e.store.Close()
}

func splitNewlineTokens(raw []byte) []string {
	var tokens []string
	start := 0
	for i, b := range raw {
		if b == '\n' {
			tokens = append(tokens, string(raw[start:i]))
			start = i + 1
		}
	}
	tokens = append(tokens, string(raw[start:]))
	return tokens
}
