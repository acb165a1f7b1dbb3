package corpusengine

// Config holds the tunable budgets and hyperparameters for a corpus engine
// instance: chunk-size budgets for copy_chunks_*, the manipulator pipeline
// used by tokenize_custom, and the topic model's training hyperparameters.
// Mirrors the teacher repo's Config/DefaultConfig shape.
type Config struct {
	// ChunkSize is the target size in bytes passed to
	// copy_chunks_continuous/copy_chunks_tokenized; for tokenised chunks it
	// bounds the bytes of the newline-joined tokens.
	ChunkSize uint64

	// Manipulators lists manipulator names. No engine operation reads this
	// field: Engine.Tokenize takes numeric word-manipulator IDs, which
	// pipeline.WordManipulatorByID resolves.
	Manipulators []string

	// FreeMemoryEvery is passed through to corpus.Tokenize, which accepts it
	// but does not release anything early: the whole source text is held
	// until tokenising finishes, whatever the value.
	FreeMemoryEvery uint64

	// Topic model hyperparameters.
	NumTopics     int
	Alpha         float64
	Eta           float64
	MinTokenCount uint64 // tokens occurring fewer times than this are pruned before training
	TopNTokens    int    // size of the top-N token list per topic
	RandomSeed    int64

	// StoragePath is the SQLite database file used by internal/store. Empty
	// means in-memory (":memory:").
	StoragePath string
}

// Progress granularity constants from spec.md §5/§6. No operation in this
// module reads them: the corpus and topic-model operations invoke the status
// callbacks once per unit of work (article, sentence or document).
const (
	MergeUpdateEvery                  = 10000
	TokenizeUpdateEvery               = 10000
	FilterUpdateEvery                 = 10000
	TopicModellingUpdateProgressEvery = 1000
)

// DefaultConfig returns the engine's baseline configuration: a 2000-unit
// chunk size, no manipulators beyond whatever the caller appends, and
// topic-model hyperparameters suited to a small corpus.
func DefaultConfig() Config {
	return Config{
		ChunkSize:       2000,
		Manipulators:    nil,
		FreeMemoryEvery: 0,
		NumTopics:       20,
		Alpha:           0.1,
		Eta:             0.01,
		MinTokenCount:   2,
		TopNTokens:      10,
		RandomSeed:      1,
		StoragePath:     ":memory:",
	}
}
