package store

import "fmt"

// schemaSQL returns the DDL for every table the engine persists.
// topicDim controls the vec0 virtual table dimension used for nearest-
// neighbor search over per-document topic vectors. Unlike the teacher's
// schema, there is deliberately no entities/relationships/communities
// knowledge graph here: per SPEC_FULL.md's Non-goals, the corpus's
// article/date/sentence maps stay in-process (internal/corpus), and only
// the chunked corpus text and the trained topic vectors are ever written
// to SQLite.
func schemaSQL(topicDim int) string {
	return fmt.Sprintf(`
-- One row per corpus.Create invocation that has been persisted.
CREATE TABLE IF NOT EXISTS corpora (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    tokenised INTEGER NOT NULL,
    chunk_size INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Byte or token chunks as produced by CopyChunksContinuous / CopyChunksTokenized.
-- content is the chunk's text (continuous corpora) or its tokens joined by
-- U+0000 (tokenised corpora, see EncodeTokens/DecodeTokens).
CREATE TABLE IF NOT EXISTS corpus_chunks (
    id INTEGER PRIMARY KEY,
    corpus_id INTEGER NOT NULL REFERENCES corpora(id) ON DELETE CASCADE,
    chunk_index INTEGER NOT NULL,
    content TEXT NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0,
    UNIQUE(corpus_id, chunk_index)
);

-- One row per trained topicmodel.TopicModel document, keyed by document name.
CREATE TABLE IF NOT EXISTS document_topics (
    id INTEGER PRIMARY KEY,
    corpus_id INTEGER REFERENCES corpora(id) ON DELETE CASCADE,
    document_name TEXT NOT NULL,
    UNIQUE(corpus_id, document_name)
);

-- Topic-vector nearest-neighbor index via sqlite-vec.
CREATE VIRTUAL TABLE IF NOT EXISTS vec_document_topics USING vec0(
    document_topics_id INTEGER PRIMARY KEY,
    topic_vector float[%d]
);

CREATE INDEX IF NOT EXISTS idx_corpus_chunks_corpus ON corpus_chunks(corpus_id);
CREATE INDEX IF NOT EXISTS idx_document_topics_corpus ON document_topics(corpus_id);
`, topicDim)
}
