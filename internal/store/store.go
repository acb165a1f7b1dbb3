// Package store persists corpus chunks and trained topic vectors to SQLite,
// using sqlite-vec for nearest-neighbor search over document topic
// distributions. It is the engine's storage boundary: internal/corpus and
// internal/topicmodel know nothing about SQL, they only produce the chunks
// and vectors this package writes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"corpusengine"
)

func init() {
	sqlite_vec.Auto()
}

// Store wraps the SQLite database backing one corpus engine instance.
type Store struct {
	db       *sql.DB
	topicDim int
}

// Open creates (if necessary) and opens a SQLite database at dbPath,
// sized for topicDim-dimensional topic vectors. Pass ":memory:" for an
// ephemeral in-process store; an empty dbPath is treated the same way.
func Open(dbPath string, topicDim int) (*Store, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.Open", "creating database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.Open", "opening database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.Open", "pinging database", err)
	}

	if _, err := db.Exec(schemaSQL(topicDim)); err != nil {
		db.Close()
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.Open", "creating schema", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db, topicDim: topicDim}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.Open", "running migrations", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TopicDim returns the configured topic-vector dimension.
func (s *Store) TopicDim() int {
	return s.topicDim
}

// CorpusChunk is one persisted chunk of a corpus.
type CorpusChunk struct {
	Index     int
	Content   string
	WordCount uint64
}

// CreateCorpus registers a named corpus and returns its row ID. tokenised
// records whether the chunks that follow are tokenised (token-joined) or
// continuous (raw text).
func (s *Store) CreateCorpus(ctx context.Context, name string, tokenised bool, chunkSize uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO corpora (name, tokenised, chunk_size) VALUES (?, ?, ?)",
		name, boolToInt(tokenised), chunkSize)
	if err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.CreateCorpus", "inserting corpus row", err)
	}
	return res.LastInsertId()
}

// SaveChunks writes a corpus's chunks in order, replacing any chunks
// previously stored for that corpus ID.
func (s *Store) SaveChunks(ctx context.Context, corpusID int64, chunks []CorpusChunk) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM corpus_chunks WHERE corpus_id = ?", corpusID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO corpus_chunks (corpus_id, chunk_index, content, word_count) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, c := range chunks {
			if _, err := stmt.ExecContext(ctx, corpusID, c.Index, c.Content, c.WordCount); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadChunks returns a corpus's chunks ordered by chunk index.
func (s *Store) LoadChunks(ctx context.Context, corpusID int64) ([]CorpusChunk, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT chunk_index, content, word_count FROM corpus_chunks WHERE corpus_id = ? ORDER BY chunk_index",
		corpusID)
	if err != nil {
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.LoadChunks", "querying chunks", err)
	}
	defer rows.Close()

	var chunks []CorpusChunk
	for rows.Next() {
		var c CorpusChunk
		if err := rows.Scan(&c.Index, &c.Content, &c.WordCount); err != nil {
			return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.LoadChunks", "scanning chunk row", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// SaveDocumentTopics stores a trained document's topic-probability vector
// and indexes it for nearest-neighbor search. corpusID may be zero when the
// document isn't tied to a persisted corpus.
func (s *Store) SaveDocumentTopics(ctx context.Context, corpusID int64, documentName string, vector []float64) (int64, error) {
	if len(vector) != s.topicDim {
		return 0, corpusengine.NewError(corpusengine.KindInvalidChunkSize, "store.SaveDocumentTopics",
			fmt.Sprintf("topic vector has %d dimensions, store was opened with %d", len(vector), s.topicDim), nil)
	}

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO document_topics (corpus_id, document_name) VALUES (?, ?)
			ON CONFLICT(corpus_id, document_name) DO UPDATE SET document_name = excluded.document_name
		`, nullableID(corpusID), documentName)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}
		if id == 0 {
			row := tx.QueryRowContext(ctx,
				"SELECT id FROM document_topics WHERE corpus_id IS ? AND document_name = ?",
				nullableID(corpusID), documentName)
			if err := row.Scan(&id); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO vec_document_topics (document_topics_id, topic_vector) VALUES (?, ?)",
			id, serializeFloat64(vector))
		return err
	})
	return id, err
}

// TopicMatch is one nearest-neighbor hit from NearestDocuments.
type TopicMatch struct {
	DocumentName string
	Distance     float64
}

// NearestDocuments returns the k documents whose stored topic vectors are
// closest to query (by sqlite-vec's default L2 distance).
func (s *Store) NearestDocuments(ctx context.Context, query []float64, k int) ([]TopicMatch, error) {
	if len(query) != s.topicDim {
		return nil, corpusengine.NewError(corpusengine.KindInvalidChunkSize, "store.NearestDocuments",
			fmt.Sprintf("query vector has %d dimensions, store was opened with %d", len(query), s.topicDim), nil)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT dt.document_name, v.distance
		FROM vec_document_topics v
		JOIN document_topics dt ON dt.id = v.document_topics_id
		WHERE v.topic_vector MATCH ? AND k = ?
		ORDER BY v.distance
	`, serializeFloat64(query), k)
	if err != nil {
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.NearestDocuments", "running vector search", err)
	}
	defer rows.Close()

	var matches []TopicMatch
	for rows.Next() {
		var m TopicMatch
		if err := rows.Scan(&m.DocumentName, &m.Distance); err != nil {
			return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.NearestDocuments", "scanning match row", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// SearchDocumentNames returns document names containing term as a
// case-insensitive substring, ordered with prefix matches first. Used by
// internal/retrieval as the lexical leg of hybrid search alongside
// NearestDocuments.
func (s *Store) SearchDocumentNames(ctx context.Context, term string, limit int) ([]string, error) {
	if term == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_name FROM document_topics
		WHERE document_name LIKE '%' || ? || '%'
		ORDER BY CASE WHEN document_name LIKE ? || '%' THEN 0 ELSE 1 END, document_name
		LIMIT ?
	`, term, term, limit)
	if err != nil {
		return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.SearchDocumentNames", "querying document names", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, corpusengine.NewError(corpusengine.KindModelFileInvalid, "store.SearchDocumentNames", "scanning document name", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

// EncodeTokens and DecodeTokens represent a tokenised chunk's token slice
// as a single TEXT column, joined on a separator that cannot occur inside
// a token (tokens are produced by internal/pipeline manipulators operating
// on word-boundary-split text, never containing NUL).
const tokenSeparator = "\x00"

func EncodeTokens(tokens []string) string {
	return strings.Join(tokens, tokenSeparator)
}

func DecodeTokens(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, tokenSeparator)
}

func serializeFloat64(v []float64) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		bits := math.Float32bits(float32(f))
		buf[i*4+0] = byte(bits)
		buf[i*4+1] = byte(bits >> 8)
		buf[i*4+2] = byte(bits >> 16)
		buf[i*4+3] = byte(bits >> 24)
	}
	return buf
}
