// Package corpusengine is the text-corpus engine: it assembles batches of
// parsed documents into a corpus, tokenises it, slices it into
// database-shippable chunks, and trains a topic model over the result.
package corpusengine

import (
	"errors"
	"fmt"
)

// Kind tags an Error with the failure category from the engine's error
// table. Callers that need to branch on failure type should compare Kind,
// not the error string.
type Kind string

const (
	KindCorpusAlreadyTokenised       Kind = "corpus_already_tokenised"
	KindCorpusNotTokenised           Kind = "corpus_not_tokenised"
	KindArticleMapEmpty              Kind = "article_map_empty"
	KindArticleOutOfBounds           Kind = "article_out_of_bounds"
	KindInvalidDateLength            Kind = "invalid_date_length"
	KindInvalidArticleMapStart       Kind = "invalid_article_map_start"
	KindInvalidSentenceMapStart      Kind = "invalid_sentence_map_start"
	KindInconsistentSentenceBoundary Kind = "inconsistent_sentence_boundary"
	KindLastSentenceBehindCorpus     Kind = "last_sentence_behind_corpus"
	KindArticleBehindDate            Kind = "article_behind_date"
	KindArticleDateMismatch          Kind = "article_date_mismatch"
	KindInvalidPosition              Kind = "invalid_position"
	KindInvalidEnd                   Kind = "invalid_end"
	KindPositionTooSmall             Kind = "position_too_small"
	KindUnknownManipulator           Kind = "unknown_manipulator"
	KindModelAlreadyInitialised      Kind = "model_already_initialised"
	KindModelAlreadyTrained          Kind = "model_already_trained"
	KindModelNotTrained              Kind = "model_not_trained"
	KindUnknownDocument              Kind = "unknown_document"
	KindChunkSizeZero                Kind = "chunk_size_zero"
	KindInvalidChunkSize             Kind = "invalid_chunk_size"
	KindChunkTooSmall                Kind = "chunk_too_small"
	KindInvalidUTF8                  Kind = "invalid_utf8"
	KindModelFileInvalid             Kind = "model_file_invalid"
)

// Error is the single error type surfaced by every public operation of the
// engine. It is always tagged with a Kind so callers can branch with
// errors.Is/errors.As instead of string matching.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "corpus.Create"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corpusengine: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("corpusengine: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, &corpusengine.Error{Kind: K}) match any *Error with
// the same Kind, regardless of Op/Message/Cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// NewError constructs an *Error. cause may be nil.
func NewError(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// KindOf extracts the Kind of err, or "" if err is not (or does not wrap) an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
