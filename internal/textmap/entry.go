// Package textmap implements the UTF-8 boundary finder and the text-map
// primitives (spec components C1 and C2): the typed (position, length,
// value) triples used to annotate a corpus with article, date and sentence
// boundaries, and a handful of pure bookkeeping operations over such
// entries. The corpus package's own mutation passes (compaction,
// re-tokenisation) do not call those bookkeeping operations.
package textmap

// Entry is a semantic text-map record: an article or date annotation over a
// byte range (continuous corpus) or a token range (tokenised corpus).
type Entry struct {
	Pos   uint64
	Len   uint64
	Value string
}

// End returns the first position past the entry.
func (e Entry) End() uint64 { return e.Pos + e.Len }

// Empty reports whether the entry has zero length; invariant I6 forbids
// storing these after any mutation completes.
func (e Entry) Empty() bool { return e.Len == 0 }

// SentenceEntry is a position/length pair with no value, used for the
// sentence map. Sentence entries tile the token sequence of a tokenised
// corpus (invariant I4).
type SentenceEntry struct {
	Pos uint64
	Len uint64
}

// End returns the first token index past the sentence.
func (e SentenceEntry) End() uint64 { return e.Pos + e.Len }

// Empty reports whether the sentence has zero tokens.
func (e SentenceEntry) Empty() bool { return e.Len == 0 }
