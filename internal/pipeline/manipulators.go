// Package pipeline implements the C4 tokenisation pipeline's manipulator
// contract: sentence-level manipulators that reorder or annotate a whole
// sentence, and token-level manipulators that transform or drop one token
// at a time. Manipulators are pure functions; the corpus package owns the
// byte-walk and map bookkeeping that invokes them (spec §4.4).
package pipeline

import (
	"strings"
	"unicode/utf8"

	"corpusengine"
)

// WordManipulator transforms a single token. Returning "" drops the token
// from its sentence; this is the only contract a stemmer, lemmatiser,
// stopword remover or POS-tagger-adjacent token filter must satisfy.
type WordManipulator func(token string) string

// SentenceManipulator transforms a whole sentence (already split into
// tokens) before token manipulators run. It returns the (possibly
// reordered, re-tagged) token slice; it must not change the number of
// tokens in a way the caller cannot reconcile with the surrounding maps, so
// in practice sentence manipulators only reorder or annotate in place.
type SentenceManipulator func(sentence []string) []string

// Recognised numeric IDs, per spec §4.3.8.
const (
	SentenceManipulatorNone      = 0
	SentenceManipulatorPOSTagger = 1

	WordManipulatorNone             = 0
	WordManipulatorDropShortUnicode = 1
	WordManipulatorEnglishStemmer   = 2
	WordManipulatorGermanStemmer    = 3
	WordManipulatorLemmatiser       = 4
	WordManipulatorStopwordRemover  = 5
)

// SentenceManipulatorByID resolves a numeric sentence-manipulator ID to an
// implementation. model is the dictionary/model name some manipulators
// require; it is ignored by manipulators that don't need one.
func SentenceManipulatorByID(id int, model string) (SentenceManipulator, error) {
	switch id {
	case SentenceManipulatorNone:
		return nil, nil
	case SentenceManipulatorPOSTagger:
		return POSTagger(), nil
	default:
		return nil, corpusengine.NewError(corpusengine.KindUnknownManipulator, "pipeline.SentenceManipulatorByID",
			"unrecognised sentence manipulator id", nil)
	}
}

// WordManipulatorByID resolves a numeric token-manipulator ID to an
// implementation. dictionary supplies the data manipulators 4 and 5 use
// (the lemmatiser's word-to-lemma map; for the stopword remover, its keys
// are the stopwords); those fail if dictionary is empty.
func WordManipulatorByID(id int, dictionary map[string]string) (WordManipulator, error) {
	switch id {
	case WordManipulatorNone:
		return nil, nil
	case WordManipulatorDropShortUnicode:
		return DropShortUnicode(), nil
	case WordManipulatorEnglishStemmer:
		return EnglishStemmer(), nil
	case WordManipulatorGermanStemmer:
		return GermanStemmer(), nil
	case WordManipulatorLemmatiser:
		if len(dictionary) == 0 {
			return nil, corpusengine.NewError(corpusengine.KindUnknownManipulator, "pipeline.WordManipulatorByID",
				"lemmatiser requires a non-empty dictionary", nil)
		}
		return Lemmatiser(dictionary), nil
	case WordManipulatorStopwordRemover:
		if len(dictionary) == 0 {
			return nil, corpusengine.NewError(corpusengine.KindUnknownManipulator, "pipeline.WordManipulatorByID",
				"stopword remover requires a non-empty dictionary", nil)
		}
		return StopwordRemover(dictionaryKeys(dictionary)), nil
	default:
		return nil, corpusengine.NewError(corpusengine.KindUnknownManipulator, "pipeline.WordManipulatorByID",
			"unrecognised token manipulator id", nil)
	}
}

func dictionaryKeys(dict map[string]string) map[string]bool {
	out := make(map[string]bool, len(dict))
	for k := range dict {
		out[k] = true
	}
	return out
}

// DropShortUnicode drops any token that is a single codepoint 2-4 bytes
// long in UTF-8 (manipulator 1): typically stray punctuation-adjacent
// glyphs that survived the sentence splitter.
func DropShortUnicode() WordManipulator {
	return func(token string) string {
		n := utf8.RuneCountInString(token)
		if n != 1 {
			return token
		}
		if len(token) >= 2 && len(token) <= 4 {
			return ""
		}
		return token
	}
}

// englishSuffixes lists common inflectional suffixes stripped by the
// trivial affix stemmer, longest first so "ies" is tried before "s".
var englishSuffixes = []string{"ingly", "edly", "ing", "ies", "ied", "ed", "es", "s"}

// EnglishStemmer implements manipulator 2: a minimal suffix-stripping affix
// stemmer. It is not claimed to be linguistically complete (see SPEC_FULL.md
// Non-goals); it exists to give the one-token-in-one-token-out contract a
// concrete, testable instance.
func EnglishStemmer() WordManipulator {
	return func(token string) string {
		lower := strings.ToLower(token)
		for _, suf := range englishSuffixes {
			if len(lower) > len(suf)+2 && strings.HasSuffix(lower, suf) {
				return lower[:len(lower)-len(suf)]
			}
		}
		return lower
	}
}

// germanSuffixes mirrors EnglishStemmer for the handful of common German
// inflectional endings.
var germanSuffixes = []string{"ungen", "ung", "heit", "keit", "lich", "en", "er", "es", "e", "n"}

// GermanStemmer implements manipulator 3, the German counterpart of
// EnglishStemmer.
func GermanStemmer() WordManipulator {
	return func(token string) string {
		lower := strings.ToLower(token)
		for _, suf := range germanSuffixes {
			if len(lower) > len(suf)+2 && strings.HasSuffix(lower, suf) {
				return lower[:len(lower)-len(suf)]
			}
		}
		return lower
	}
}

// Lemmatiser implements manipulator 4 against an in-memory dictionary built
// from the wire format of spec §6 (surface form -> lemma). A token absent
// from the dictionary passes through unchanged.
func Lemmatiser(dictionary map[string]string) WordManipulator {
	return func(token string) string {
		if lemma, ok := dictionary[strings.ToLower(token)]; ok {
			return lemma
		}
		return token
	}
}

// StopwordRemover implements manipulator 5: tokens present (case-folded) in
// the stopword set are dropped, everything else passes through.
func StopwordRemover(stopwords map[string]bool) WordManipulator {
	return func(token string) string {
		if stopwords[strings.ToLower(token)] {
			return ""
		}
		return token
	}
}

// POSTagger implements sentence manipulator 1. Tagging in this engine is a
// no-op annotation pass: the contract only requires that the sentence
// manipulator run in order before token manipulators; a real POS tagger
// would attach tags out of band (e.g. consumed by a downstream
// lemmatiser), which is exactly the kind of external-model collaborator
// spec.md §1 leaves unspecified. It returns the sentence unchanged.
func POSTagger() SentenceManipulator {
	return func(sentence []string) []string { return sentence }
}
