package pipeline

// DefaultEnglishStopwords is a small common-word set usable directly as the
// dictionary argument to StopwordRemover. WordManipulatorByID does not fall
// back to it: manipulator 5 without a dictionary is an error.
var DefaultEnglishStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"he": true, "in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "or": true, "but": true, "not": true, "this": true,
	"these": true, "those": true, "they": true, "them": true, "their": true,
	"i": true, "you": true, "we": true, "can": true, "could": true, "would": true,
	"should": true, "do": true, "does": true, "did": true, "been": true, "being": true,
}
