// Package tokenizer normalises raw text into indexable terms. It lower-cases
// input, splits on non-alphanumeric boundaries, removes stop-words, drops
// very short tokens, and applies a light suffix-stripping stemmer.
package tokenizer

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {},
	"being": {}, "but": {}, "by": {}, "can": {}, "did": {},
	"do": {}, "does": {}, "each": {}, "for": {}, "from": {},
	"had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"here": {}, "him": {}, "his": {}, "how": {}, "i": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "just": {}, "more": {}, "my": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "once": {}, "only": {},
	"or": {}, "other": {}, "our": {}, "out": {}, "she": {},
	"so": {}, "some": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "to": {}, "up": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "why": {}, "will": {},
	"with": {}, "you": {}, "your": {},
}

// stemSuffixes is tried strictly in declared order with first-match-wins
// semantics. The duplicates are intentional and harmless: an earlier entry
// always wins, so later copies never fire. Reordering this list, or
// replacing it with a longest-match or dictionary stemmer, changes ranking
// output for existing corpora.
var stemSuffixes = []string{
	"ing", "ly", "ed", "ies", "ied", "ies", "ied", "ies", "ing", "ed",
	"er", "est", "s", "es", "ment", "ness", "tion", "sion", "able", "ible",
}

const minTokenLen = 3

// Tokenize breaks text into a slice of stemmed, lowercased terms with
// stop-words and short tokens removed. Duplicate terms are retained in
// appearance order.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words)/2)
	for _, word := range words {
		if _, isStop := stopWords[word]; isStop {
			continue
		}
		if len(word) < minTokenLen {
			continue
		}
		tokens = append(tokens, stem(word))
	}
	return tokens
}

// stem strips the first matching suffix whose removal leaves more than two
// characters of stem. Words that match no rule pass through unchanged.
func stem(word string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}
