package faq

import (
	_ "embed"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

//go:embed stopwords.txt
var stopWordList string

var stopWords = parseWordList(stopWordList)

// irregularForms maps inflections the stemmer cannot reduce onto their base word.
var irregularForms = map[string]string{
	"bought":   "buy",
	"brought":  "bring",
	"built":    "build",
	"came":     "come",
	"caught":   "catch",
	"children": "child",
	"chose":    "choose",
	"chosen":   "choose",
	"felt":     "feel",
	"found":    "find",
	"gave":     "give",
	"given":    "give",
	"gone":     "go",
	"got":      "get",
	"gotten":   "get",
	"held":     "hold",
	"kept":     "keep",
	"knew":     "know",
	"known":    "know",
	"left":     "leave",
	"lost":     "lose",
	"made":     "make",
	"men":      "man",
	"met":      "meet",
	"paid":     "pay",
	"people":   "person",
	"ran":      "run",
	"saw":      "see",
	"seen":     "see",
	"sent":     "send",
	"sold":     "sell",
	"sought":   "seek",
	"spent":    "spend",
	"taken":    "take",
	"taught":   "teach",
	"thought":  "think",
	"told":     "tell",
	"took":     "take",
	"went":     "go",
	"women":    "woman",
	"wrote":    "write",
	"written":  "write",
}

// Normalizer turns raw text into a canonical, space separated lemma sequence.
// It is immutable once constructed and safe for concurrent use.
type Normalizer struct {
	synonyms map[string]string
}

// NewNormalizer builds a normalizer. Synonym keys and values are lemmatized
// up front so they line up with normalized tokens; entries that are not a
// single content word are ignored. When several keys share a lemma, the
// lexically first key decides its target.
func NewNormalizer(synonyms map[string]string) *Normalizer {
	words := make([]string, 0, len(synonyms))
	for word := range synonyms {
		words = append(words, word)
	}
	sort.Strings(words)

	folded := make(map[string]string, len(synonyms))
	for _, word := range words {
		from, ok := singleLemma(word)
		if !ok {
			continue
		}
		if _, taken := folded[from]; taken {
			continue
		}
		to, ok := singleLemma(synonyms[word])
		if !ok || from == to {
			continue
		}
		folded[from] = to
	}
	return &Normalizer{synonyms: folded}
}

// Normalize lowercases, tokenizes, lemmatizes and filters text. The result
// may be empty when the input holds only stop words or punctuation.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens is Normalize without the final join.
func (n *Normalizer) Tokens(text string) []string {
	words := tokenize(strings.ToLower(text))
	out := make([]string, 0, len(words))
	for _, word := range words {
		if isStopWord(word) {
			continue
		}
		base := lemma(word)
		if base == "" || isStopWord(base) {
			continue
		}
		if canonical, ok := n.synonyms[base]; ok {
			base = canonical
		}
		out = append(out, base)
	}
	return out
}

// tokenize splits lowercased text into runs of letters and digits.
func tokenize(lowered string) []string {
	var (
		words   []string
		builder strings.Builder
	)
	flush := func() {
		if builder.Len() > 0 {
			words = append(words, builder.String())
			builder.Reset()
		}
	}
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			continue
		}
		// whitespace, punctuation and symbols all separate words
		flush()
	}
	flush()
	return words
}

func lemma(word string) string {
	if base, ok := irregularForms[word]; ok {
		word = base
	}
	if !isASCIIWord(word) {
		return word
	}
	return english.Stem(word, false)
}

func singleLemma(word string) (string, bool) {
	words := tokenize(strings.ToLower(strings.TrimSpace(word)))
	if len(words) != 1 || isStopWord(words[0]) {
		return "", false
	}
	base := lemma(words[0])
	if base == "" || isStopWord(base) {
		return "", false
	}
	return base, true
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// isASCIIWord reports whether the Porter2 English rules apply to word.
func isASCIIWord(word string) bool {
	hasLetter := false
	for _, r := range word {
		if r > unicode.MaxASCII {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func parseWordList(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}
