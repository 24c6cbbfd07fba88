package textproc

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WordTokenizer segments text on Unicode word boundaries (UAX #29).
// ZWNJ is a word-internal mark there, so compound Persian words stay whole.
// Segments without any letter or digit are dropped.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) []string {
	var tokens []string
	segments := words.FromString(text)
	for segments.Next() {
		token := strings.Trim(segments.Value(), zwnj)
		if isWord(token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// WhitespaceTokenizer splits on runs of white space.
type WhitespaceTokenizer struct{}

func (WhitespaceTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

func isWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
