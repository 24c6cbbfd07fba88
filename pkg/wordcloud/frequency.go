package wordcloud

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordCount is a word and how often it occurs.
type WordCount struct {
	Word  string
	Count int
}

// ProcessText splits text on white space and counts words. Tokens made only
// of digits and tokens shorter than minLength runes are ignored. The result is
// sorted by count, then alphabetically.
func ProcessText(text string, minLength int) []WordCount {
	counts := make(map[string]int)
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) < minLength || isNumber(word) {
			continue
		}
		counts[word]++
	}

	result := make([]WordCount, 0, len(counts))
	for word, n := range counts {
		result = append(result, WordCount{Word: word, Count: n})
	}
	SortCounts(result)
	return result
}

// SortCounts orders counts by descending count, ties alphabetically.
func SortCounts(counts []WordCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
