package textproc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// StopWords is an immutable set of normalized words excluded from analysis.
type StopWords struct {
	set map[string]struct{}
}

// NewStopWords builds a set from already-normalized words.
func NewStopWords(words ...string) StopWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return StopWords{set: set}
}

// LoadStopWords reads a stop-word file, one word per line.
func LoadStopWords(path string, normalizer Normalizer) (StopWords, error) {
	slog.Info("stop_words_load", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return StopWords{}, fmt.Errorf("failed to open stop-words: %w", err)
	}
	defer f.Close()

	sw, err := ReadStopWords(f, normalizer)
	if err != nil {
		return StopWords{}, fmt.Errorf("failed to read stop-words %s: %w", path, err)
	}

	slog.Debug("stop_words_loaded", "path", path, "count", sw.Len())
	return sw, nil
}

// ReadStopWords parses stop-words from r. Lines are trimmed and normalized;
// blank lines and lines starting with # are skipped.
func ReadStopWords(r io.Reader, normalizer Normalizer) (StopWords, error) {
	if normalizer == nil {
		normalizer = NopNormalizer{}
	}

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if word := normalizer.Normalize(line); word != "" {
			set[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return StopWords{}, err
	}
	return StopWords{set: set}, nil
}

// Contains reports whether word is a stop-word.
func (s StopWords) Contains(word string) bool {
	_, ok := s.set[word]
	return ok
}

// Len returns the number of distinct stop-words.
func (s StopWords) Len() int {
	return len(s.set)
}
