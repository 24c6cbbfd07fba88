// Package stats turns a chat export into word statistics and a word cloud.
package stats

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chat_stats/pkg/chat"
	"chat_stats/pkg/textproc"
	"chat_stats/pkg/wordcloud"
)

// ResultFile is the name of the rendered image inside the output directory.
const ResultFile = "result.png"

// Resources are the read-only collaborators shared by every ChatStatistics.
type Resources struct {
	Normalizer textproc.Normalizer
	Tokenizer  textproc.Tokenizer
	StopWords  textproc.StopWords
}

// LoadResources builds the Persian pipeline with stop-words read from path.
func LoadResources(stopWordsPath string) (Resources, error) {
	normalizer := textproc.NewPersianNormalizer()
	stopWords, err := textproc.LoadStopWords(stopWordsPath, normalizer)
	if err != nil {
		return Resources{}, err
	}
	return Resources{
		Normalizer: normalizer,
		Tokenizer:  textproc.WordTokenizer{},
		StopWords:  stopWords,
	}, nil
}

// ChatStatistics extracts and renders word statistics for one export.
type ChatStatistics struct {
	export *chat.Export
	res    Resources
}

// New wraps an already loaded export.
func New(export *chat.Export, res Resources) (*ChatStatistics, error) {
	if export == nil {
		return nil, errors.New("chat export is required")
	}
	if res.Normalizer == nil || res.Tokenizer == nil {
		return nil, errors.New("normalizer and tokenizer are required")
	}
	return &ChatStatistics{export: export, res: res}, nil
}

// Open loads the export at jsonPath.
func Open(jsonPath string, res Resources) (*ChatStatistics, error) {
	export, err := chat.Load(jsonPath)
	if err != nil {
		return nil, err
	}
	return New(export, res)
}

// ExtractText returns the filtered tokens of every string message, in file
// order. Each message contributes its tokens joined by single spaces plus one
// trailing space; messages without string text contribute nothing.
func (c *ChatStatistics) ExtractText() string {
	slog.Info("extract_text", "messages", len(c.export.Messages))

	var b strings.Builder
	for _, msg := range c.export.Messages {
		text, ok := msg.Text.String()
		if !ok {
			continue
		}
		tokens := c.res.Tokenizer.Tokenize(c.res.Normalizer.Normalize(text))
		kept := tokens[:0]
		for _, token := range tokens {
			if !c.res.StopWords.Contains(token) {
				kept = append(kept, token)
			}
		}
		b.WriteString(strings.Join(kept, " "))
		b.WriteByte(' ')
	}
	return b.String()
}

// TopWords returns the n most frequent extracted words. n <= 0 returns all.
func (c *ChatStatistics) TopWords(n int) []wordcloud.WordCount {
	counts := wordcloud.ProcessText(c.ExtractText(), 1)
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// GenerateWordCloud renders the extracted text with opts and writes
// outputDir/result.png. It returns the written path.
func (c *ChatStatistics) GenerateWordCloud(outputDir string, opts wordcloud.Options) (string, error) {
	renderer, err := wordcloud.New(opts)
	if err != nil {
		return "", err
	}
	return c.GenerateWordCloudWith(outputDir, renderer)
}

// GenerateWordCloudWith is GenerateWordCloud with a preloaded renderer.
func (c *ChatStatistics) GenerateWordCloudWith(outputDir string, renderer *wordcloud.Renderer) (string, error) {
	text := c.ExtractText()

	slog.Info("generate_word_cloud")
	cloud, err := renderer.Generate(text)
	if err != nil {
		return "", fmt.Errorf("failed to generate word cloud: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, ResultFile)
	slog.Info("save_word_cloud", "path", path)
	if err := cloud.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
