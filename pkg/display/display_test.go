package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"chat_stats/pkg/wordcloud"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/mattn/go-runewidth"
)

func TestDone(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf).Done(); err != nil {
		t.Fatalf("Done() error: %v", err)
	}
	if got := buf.String(); got != "done!\n" {
		t.Errorf("Expected %q, got %q", "done!\n", got)
	}
}

func TestTopWords_Golden(t *testing.T) {
	var buf bytes.Buffer
	words := []wordcloud.WordCount{
		{Word: "gopher", Count: 12},
		{Word: "go", Count: 3},
	}
	if err := NewPlain(&buf).TopWords(words); err != nil {
		t.Fatalf("TopWords() error: %v", err)
	}
	golden.RequireEqual(t, buf.Bytes())
}

func TestTopWords_StyledMatchesPlain(t *testing.T) {
	words := []wordcloud.WordCount{
		{Word: "gopher", Count: 12},
		{Word: "go", Count: 3},
	}

	var plain, styled bytes.Buffer
	if err := NewPlain(&plain).TopWords(words); err != nil {
		t.Fatalf("TopWords() error: %v", err)
	}
	p := &Printer{out: &styled, styled: true}
	if err := p.TopWords(words); err != nil {
		t.Fatalf("TopWords() error: %v", err)
	}

	if !strings.Contains(styled.String(), "\x1b[") {
		t.Fatalf("Expected styled output to contain escape sequences, got %q", styled.String())
	}
	if got := ansi.Strip(styled.String()); got != plain.String() {
		t.Errorf("Stripped styled output differs:\n%q\n%q", got, plain.String())
	}
}

func TestTopWords_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPlain(&buf).TopWords(nil); err != nil {
		t.Fatalf("TopWords() error: %v", err)
	}
	if got := buf.String(); got != "no words\n" {
		t.Errorf("Expected %q, got %q", "no words\n", got)
	}
}

func TestTopWordsTable_WideRunes(t *testing.T) {
	words := []wordcloud.WordCount{
		{Word: "سلام", Count: 2},
		{Word: "世界", Count: 1},
	}
	lines := TopWordsTable(words)
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}

	// Both rows pad to the same display width.
	want := len("| 1 | ") + 4 + len(" |     2 |")
	for _, line := range lines[2:] {
		if w := runewidth.StringWidth(line); w != want {
			t.Errorf("Line %q has width %d, want %d", line, w, want)
		}
	}
}

func TestTopWordsTable_TruncatesLongWords(t *testing.T) {
	long := strings.Repeat("x", 50)
	lines := TopWordsTable([]wordcloud.WordCount{{Word: long, Count: 1}})
	if strings.Contains(lines[2], long) {
		t.Error("Expected long word to be truncated")
	}
	if !strings.Contains(lines[2], "...") {
		t.Errorf("Expected ellipsis in %q", lines[2])
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlain(&buf)
	p.Error(nil)
	p.Error(errors.New("font missing"))
	if got := buf.String(); got != "Error: font missing\n" {
		t.Errorf("Unexpected error output %q", got)
	}
}

func TestCopyPath(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{out: &buf, styled: true}
	if err := p.CopyPath("data/result.png"); err != nil {
		t.Fatalf("CopyPath() error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;c;") {
		t.Errorf("Expected OSC 52 sequence, got %q", out)
	}
	// base64("data/result.png")
	if !strings.Contains(out, "ZGF0YS9yZXN1bHQucG5n") {
		t.Errorf("Expected encoded path in %q", out)
	}
}

func TestCopyPath_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf).CopyPath("data/result.png"); err != nil {
		t.Fatalf("CopyPath() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output off a terminal, got %q", buf.String())
	}
}
