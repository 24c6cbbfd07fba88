// Package display writes the command-line output of chat_stats: the
// completion line, the optional top-words table and error messages.
// Output is styled only when it goes to a terminal.
package display

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"chat_stats/pkg/wordcloud"

	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DoneMessage is printed once the word cloud is written.
const DoneMessage = "done!"

const maxWordWidth = 32

// Printer formats results for a writer
type Printer struct {
	out    io.Writer
	styled bool
}

// New creates a printer that styles its output when out is a terminal
func New(out io.Writer) *Printer {
	return &Printer{out: out, styled: isTerminal(out)}
}

// NewPlain creates a printer that never emits escape sequences
func NewPlain(out io.Writer) *Printer {
	return &Printer{out: out}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Done prints the completion line
func (p *Printer) Done() error {
	_, err := fmt.Fprintln(p.out, p.render(SuccessStyle, DoneMessage))
	return err
}

// Error prints err on its own line
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintln(p.out, p.render(ErrorStyle, "Error: "+err.Error()))
}

// TopWords prints a ranked table of the most frequent words
func (p *Printer) TopWords(words []wordcloud.WordCount) error {
	slog.Debug("display_top_words", "count", len(words))
	if len(words) == 0 {
		_, err := fmt.Fprintln(p.out, p.render(TextMutedStyle, "no words"))
		return err
	}

	for i, line := range TopWordsTable(words) {
		style := TextStyle
		switch i {
		case 0:
			style = TitleStyle
		case 1:
			style = TextMutedStyle
		}
		if _, err := fmt.Fprintln(p.out, p.render(style, line)); err != nil {
			return err
		}
	}
	return nil
}

// CopyPath places path on the terminal clipboard using OSC 52. It does
// nothing unless output goes to a terminal.
func (p *Printer) CopyPath(path string) error {
	if !p.styled {
		slog.Debug("copy_to_clipboard_skipped", "path", path, "reason", "not a terminal")
		return nil
	}
	slog.Info("copy_to_clipboard", "path", path)
	_, err := fmt.Fprint(p.out, osc52.New(path))
	return err
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return style.Render(text)
}

// TopWordsTable lays words out as plain table lines: a header, a separator
// and one row per word. Columns are aligned by display width.
func TopWordsTable(words []wordcloud.WordCount) []string {
	rows := make([][]string, 0, len(words)+1)
	rows = append(rows, []string{"#", "word", "count"})
	for i, wc := range words {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			runewidth.Truncate(wc.Word, maxWordWidth, "..."),
			strconv.Itoa(wc.Count),
		})
	}

	widths := make([]int, 3)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		lines = append(lines, buildTableLine(row, widths))
		if i == 0 {
			lines = append(lines, buildTableSeparator(widths))
		}
	}
	return lines
}

func buildTableLine(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range row {
		sb.WriteString(" ")
		// Numeric columns are right-aligned.
		if i == 1 {
			sb.WriteString(padRight(cell, widths[i]))
		} else {
			sb.WriteString(padLeft(cell, widths[i]))
		}
		sb.WriteString(" |")
	}
	return sb.String()
}

func buildTableSeparator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}
	return sb.String()
}

func padRight(text string, width int) string {
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

func padLeft(text string, width int) string {
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}
