// Package chat decodes exported chat-log archives.
//
// The export format is the JSON produced by Telegram Desktop's "Export chat
// history" feature: a top-level object with a "messages" array. Only the
// "text" field of each message is interpreted; everything else is carried
// along for logging.
package chat

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Export is a parsed chat export.
type Export struct {
	Name     string    `json:"name,omitempty"`
	Type     string    `json:"type,omitempty"`
	ID       int64     `json:"id,omitempty"`
	Messages []Message `json:"messages"`
}

// Load reads and parses the export at path.
func Load(path string) (*Export, error) {
	slog.Debug("chat_export_load", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat export: %w", err)
	}
	defer f.Close()

	export, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chat export %s: %w", path, err)
	}

	slog.Info("chat_export_loaded",
		"path", path,
		"name", export.Name,
		"messages", len(export.Messages),
		"text_messages", export.CountText())
	return export, nil
}

// Decode parses an export from r.
func Decode(r io.Reader) (*Export, error) {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, err
	}
	return &export, nil
}

// CountText returns how many messages carry a string text.
func (e *Export) CountText() int {
	n := 0
	for _, msg := range e.Messages {
		if _, ok := msg.Text.String(); ok {
			n++
		}
	}
	return n
}
