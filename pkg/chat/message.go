package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TextKind describes the shape of a message's "text" value.
type TextKind int

const (
	// TextAbsent means the message had no "text" key.
	TextAbsent TextKind = iota
	// TextString means "text" held a JSON string.
	TextString
	// TextOther means "text" held any other JSON value (number, null, array, ...).
	TextOther
)

func (k TextKind) String() string {
	switch k {
	case TextAbsent:
		return "absent"
	case TextString:
		return "string"
	case TextOther:
		return "other"
	default:
		return fmt.Sprintf("TextKind(%d)", int(k))
	}
}

// Text is the variant value of a message's "text" field.
// The zero value is TextAbsent.
type Text struct {
	kind  TextKind
	value string
	raw   json.RawMessage
}

// StringText builds a Text holding s.
func StringText(s string) Text {
	return Text{kind: TextString, value: s}
}

// Kind reports which variant t holds.
func (t Text) Kind() TextKind {
	return t.kind
}

// String returns the text and true only when the field was present and a JSON string.
func (t Text) String() (string, bool) {
	if t.kind != TextString {
		return "", false
	}
	return t.value, true
}

// Raw returns the undecoded JSON for TextOther values.
func (t Text) Raw() json.RawMessage {
	return t.raw
}

// UnmarshalJSON records the variant. It never fails on a non-string value.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("failed to decode text: %w", err)
		}
		*t = Text{kind: TextString, value: s}
		return nil
	}
	*t = Text{kind: TextOther, raw: append(json.RawMessage(nil), trimmed...)}
	return nil
}

// MarshalJSON writes the value back in its original shape.
func (t Text) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case TextString:
		return json.Marshal(t.value)
	case TextOther:
		if len(t.raw) == 0 {
			return []byte("null"), nil
		}
		return t.raw, nil
	default:
		return []byte("null"), nil
	}
}

// Message is a single record of the export. Only Text takes part in processing.
type Message struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Date string `json:"date"`
	From string `json:"from"`
	Text Text   `json:"text"`
}
