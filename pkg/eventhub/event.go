package eventhub

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Kind tells how an Event is turned into text.
type Kind uint8

const (
	// KindRaw events are pre-formatted text sent as is.
	KindRaw Kind = iota
	// KindStructured events are encoded as compact JSON.
	KindStructured
)

// Event is a value published to a tenant channel. It is either raw text or a
// structured value; use Raw or Structured to build one. The zero Event is an
// empty raw event.
type Event struct {
	kind  Kind
	text  string
	value any
}

// Raw returns an event carrying pre-formatted text.
func Raw(text string) Event {
	return Event{kind: KindRaw, text: text}
}

// Structured returns an event carrying a value that is JSON-encoded at publish time.
func Structured(v any) Event {
	return Event{kind: KindStructured, value: v}
}

// Kind reports the event variant.
func (e Event) Kind() Kind { return e.kind }

// Encode resolves the event to the bytes that are placed in the frame payload.
func (e Event) Encode() ([]byte, error) {
	if e.kind == KindRaw {
		return []byte(e.text), nil
	}
	b, err := json.Marshal(e.value)
	if err != nil {
		return nil, errors.Join(ErrEncodeEvent, err)
	}
	return b, nil
}

const (
	dataField  = "data: "
	eventField = "event: "
	idField    = "id: "
)

// Frame builds a single event-stream frame carrying payload as its data.
func Frame(payload []byte) []byte {
	return FrameWithFields("", "", payload)
}

// FrameWithFields builds an event-stream frame with optional event name and id.
// Multi-line payloads are split into one data line per payload line so any
// standard EventSource client reassembles the original text.
func FrameWithFields(event, id string, payload []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(payload) + len(dataField) + 2)

	if event != "" {
		b.WriteString(eventField)
		b.WriteString(singleLine(event))
		b.WriteByte('\n')
	}
	if id != "" {
		b.WriteString(idField)
		b.WriteString(singleLine(id))
		b.WriteByte('\n')
	}

	payload = bytes.ReplaceAll(payload, []byte("\r\n"), []byte("\n"))
	payload = bytes.ReplaceAll(payload, []byte("\r"), []byte("\n"))
	for line := range bytes.SplitSeq(payload, []byte("\n")) {
		b.WriteString(dataField)
		b.Write(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	return b.Bytes()
}

// Comment builds a comment frame. Clients ignore it; it keeps idle
// connections from being closed by intermediaries.
func Comment(text string) []byte {
	return []byte(": " + singleLine(text) + "\n\n")
}

func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}
