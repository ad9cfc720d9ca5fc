// Package message decodes GKE cluster notifications delivered by Cloud
// Pub/Sub push subscriptions and renders them for logging and chat delivery.
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// PushRequest is the JSON body of a Pub/Sub push delivery.
type PushRequest struct {
	Message      Message `json:"message"`
	Subscription string  `json:"subscription"`
}

// Message is one decoded cluster notification. It is immutable after decode
// except for the WithProjectName overlay.
type Message struct {
	Attributes  Attributes
	MessageID   string
	PublishTime string

	// Data is the UTF-8 text recovered from the envelope's base64 body.
	Data string
}

// UnmarshalJSON decodes the message envelope. Absent attributes or data
// default rather than fail, so a malformed notification still produces a
// loggable message; a body that is not valid base64-encoded UTF-8 is the one
// wire-format violation that aborts the decode. Pub/Sub push delivers
// camelCase metadata keys, older fixtures use snake_case; both are accepted.
func (m *Message) UnmarshalJSON(b []byte) error {
	var wire struct {
		Attributes       *Attributes `json:"attributes"`
		MessageID        string      `json:"messageId"`
		MessageIDSnake   string      `json:"message_id"`
		PublishTime      string      `json:"publishTime"`
		PublishTimeSnake string      `json:"publish_time"`
		Data             string      `json:"data"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	decoded := Message{
		MessageID:   firstNonEmpty(wire.MessageID, wire.MessageIDSnake),
		PublishTime: firstNonEmpty(wire.PublishTime, wire.PublishTimeSnake),
	}
	if wire.Attributes != nil {
		decoded.Attributes = *wire.Attributes
	}
	if wire.Data != "" {
		raw, err := base64.StdEncoding.DecodeString(wire.Data)
		if err != nil {
			return fmt.Errorf("decode message data: %w", err)
		}
		if !utf8.Valid(raw) {
			return fmt.Errorf("message data is not valid UTF-8")
		}
		decoded.Data = string(raw)
	}

	*m = decoded
	return nil
}

// WithProjectName returns a copy of the message with the human-readable
// project name overlaid on its attributes. All other fields are unchanged.
func (m Message) WithProjectName(name string) Message {
	m.Attributes.ProjectName = name
	return m
}

// IsInvalid reports whether the message carries no renderable event: an
// unknown type_url or an empty payload.
func (m Message) IsInvalid() bool {
	_, err := m.Attributes.LogMessage()
	return err != nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
