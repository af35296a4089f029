// Package event defines the decoded form of one line of a session export.
package event

import "encoding/json"

// UnknownSession is the sentinel key for records carrying no sessionId.
const UnknownSession = "unknown"

// Event is a single turn-fragment decoded from the export. Events are
// immutable after decoding and belong to exactly one session.
type Event struct {
	UUID       string
	ParentUUID string
	SessionKey string
	Role       string
	Timestamp  string
	Payload    Payload
	// ToolResult carries the export's toolUseResult blob. Decoded so the
	// field round-trips, not consumed by extraction yet.
	ToolResult map[string]interface{}
}

// wireEvent mirrors the export's field names. Unrecognized fields are
// dropped by encoding/json.
type wireEvent struct {
	UUID       string                 `json:"uuid"`
	ParentUUID string                 `json:"parentUuid"`
	SessionID  string                 `json:"sessionId"`
	Type       string                 `json:"type"`
	Timestamp  string                 `json:"timestamp"`
	Message    json.RawMessage        `json:"message"`
	ToolResult map[string]interface{} `json:"toolUseResult,omitempty"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	key := w.SessionID
	if key == "" {
		key = UnknownSession
	}

	*e = Event{
		UUID:       w.UUID,
		ParentUUID: w.ParentUUID,
		SessionKey: key,
		Role:       w.Type,
		Timestamp:  w.Timestamp,
		Payload:    decodePayload(w.Message),
		ToolResult: w.ToolResult,
	}
	return nil
}
