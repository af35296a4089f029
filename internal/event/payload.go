package event

import "encoding/json"

// PayloadKind discriminates the shapes a record's message content takes.
type PayloadKind int

const (
	// PayloadInvalid marks content that is missing or has no known shape.
	PayloadInvalid PayloadKind = iota
	// PayloadPlain is a bare string content.
	PayloadPlain
	// PayloadSegments is an ordered list of typed content blocks.
	PayloadSegments
)

// Payload is the closed union of content shapes seen in exports. The shape
// is decided once at decode time so extraction never type-sniffs raw JSON.
type Payload struct {
	Kind     PayloadKind
	Text     string    // set when Kind == PayloadPlain
	Segments []Segment // set when Kind == PayloadSegments
}

// SegmentKind discriminates one block inside a segmented payload.
type SegmentKind int

const (
	// SegmentOther is any block kind extraction does not consume
	// (tool results, thinking, images, ...).
	SegmentOther SegmentKind = iota
	SegmentText
	SegmentTool
)

// Segment is one typed unit of a segmented payload.
type Segment struct {
	Kind SegmentKind
	Text string // set when Kind == SegmentText
	Tool string // set when Kind == SegmentTool
}

// wireBlock mirrors one content block of the export.
type wireBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Name string `json:"name,omitempty"`
}

// decodePayload classifies a record's message content. Anything that does
// not decode cleanly is PayloadInvalid, never an error: malformed content
// must not abort a run.
func decodePayload(message json.RawMessage) Payload {
	if len(message) == 0 {
		return Payload{}
	}

	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(message, &envelope); err != nil || len(envelope.Content) == 0 {
		return Payload{}
	}
	if string(envelope.Content) == "null" {
		return Payload{}
	}

	// Bare string content
	var text string
	if err := json.Unmarshal(envelope.Content, &text); err == nil {
		return Payload{Kind: PayloadPlain, Text: text}
	}

	// List of content blocks
	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(envelope.Content, &rawBlocks); err != nil {
		return Payload{}
	}

	segments := make([]Segment, 0, len(rawBlocks))
	for _, raw := range rawBlocks {
		var block wireBlock
		if err := json.Unmarshal(raw, &block); err != nil {
			segments = append(segments, Segment{Kind: SegmentOther})
			continue
		}

		switch block.Type {
		case "text":
			segments = append(segments, Segment{Kind: SegmentText, Text: block.Text})
		case "tool_use":
			segments = append(segments, Segment{Kind: SegmentTool, Tool: block.Name})
		default:
			segments = append(segments, Segment{Kind: SegmentOther})
		}
	}

	return Payload{Kind: PayloadSegments, Segments: segments}
}
