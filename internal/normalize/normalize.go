// Package normalize flattens a record's content payload into plain text.
package normalize

import (
	"fmt"
	"strings"

	"github.com/joshkornreich/secular-extract/internal/event"
)

// ToolMarkerPrefix opens the synthetic marker emitted for assistant tool
// invocations. The quality filter matches on this exact substring.
const ToolMarkerPrefix = "[TOOL:"

// Text converts one payload into training text for the given role. Pure:
// same inputs always yield the same string, and an empty string means the
// record contributes nothing to its thread.
func Text(p event.Payload, role string) string {
	switch role {
	case "user":
		return userText(p)
	case "assistant":
		return assistantText(p)
	}
	return ""
}

func userText(p event.Payload) string {
	switch p.Kind {
	case event.PayloadPlain:
		return p.Text
	case event.PayloadSegments:
		var texts []string
		for _, seg := range p.Segments {
			if seg.Kind == event.SegmentText {
				texts = append(texts, seg.Text)
			}
		}
		return strings.Join(texts, "\n")
	}
	return ""
}

func assistantText(p event.Payload) string {
	if p.Kind != event.PayloadSegments {
		return ""
	}

	var texts []string
	var toolUses []string
	for _, seg := range p.Segments {
		switch seg.Kind {
		case event.SegmentText:
			texts = append(texts, seg.Text)
		case event.SegmentTool:
			toolUses = append(toolUses, fmt.Sprintf("%s %s]", ToolMarkerPrefix, seg.Tool))
		}
	}

	response := strings.Join(texts, "\n")
	if len(toolUses) > 0 {
		response += "\n" + strings.Join(toolUses, "\n")
	}

	return strings.TrimSpace(response)
}
