// Package filter scores reconstructed threads and keeps the ones that look
// like substantive agentic work.
package filter

import (
	"strings"

	"github.com/joshkornreich/secular-extract/internal/normalize"
	"github.com/joshkornreich/secular-extract/internal/thread"
)

// Keep reports whether a thread survives the quality heuristics: enough
// whitespace-delimited tokens overall, and at least one assistant message
// that either invoked a tool or reads like multi-step reasoning. It is a
// heuristic - false positives and negatives are expected and acceptable.
func Keep(t thread.Thread, cfg Config) bool {
	totalTokens := 0
	for _, msg := range t.Messages {
		totalTokens += len(strings.Fields(msg.Content))
	}
	if totalTokens < cfg.MinTokens {
		return false
	}

	for _, msg := range t.Messages {
		if msg.Role != "assistant" {
			continue
		}

		if strings.Contains(msg.Content, normalize.ToolMarkerPrefix) {
			return true
		}

		if len(msg.Content) > cfg.ReasoningMinChars {
			lower := strings.ToLower(msg.Content)
			for _, phrase := range cfg.ReasoningPhrases {
				if strings.Contains(lower, phrase) {
					return true
				}
			}
		}
	}

	return false
}

// Apply returns the threads that pass Keep, preserving order.
func Apply(threads []thread.Thread, cfg Config) []thread.Thread {
	var kept []thread.Thread
	for _, t := range threads {
		if Keep(t, cfg) {
			kept = append(kept, t)
		}
	}
	return kept
}
