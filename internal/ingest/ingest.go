// Package ingest streams a newline-delimited session export into memory,
// partitioned by session key.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshkornreich/secular-extract/internal/event"
)

const (
	initialLineBuf = 64 * 1024
	// Tool outputs are embedded inline and can run to megabytes.
	maxLineBytes = 64 * 1024 * 1024
)

// Stats carries aggregate ingestion counters. Malformed lines are counted,
// never logged individually.
type Stats struct {
	Lines    int // lines scanned, empty ones included
	Records  int // lines that decoded into an Event
	Skipped  int // non-empty lines that failed to decode
	Sessions int
}

// Load reads the export at path and groups decoded events by session key,
// preserving input order within each session. A line that fails to decode
// is skipped; an unreadable file is an error before any event is kept.
func Load(path string) (map[string][]event.Event, Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, initialLineBuf), maxLineBytes)

	sessions := make(map[string][]event.Event)
	var stats Stats

	for scanner.Scan() {
		stats.Lines++

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev event.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			stats.Skipped++
			continue
		}

		sessions[ev.SessionKey] = append(sessions[ev.SessionKey], ev)
		stats.Records++
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading input: %w", err)
	}

	stats.Sessions = len(sessions)
	return sessions, stats, nil
}
