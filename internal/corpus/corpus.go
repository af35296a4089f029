// Package corpus serializes retained threads as one training record per
// output line.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshkornreich/secular-extract/internal/thread"
)

// Message is one role/content pair of a training record.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TrainingRecord is the serialized unit of output: the ordered messages of
// one retained thread.
type TrainingRecord struct {
	Messages []Message `json:"messages"`
}

// Stats summarizes one completed write.
type Stats struct {
	Records  int
	Messages int
	Bytes    int64
}

// FromThread maps a thread to its training record, order and roles preserved.
func FromThread(t thread.Thread) TrainingRecord {
	messages := make([]Message, len(t.Messages))
	for i, m := range t.Messages {
		messages[i] = Message{Role: m.Role, Content: m.Content}
	}
	return TrainingRecord{Messages: messages}
}

// Write streams every thread to path as JSONL. Records are serialized one
// at a time; the full corpus is never marshaled in memory. On any failure
// the partial file is removed so an aborted run cannot be mistaken for a
// complete one.
func Write(path string, threads []thread.Thread) (Stats, error) {
	file, err := os.Create(path)
	if err != nil {
		return Stats{}, fmt.Errorf("creating output: %w", err)
	}

	writer := bufio.NewWriter(file)
	var stats Stats

	for _, t := range threads {
		record := FromThread(t)
		data, err := json.Marshal(record)
		if err != nil {
			return abort(file, path, fmt.Errorf("encoding record: %w", err))
		}
		if _, err := writer.Write(data); err != nil {
			return abort(file, path, fmt.Errorf("writing output: %w", err))
		}
		if err := writer.WriteByte('\n'); err != nil {
			return abort(file, path, fmt.Errorf("writing output: %w", err))
		}
		stats.Records++
		stats.Messages += len(record.Messages)
	}

	if err := writer.Flush(); err != nil {
		return abort(file, path, fmt.Errorf("flushing output: %w", err))
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return Stats{}, fmt.Errorf("closing output: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Stats{}, fmt.Errorf("sizing output: %w", err)
	}
	stats.Bytes = info.Size()

	return stats, nil
}

func abort(file *os.File, path string, err error) (Stats, error) {
	file.Close()
	os.Remove(path)
	return Stats{}, err
}
