// Package thread rebuilds ordered conversation threads from the flat
// parent-pointer graph inside each session.
package thread

import (
	"sort"

	"github.com/joshkornreich/secular-extract/internal/event"
	"github.com/joshkornreich/secular-extract/internal/normalize"
)

// Message is one turn of a reconstructed thread.
type Message struct {
	Role      string
	Content   string
	UUID      string
	Timestamp string
}

// Thread is one logical conversation, root first.
type Thread struct {
	SessionKey string
	Messages   []Message
}

// Reconstruct walks every session independently and returns all threads of
// at least minTurns messages. Sessions are processed in sorted key order so
// identical input always yields identically ordered output.
func Reconstruct(sessions map[string][]event.Event, minTurns int) []Thread {
	keys := make([]string, 0, len(sessions))
	for key := range sessions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var threads []Thread
	for _, key := range keys {
		threads = append(threads, reconstructSession(key, sessions[key], minTurns)...)
	}
	return threads
}

// reconstructSession indexes one session's events, finds the roots, and
// follows each chain of parent pointers forward.
//
// When an event has multiple children (edited or re-run turns), the walk
// follows only the first child in input order. This tie-break is load-bearing:
// it decides which branch of an ambiguous history enters the corpus, so it is
// kept exactly as the extraction has always behaved. The children index below
// is built in input order precisely to preserve it.
func reconstructSession(key string, events []event.Event, minTurns int) []Thread {
	if len(events) == 0 {
		return nil
	}

	index := make(map[string]struct{}, len(events))
	for i := range events {
		index[events[i].UUID] = struct{}{}
	}

	children := make(map[string][]int)
	for i := range events {
		parent := events[i].ParentUUID
		if parent == "" {
			continue
		}
		children[parent] = append(children[parent], i)
	}

	var threads []Thread
	for i := range events {
		if !isRoot(&events[i], index) {
			continue
		}
		t := walk(key, events, children, i)
		if len(t.Messages) > 0 && len(t.Messages) >= minTurns {
			threads = append(threads, t)
		}
	}
	return threads
}

// isRoot reports whether an event starts a chain: no parent recorded, or a
// parent that never appears in this session.
func isRoot(ev *event.Event, index map[string]struct{}) bool {
	if ev.ParentUUID == "" {
		return true
	}
	_, ok := index[ev.ParentUUID]
	return !ok
}

// walk follows first-found children from the root, collecting non-empty
// normalized text. The visited set guarantees termination on cyclic parent
// chains in malformed exports.
func walk(key string, events []event.Event, children map[string][]int, root int) Thread {
	t := Thread{SessionKey: key}
	visited := make(map[string]bool)

	current := root
	for {
		ev := &events[current]
		if visited[ev.UUID] {
			break
		}
		visited[ev.UUID] = true

		if content := normalize.Text(ev.Payload, ev.Role); content != "" {
			t.Messages = append(t.Messages, Message{
				Role:      ev.Role,
				Content:   content,
				UUID:      ev.UUID,
				Timestamp: ev.Timestamp,
			})
		}

		next, ok := firstChild(children, ev.UUID)
		if !ok {
			break
		}
		current = next
	}

	return t
}

func firstChild(children map[string][]int, uuid string) (int, bool) {
	kids := children[uuid]
	if len(kids) == 0 {
		return 0, false
	}
	return kids[0], true
}
