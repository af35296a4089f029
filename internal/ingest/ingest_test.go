package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func record(uuid, parent, session string) string {
	line := fmt.Sprintf(`{"uuid":%q,"sessionId":%q,"type":"user","message":{"content":"hello from %s"}}`,
		uuid, session, uuid)
	if parent != "" {
		line = fmt.Sprintf(`{"uuid":%q,"parentUuid":%q,"sessionId":%q,"type":"user","message":{"content":"hello from %s"}}`,
			uuid, parent, session, uuid)
	}
	return line
}

func TestLoadPartitionsBySession(t *testing.T) {
	path := writeInput(t,
		record("a1", "", "s1"),
		record("b1", "", "s2"),
		record("a2", "a1", "s1"),
	)

	sessions, stats, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if stats.Records != 3 || stats.Sessions != 2 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if got := len(sessions["s1"]); got != 2 {
		t.Errorf("s1 has %d events, want 2", got)
	}
	if sessions["s1"][0].UUID != "a1" || sessions["s1"][1].UUID != "a2" {
		t.Error("input order not preserved within session")
	}
	if len(sessions["s2"]) != 1 {
		t.Errorf("s2 has %d events, want 1", len(sessions["s2"]))
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := writeInput(t,
		record("a1", "", "s1"),
		`{"uuid": truncated`,
		"not json at all",
		"",
		"   ",
		record("a2", "a1", "s1"),
	)

	sessions, stats, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if stats.Records != 2 {
		t.Errorf("records = %d, want 2", stats.Records)
	}
	if stats.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", stats.Skipped)
	}
	if len(sessions["s1"]) != 2 {
		t.Errorf("s1 has %d events, want 2", len(sessions["s1"]))
	}
}

func TestLoadMalformedLinesDoNotChangeResult(t *testing.T) {
	clean := writeInput(t, record("a1", "", "s1"), record("a2", "a1", "s1"))
	dirty := writeInput(t, record("a1", "", "s1"), "{{{{", record("a2", "a1", "s1"), "junk")

	cleanSessions, _, err := Load(clean)
	if err != nil {
		t.Fatal(err)
	}
	dirtySessions, _, err := Load(dirty)
	if err != nil {
		t.Fatal(err)
	}

	if len(cleanSessions["s1"]) != len(dirtySessions["s1"]) {
		t.Fatalf("event counts differ: %d vs %d", len(cleanSessions["s1"]), len(dirtySessions["s1"]))
	}
	for i := range cleanSessions["s1"] {
		if cleanSessions["s1"][i].UUID != dirtySessions["s1"][i].UUID {
			t.Errorf("event %d differs", i)
		}
	}
}

func TestLoadDefaultsMissingSessionKey(t *testing.T) {
	path := writeInput(t, `{"uuid":"a1","type":"user","message":{"content":"hi"}}`)

	sessions, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions["unknown"]) != 1 {
		t.Errorf("unknown session has %d events, want 1", len(sessions["unknown"]))
	}
}

func TestLoadHandlesOversizedLines(t *testing.T) {
	big := strings.Repeat("x", 2*1024*1024)
	path := writeInput(t,
		fmt.Sprintf(`{"uuid":"a1","sessionId":"s1","type":"user","message":{"content":%q}}`, big),
	)

	sessions, stats, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Records != 1 {
		t.Errorf("records = %d, want 1", stats.Records)
	}
	if got := sessions["s1"][0].Payload.Text; len(got) != len(big) {
		t.Errorf("payload length = %d, want %d", len(got), len(big))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatal("expected error for missing input")
	}
}
