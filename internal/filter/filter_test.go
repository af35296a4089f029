package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshkornreich/secular-extract/internal/thread"
)

func makeThread(messages ...thread.Message) thread.Thread {
	return thread.Thread{SessionKey: "s1", Messages: messages}
}

func user(content string) thread.Message {
	return thread.Message{Role: "user", Content: content}
}

func assistant(content string) thread.Message {
	return thread.Message{Role: "assistant", Content: content}
}

// longReasoning is comfortably past the 200-char bar and contains "because".
var longReasoning = strings.Repeat("inspecting the call site ", 10) +
	"because the nil check was missing."

func TestKeepRequiresMinTokens(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 1000

	th := makeThread(user("short question"), assistant(longReasoning))
	if Keep(th, cfg) {
		t.Error("thread below token threshold was kept")
	}

	cfg.MinTokens = 5
	if !Keep(th, cfg) {
		t.Error("thread above token threshold was dropped")
	}
}

func TestKeepOnToolMarker(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 1

	th := makeThread(user("run it"), assistant("[TOOL: Bash]"))
	if !Keep(th, cfg) {
		t.Error("thread with tool marker was dropped")
	}
}

func TestToolMarkerOnUserMessageDoesNotCount(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 1

	th := makeThread(user("what does [TOOL: Bash] mean"), assistant("short"))
	if Keep(th, cfg) {
		t.Error("tool marker in user text counted as agentic signal")
	}
}

func TestKeepOnReasoningSignal(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 1

	if !Keep(makeThread(assistant(longReasoning)), cfg) {
		t.Error("long reasoning message was dropped")
	}

	// Phrase present but message too short.
	if Keep(makeThread(assistant("because reasons")), cfg) {
		t.Error("short message passed the reasoning heuristic")
	}

	// Long enough but no phrase.
	noise := strings.Repeat("zzzz ", 60)
	if Keep(makeThread(assistant(noise)), cfg) {
		t.Error("long phrase-free message passed the reasoning heuristic")
	}
}

func TestReasoningMatchIsCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 1

	content := strings.Repeat("pad ", 60) + "HOWEVER the index was stale."
	if !Keep(makeThread(assistant(content)), cfg) {
		t.Error("uppercase phrase not matched")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 1

	threads := []thread.Thread{
		makeThread(user("a"), assistant("[TOOL: Read]")),
		makeThread(user("b"), assistant("nothing agentic")),
		makeThread(user("c"), assistant("[TOOL: Bash]")),
	}

	kept := Apply(threads, cfg)
	if len(kept) != 2 {
		t.Fatalf("kept %d threads, want 2", len(kept))
	}
	if kept[0].Messages[0].Content != "a" || kept[1].Messages[0].Content != "c" {
		t.Error("kept threads out of order")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.yaml")
	content := "min_tokens: 10\nreasoning_phrases: [\"therefore\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MinTokens != 10 {
		t.Errorf("min_tokens = %d, want 10", cfg.MinTokens)
	}
	if cfg.MinTurns != 3 || cfg.ReasoningMinChars != 200 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
	if len(cfg.ReasoningPhrases) != 1 || cfg.ReasoningPhrases[0] != "therefore" {
		t.Errorf("phrase set = %v", cfg.ReasoningPhrases)
	}
}

func TestLoadRejectsNegativeThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.yaml")
	if err := os.WriteFile(path, []byte("min_turns: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
