package filter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the extraction thresholds and the reasoning phrase set.
// Everything here is tunable from a yaml file; the defaults are a starting
// point, not law.
type Config struct {
	// MinTurns is the minimum message count for a reconstructed thread.
	MinTurns int `yaml:"min_turns"`
	// MinTokens is the minimum whitespace-delimited token total per thread.
	MinTokens int `yaml:"min_tokens"`
	// ReasoningMinChars is how long an assistant message must be before
	// the phrase heuristic applies to it.
	ReasoningMinChars int `yaml:"reasoning_min_chars"`
	// ReasoningPhrases mark multi-step reasoning when any appears
	// (case-insensitive) in a long assistant message.
	ReasoningPhrases []string `yaml:"reasoning_phrases"`
}

// Default returns the thresholds the tool ships with.
func Default() Config {
	return Config{
		MinTurns:          3,
		MinTokens:         50,
		ReasoningMinChars: 200,
		ReasoningPhrases: []string{
			"let me", "first", "then", "next", "because", "however",
			"consider", "alternatively", "analysis", "approach",
		},
	}
}

// Load overlays the yaml file at path onto Default, so a config file only
// needs the keys it changes.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading filter config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing filter config: %w", err)
	}

	if cfg.MinTurns < 0 || cfg.MinTokens < 0 || cfg.ReasoningMinChars < 0 {
		return Config{}, fmt.Errorf("filter config: thresholds must not be negative")
	}
	return cfg, nil
}
