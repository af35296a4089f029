package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshkornreich/secular-extract/internal/color"
	"github.com/joshkornreich/secular-extract/internal/corpus"
	"github.com/joshkornreich/secular-extract/internal/filter"
	"github.com/joshkornreich/secular-extract/internal/ingest"
	"github.com/joshkornreich/secular-extract/internal/thread"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <input.jsonl> <output.jsonl>",
	Short: color.C("Extract a training corpus from a session export"),
	Long: color.C(`Reconstruct conversation threads from a session export and write the
high-quality ones as training records, one JSON record per line.`),
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

var (
	extractMinTurns   int
	extractMinTokens  int
	extractConfigPath string
)

func init() {
	extractCmd.Flags().IntVar(&extractMinTurns, "min-turns", 3, "Minimum conversation turns per thread")
	extractCmd.Flags().IntVar(&extractMinTokens, "min-tokens", 50, "Minimum total tokens per thread")
	extractCmd.Flags().StringVarP(&extractConfigPath, "config", "c", "", "Yaml file with filter thresholds and phrase set")
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := loadFilterConfig(cmd)
	if err != nil {
		return err
	}

	// Measure the input up front: the reduction ratio is computed against
	// this, and a missing input fails before any work.
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	totalStart := time.Now()

	// Stage 1: ingest
	progress("Loading %s...", inputPath)
	loadStart := time.Now()
	sessions, istats, err := ingest.Load(inputPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputPath, err)
	}
	loadTime := time.Since(loadStart)
	progress("Loaded %s records from %s sessions in %v",
		humanize.Comma(int64(istats.Records)), humanize.Comma(int64(istats.Sessions)), loadTime)
	if istats.Skipped > 0 {
		verbose("Skipped %s malformed lines of %s total",
			humanize.Comma(int64(istats.Skipped)), humanize.Comma(int64(istats.Lines)))
	}

	// Stage 2: reconstruct threads
	reconStart := time.Now()
	threads := thread.Reconstruct(sessions, cfg.MinTurns)
	reconTime := time.Since(reconStart)
	progress("Reconstructed %s conversations in %v", humanize.Comma(int64(len(threads))), reconTime)

	// Stage 3: quality filter
	filterStart := time.Now()
	kept := filter.Apply(threads, cfg)
	filterTime := time.Since(filterStart)
	progress("Filtered to %s high-quality conversations in %v", humanize.Comma(int64(len(kept))), filterTime)

	// Stage 4: write corpus
	writeStart := time.Now()
	stats, err := corpus.Write(outputPath, kept)
	if err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	writeTime := time.Since(writeStart)

	printSummary(outputPath, inputInfo.Size(), stats, stageTimes{
		load:        loadTime,
		reconstruct: reconTime,
		filter:      filterTime,
		write:       writeTime,
		total:       time.Since(totalStart),
	})

	return nil
}

// loadFilterConfig resolves thresholds: defaults, then the yaml file if
// given, then explicit flags on top.
func loadFilterConfig(cmd *cobra.Command) (filter.Config, error) {
	cfg := filter.Default()

	if extractConfigPath != "" {
		loaded, err := filter.Load(extractConfigPath)
		if err != nil {
			return filter.Config{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("min-turns") {
		cfg.MinTurns = extractMinTurns
	}
	if cmd.Flags().Changed("min-tokens") {
		cfg.MinTokens = extractMinTokens
	}

	return cfg, nil
}

type stageTimes struct {
	load        time.Duration
	reconstruct time.Duration
	filter      time.Duration
	write       time.Duration
	total       time.Duration
}

func printSummary(outputPath string, inputBytes int64, stats corpus.Stats, times stageTimes) {
	if quietFlag {
		return
	}

	rule := strings.Repeat("=", 60)

	fmt.Println()
	fmt.Println(color.O(rule))
	fmt.Println(color.Success("Training data saved to: %s", outputPath))
	fmt.Println(color.O(rule))
	fmt.Printf("  Total conversations: %s\n", color.CL(humanize.Comma(int64(stats.Records))))
	fmt.Printf("  Total messages:      %s\n", color.CL(humanize.Comma(int64(stats.Messages))))
	fmt.Printf("  Output size:         %s\n", color.CL(humanize.Bytes(uint64(stats.Bytes))))
	fmt.Printf("  Input size:          %s\n", color.CL(humanize.Bytes(uint64(inputBytes))))
	fmt.Printf("  Reduction:           %s\n", color.CL(reductionRatio(inputBytes, stats.Bytes)))
	fmt.Println(color.O(rule))
	fmt.Printf("  Load:        %v\n", color.CD(times.load.String()))
	fmt.Printf("  Reconstruct: %v\n", color.CD(times.reconstruct.String()))
	fmt.Printf("  Filter:      %v\n", color.CD(times.filter.String()))
	fmt.Printf("  Write:       %v\n", color.CD(times.write.String()))
	fmt.Printf("  Total:       %v\n", color.CD(times.total.String()))
	fmt.Println(color.O(rule))
}

// reductionRatio reports how much smaller the corpus is than the measured
// input. Empty corpora have no meaningful ratio.
func reductionRatio(inputBytes, outputBytes int64) string {
	if outputBytes <= 0 {
		return "n/a (empty corpus)"
	}
	return fmt.Sprintf("%.1fx smaller", float64(inputBytes)/float64(outputBytes))
}
