package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshkornreich/secular-extract/internal/color"
	"github.com/joshkornreich/secular-extract/internal/event"
	"github.com/joshkornreich/secular-extract/internal/ingest"
	"github.com/joshkornreich/secular-extract/internal/thread"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <input.jsonl>",
	Short: color.C("Inspect an export without writing a corpus"),
	Long: color.C(`Load a session export, reconstruct its threads, and report what an
extraction run would find. Writes nothing.`),
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	start := time.Now()
	sessions, istats, err := ingest.Load(inputPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputPath, err)
	}

	// min-turns 1 so the distribution covers every non-empty thread.
	threads := thread.Reconstruct(sessions, 1)

	fmt.Println(color.ColorizeSection("headerbold", "📊 EXPORT STATS"))
	fmt.Printf("  Lines:     %s\n", color.CL(humanize.Comma(int64(istats.Lines))))
	fmt.Printf("  Records:   %s\n", color.CL(humanize.Comma(int64(istats.Records))))
	fmt.Printf("  Malformed: %s\n", color.CL(humanize.Comma(int64(istats.Skipped))))
	fmt.Printf("  Sessions:  %s\n", color.CL(humanize.Comma(int64(istats.Sessions))))
	fmt.Printf("  Threads:   %s\n", color.CL(humanize.Comma(int64(len(threads)))))

	printLengthDistribution(threads)

	if verboseFlag {
		printSessionDetail(sessions)
	}

	progress("Inspected in %v", time.Since(start))
	return nil
}

func printLengthDistribution(threads []thread.Thread) {
	buckets := []struct {
		label    string
		min, max int
	}{
		{"1-2 turns", 1, 2},
		{"3-5 turns", 3, 5},
		{"6-10 turns", 6, 10},
		{"11+ turns", 11, 1 << 30},
	}

	fmt.Println(color.ColorizeSection("headerbold", "🧵 THREAD LENGTHS:"))
	for _, b := range buckets {
		count := 0
		for _, t := range threads {
			if n := len(t.Messages); n >= b.min && n <= b.max {
				count++
			}
		}
		fmt.Printf("  %s %s\n",
			color.ColorizeSection("cyanlight", fmt.Sprintf("%-12s", b.label)),
			color.C(humanize.Comma(int64(count))))
	}
}

func printSessionDetail(sessions map[string][]event.Event) {
	keys := make([]string, 0, len(sessions))
	for key := range sessions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(sessions[keys[i]]) != len(sessions[keys[j]]) {
			return len(sessions[keys[i]]) > len(sessions[keys[j]])
		}
		return keys[i] < keys[j]
	})

	fmt.Println(color.ColorizeSection("headerbold", "📦 LARGEST SESSIONS:"))
	for i, key := range keys {
		if i >= 10 {
			break
		}
		fmt.Printf("  %s %s events\n",
			color.ColorizeSection("cyanlight", fmt.Sprintf("%-40s", key)),
			color.C(humanize.Comma(int64(len(sessions[key])))))
	}
}
