package cmd

import (
	"fmt"
	"os"

	"github.com/joshkornreich/secular-extract/internal/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	verboseFlag bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "secular-extract",
	Short: color.C("🧵 Turn session exports into training corpora"),
	Long: color.C(`🧵 SECULAR EXTRACT - Session Export → Training Corpus

Reconstructs conversation threads from a flat JSONL session export and
keeps the ones that show real agentic work.

📥 INGESTION:
   • Streaming line-by-line decoding - exports of any size
   • Malformed lines skipped, counted, never fatal
   • Sessions partitioned by session key

🧵 RECONSTRUCTION:
   • Parent-pointer chains walked from every root
   • Cycle-safe - corrupt exports cannot hang a run
   • One thread per root, first-found branch on edits

🔎 QUALITY FILTER:
   • Token floor plus tool-use / reasoning heuristics
   • Thresholds and phrase set tunable via yaml

📤 OUTPUT:
   • One training record per line, streamed to disk
   • Size, reduction ratio, and per-stage timing report`),
	Version: "1.0.0",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.Fail("Error:"), color.C(err.Error()))
		os.Exit(1)
	}
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add global flags
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")

	// Custom help command with full cyan styling
	helpCmd := &cobra.Command{
		Use:   "help [command]",
		Short: color.C("Help about any command"),
		Long: color.C(`Help provides help for any command in the application.
Simply type secular-extract help [command] for full details.`),
		Run: func(cmd *cobra.Command, args []string) {
			showColoredHelp(rootCmd)
		},
	}

	rootCmd.SetHelpCommand(helpCmd)

	// Override help function for all commands
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		showColoredHelp(cmd)
	})

	initCommands()
}

// showColoredHelp displays custom help with full cyan styling
func showColoredHelp(cmd *cobra.Command) {
	// Show the long description
	if cmd.Long != "" {
		fmt.Println(cmd.Long)
	} else if cmd.Short != "" {
		fmt.Println(cmd.Short)
	}
	fmt.Println()

	// Show usage
	fmt.Printf("%s\n  %s\n  %s\n\n",
		color.ColorizeSection("headerbold", "Usage:"),
		color.C(cmd.CommandPath()+" [flags]"),
		color.C(cmd.CommandPath()+" [command]"))

	if !cmd.HasAvailableSubCommands() {
		showFlags(cmd)
		return
	}

	fmt.Println(color.ColorizeSection("headerbold", "🧵 EXTRACT COMMANDS:"))
	fmt.Println()

	// Define command groups
	groups := []struct {
		title    string
		commands []string
	}{
		{
			title:    "📦 CORPUS OPERATIONS:",
			commands: []string{"extract"},
		},
		{
			title:    "🔍 INSPECTION:",
			commands: []string{"stats"},
		},
	}

	// Display each group
	for _, group := range groups {
		fmt.Printf("  %s\n", color.ColorizeSection("ocean", group.title))

		for _, cmdName := range group.commands {
			if subcmd, _, _ := cmd.Find([]string{cmdName}); subcmd != nil && subcmd != cmd && subcmd.IsAvailableCommand() {
				fmt.Printf("    %s%s\n",
					color.ColorizeSection("cyanlight", fmt.Sprintf("%-20s", cmdName)),
					color.C(subcmd.Short))
			}
		}
		fmt.Println()
	}

	// Show help command separately
	fmt.Printf("  %s\n", color.ColorizeSection("ocean", "ℹ️  HELP & INFORMATION:"))
	fmt.Printf("    %s%s\n\n",
		color.ColorizeSection("cyanlight", fmt.Sprintf("%-20s", "help")),
		color.C("Help about any command"))

	showFlags(cmd)

	fmt.Printf("\n%s\n",
		color.ColorizeSection("emphasis",
			"Use \"secular-extract [command] --help\" for more information about a command."))
}

// showFlags displays flags in cyan
func showFlags(cmd *cobra.Command) {
	if cmd.HasAvailableLocalFlags() {
		fmt.Printf("%s\n", color.ColorizeSection("headerbold", "🎛️  FLAGS:"))
		flags := cmd.LocalFlags()
		flags.VisitAll(func(flag *pflag.Flag) {
			if !flag.Hidden {
				flagStr := fmt.Sprintf("  --%s", flag.Name)
				if flag.Shorthand != "" {
					flagStr = fmt.Sprintf("  -%s, --%s", flag.Shorthand, flag.Name)
				}
				fmt.Printf("%s%s\n",
					color.ColorizeSection("cyanlight", fmt.Sprintf("%-25s", flagStr)),
					color.C(flag.Usage))
			}
		})
	}

	if cmd.HasAvailableInheritedFlags() {
		fmt.Printf("\n%s\n", color.ColorizeSection("headerbold", "🌐 GLOBAL FLAGS:"))
		flags := cmd.InheritedFlags()
		flags.VisitAll(func(flag *pflag.Flag) {
			if !flag.Hidden {
				flagStr := fmt.Sprintf("  --%s", flag.Name)
				if flag.Shorthand != "" {
					flagStr = fmt.Sprintf("  -%s, --%s", flag.Shorthand, flag.Name)
				}
				fmt.Printf("%s%s\n",
					color.ColorizeSection("cyanlight", fmt.Sprintf("%-25s", flagStr)),
					color.C(flag.Usage))
			}
		})
	}
}

// initCommands initializes all subcommands
func initCommands() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(statsCmd)
}

// progress prints a cyan status line unless --quiet is set.
func progress(format string, a ...interface{}) {
	if quietFlag {
		return
	}
	fmt.Println(color.C(fmt.Sprintf(format, a...)))
}

// verbose prints extra detail only with --verbose.
func verbose(format string, a ...interface{}) {
	if !verboseFlag || quietFlag {
		return
	}
	fmt.Println(color.CL(fmt.Sprintf(format, a...)))
}
