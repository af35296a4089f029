package color

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	fcolor "github.com/fatih/color"
)

// Ocean/cyan palette shared with the wider Secular tooling.
var styles = map[string]lipgloss.Style{
	"header":     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	"headerbold": lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	"emphasis":   lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true),
	"text":       lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
	"textbold":   lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true),
	"cyan":       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	"cyanlight":  lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
	"cyandark":   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	"ocean":      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	"oceanlight": lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	"oceandark":  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
}

var (
	successStyle = fcolor.New(fcolor.FgGreen, fcolor.Bold)
	failStyle    = fcolor.New(fcolor.FgRed, fcolor.Bold)
)

// ColorizeSection applies section-specific coloring (all cyan variants)
func ColorizeSection(section, text string) string {
	if !SupportsColor() {
		return text
	}

	style, ok := styles[section]
	if !ok {
		style = styles["cyan"] // Default to cyan
	}
	return style.Render(text)
}

// Cyan formatting shortcuts
func C(text string) string {
	return ColorizeSection("cyan", text)
}

func CL(text string) string {
	return ColorizeSection("cyanlight", text)
}

func CD(text string) string {
	return ColorizeSection("cyandark", text)
}

func O(text string) string {
	return ColorizeSection("ocean", text)
}

func OL(text string) string {
	return ColorizeSection("oceanlight", text)
}

func OD(text string) string {
	return ColorizeSection("oceandark", text)
}

// Success formats a green check-marked status line.
func Success(format string, a ...interface{}) string {
	return successStyle.Sprint("✓ ") + C(fmt.Sprintf(format, a...))
}

// Fail formats a red error prefix for fatal messages.
func Fail(text string) string {
	return failStyle.Sprint(text)
}

// SupportsColor checks if the terminal supports color output
func SupportsColor() bool {
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if term == "xterm-256color" || term == "screen-256color" || term == "tmux-256color" ||
		term == "xterm" || term == "screen" || term == "tmux" {
		return true
	}

	if !isTerminal() {
		return false
	}

	return true
}

func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
