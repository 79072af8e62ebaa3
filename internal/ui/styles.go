package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Primary = lipgloss.Color("#6366F1") // Indigo accent
	Success = lipgloss.Color("#10B981") // Emerald
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

func PrintTitle(msg string) {
	fmt.Println(TitleStyle.Render(msg))
}

func PrintSuccess(msg string) {
	fmt.Println(SuccessStyle.Render("✓ ") + msg)
}

func PrintInfo(msg string) {
	fmt.Println(MutedStyle.Render("• ") + msg)
}

func PrintWarning(msg string) {
	fmt.Println(WarningStyle.Render("! " + msg))
}

func PrintError(msg string) {
	fmt.Println(ErrorStyle.Render("✗ " + msg))
}
