package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

var (
	// Core palette
	Green     = lipgloss.Color("#00C832")
	DarkGreen = lipgloss.Color("#008F11")
	DimGreen  = lipgloss.Color("#2E5E3A")
	Cyan      = lipgloss.Color("#00D4AA")
	Amber     = lipgloss.Color("#FFB000")
	Red       = lipgloss.Color("#FF4136")
	Black     = lipgloss.Color("#0D0208")
	MidGray   = lipgloss.Color("#3a3a4e")
	White     = lipgloss.Color("#e0e0e0")

	TitleStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	IndexStyle = lipgloss.NewStyle().
			Foreground(MidGray)

	NameStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	PhoneStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	InputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DarkGreen).
				Padding(0, 1)

	InputActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Green).
				Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)
)

// SeverityStyle maps a change notification to its display colour.
func SeverityStyle(s contacts.Severity) lipgloss.Style {
	switch s {
	case contacts.SeveritySuccess:
		return SuccessStyle
	case contacts.SeverityInfo:
		return InfoStyle
	case contacts.SeverityWarning:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
