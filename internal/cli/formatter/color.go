package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/notify"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StepStatusIndicator returns a colored marker for a step status.
func StepStatusIndicator(status domain.StepStatus) string {
	switch status {
	case domain.StepCompleted:
		return StyleGreen.Render("● concluída")
	case domain.StepWaitingApproval:
		return StyleYellow.Render("● aguardando aprovação")
	case domain.StepInProgress:
		return StyleBlue.Render("● em andamento")
	case domain.StepNotStarted:
		return StyleDim.Render("○ não iniciada")
	default:
		return StyleDim.Render("○ ?")
	}
}

// SeverityStyle maps a notification severity to its style.
func SeverityStyle(severity notify.Severity) lipgloss.Style {
	switch severity {
	case notify.SeveritySuccess:
		return StyleGreen
	case notify.SeverityError:
		return StyleRed
	case notify.SeverityAlert:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
