// Package styles holds the lipgloss styles of the human-readable output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/scope/internal/config"
	"github.com/thenoetrevino/scope/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Board lanes
	LaneStyle  lipgloss.Style
	LaneWidth  = 28
	LaneHeader lipgloss.Style

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Priority:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description", "Tasks"

	// Status styles
	BlockedStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	priorityStyles map[string]lipgloss.Style
	appetiteStyles map[string]lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	colors.ApplyDefaults()

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	LaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Subtle)).
		Padding(0, 1).
		Width(LaneWidth)

	LaneHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	BlockedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)

	priorityStyles = map[string]lipgloss.Style{
		models.PriorityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.PriorityHigh)),
		models.PriorityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PriorityHigh)),
		models.PriorityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PriorityMedium)),
		models.PriorityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PriorityLow)),
	}

	appetiteStyles = map[string]lipgloss.Style{
		models.AppetiteLow:      lipgloss.NewStyle().Foreground(lipgloss.Color(colors.RiskLow)),
		models.AppetiteModerate: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.RiskModerate)),
		models.AppetiteHigh:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.RiskHigh)),
		models.AppetiteExtreme:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.RiskExtreme)),
	}
}

// Priority renders a priority badge.
func Priority(p string) string {
	style, ok := priorityStyles[p]
	if !ok {
		style = ValueStyle
	}
	return style.Render(p)
}

// Appetite renders a risk appetite label in its severity color.
func Appetite(a string) string {
	style, ok := appetiteStyles[a]
	if !ok {
		style = ValueStyle
	}
	return style.Render(a)
}

// Field is one "Label: value" row of a card.
type Field struct {
	Label string
	Value string
}

// Card renders a titled box of fields, followed by optional sections.
func Card(title, subtitle string, fields []Field, sections ...Field) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	if subtitle != "" {
		b.WriteString("  ")
		b.WriteString(SubtitleStyle.Render(subtitle))
	}
	b.WriteString("\n")
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(f.Label + ":"))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(f.Value))
	}
	for _, s := range sections {
		if strings.TrimSpace(s.Value) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render(s.Label))
		b.WriteString("\n")
		b.WriteString(s.Value)
	}
	return CardStyle.Render(b.String())
}

// Lanes joins rendered lanes side by side.
func Lanes(lanes []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}
