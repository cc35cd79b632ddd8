package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/CityReport/internal/controller"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:      "default",
		Primary:   adaptive("#1E40AF", "#3B82F6"),
		Secondary: adaptive("#6B7280", "#9CA3AF"),
		Success:   adaptive("#059669", "#10B981"),
		Warning:   adaptive("#D97706", "#F59E0B"),
		Error:     adaptive("#DC2626", "#EF4444"),
		Info:      adaptive("#0891B2", "#06B6D4"),
		Border:    adaptive("#D1D5DB", "#374151"),
		Muted:     adaptive("#6B7280", "#9CA3AF"),
		Selected:  adaptive("#DBEAFE", "#1E3A8A"),
	}

	HighContrastTheme = Theme{
		Name:      "high-contrast",
		Primary:   adaptive("#000000", "#FFFFFF"),
		Secondary: adaptive("#666666", "#BBBBBB"),
		Success:   adaptive("#006600", "#00FF00"),
		Warning:   adaptive("#CC6600", "#FFAA00"),
		Error:     adaptive("#CC0000", "#FF4444"),
		Info:      adaptive("#0066CC", "#4499FF"),
		Border:    adaptive("#000000", "#FFFFFF"),
		Muted:     adaptive("#666666", "#BBBBBB"),
		Selected:  adaptive("#CCCCCC", "#333333"),
	}

	MinimalTheme = Theme{
		Name:      "minimal",
		Primary:   adaptive("#2D3748", "#E2E8F0"),
		Secondary: adaptive("#718096", "#A0AEC0"),
		Success:   adaptive("#2F855A", "#68D391"),
		Warning:   adaptive("#C05621", "#F6AD55"),
		Error:     adaptive("#C53030", "#FC8181"),
		Info:      adaptive("#2B6CB0", "#63B3ED"),
		Border:    adaptive("#E2E8F0", "#2D3748"),
		Muted:     adaptive("#A0AEC0", "#718096"),
		Selected:  adaptive("#EDF2F7", "#2D3748"),
	}
)

// ThemeByName resolves a theme name; ok is false for unknown names
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return DefaultTheme, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Input    lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Modal    lipgloss.Style
}

// NewStyles builds the styles for theme. With color false every style is
// plain apart from borders and bold.
func NewStyles(theme Theme, color bool) *Styles {
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		if !color {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}
	border := func(s lipgloss.Style, c lipgloss.AdaptiveColor) lipgloss.Style {
		if !color {
			return s
		}
		return s.BorderForeground(c)
	}

	selected := lipgloss.NewStyle().Bold(true)
	if color {
		selected = selected.Background(theme.Selected).Foreground(theme.Primary)
	}

	return &Styles{
		Theme: theme,

		Title:  fg(theme.Primary).Bold(true).Padding(0, 1),
		Header: fg(theme.Primary).Bold(true),
		Body:   lipgloss.NewStyle(),
		Muted:  fg(theme.Muted),

		Success: fg(theme.Success).Bold(true),
		Warning: fg(theme.Warning).Bold(true),
		Error:   fg(theme.Error).Bold(true),
		Info:    fg(theme.Info),

		Input:    border(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1), theme.Primary),
		Selected: selected,
		Panel:    border(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1), theme.Border),
		Modal:    border(lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2), theme.Primary),
	}
}

// Status returns the style for a status tone
func (s *Styles) Status(tone controller.Tone) lipgloss.Style {
	switch tone {
	case controller.ToneBusy:
		return s.Info
	case controller.ToneSuccess:
		return s.Success
	case controller.ToneError:
		return s.Error
	default:
		return s.Muted
	}
}
