// Package shared provides the colour palette and styles used by wiz-iac output.
package shared

import (
	"github.com/charmbracelet/lipgloss"
)

// Standard color definitions.
var (
	Red    = lipgloss.Color("#f38ba8")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Blue   = lipgloss.Color("#89dceb")
	Mauve  = lipgloss.Color("#cba6f7")
	Text   = lipgloss.Color("#cdd6f4")
)

// Styles is the set of styles bound to one renderer.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Title   lipgloss.Style
	Item    lipgloss.Style
	Bullet  lipgloss.Style
}

// NewStyles builds styles for r. Styles from a renderer without colour
// support render plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Error:   r.NewStyle().Foreground(Red).Bold(true),
		Success: r.NewStyle().Foreground(Green).Bold(true),
		Warning: r.NewStyle().Foreground(Yellow),
		Info:    r.NewStyle().Foreground(Blue),
		Title:   r.NewStyle().Bold(true).Foreground(Mauve),
		Item:    r.NewStyle().Foreground(Text),
		Bullet:  r.NewStyle().Foreground(Blue),
	}
}
