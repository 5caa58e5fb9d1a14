// Package lipgloss renders thermo results for the terminal.
package lipgloss

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/thermo"
)

// Styles maps a Theme to lipgloss styles.
type Styles struct {
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Unit     lipgloss.Style
	Liquid   lipgloss.Style
	Vapor    lipgloss.Style
	Critical lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles creates Styles from a Theme for the given renderer.
func NewStyles(r *lipgloss.Renderer, t thermo.Theme) Styles {
	return Styles{
		Heading:  r.NewStyle().Foreground(ansiColor(t.Heading)).Bold(true),
		Label:    r.NewStyle().Foreground(ansiColor(t.Label)),
		Unit:     r.NewStyle().Foreground(ansiColor(t.Unit)).Faint(true),
		Liquid:   r.NewStyle().Foreground(ansiColor(t.Liquid)),
		Vapor:    r.NewStyle().Foreground(ansiColor(t.Vapor)),
		Critical: r.NewStyle().Foreground(ansiColor(t.Critical)).Bold(true),
		Error:    r.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:    r.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
