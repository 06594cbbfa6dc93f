// Package presenter formats roster data for the terminal menu.
// Styling follows the output: a terminal gets colours, a pipe or buffer
// gets plain text with identical wording.
package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// FORMATTING
// ══════════════════════════════════════════════════════════════════════════════

// FormatAverage renders an average with two decimals, e.g. "85.00".
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 2, 64)
}

// FormatGrades renders grades as "[95, 85]".
func FormatGrades(grades []int) string {
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = strconv.Itoa(g)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StudentLine renders " - <name> | grades=[..] | avg=<x.xx>".
func StudentLine(s query.StudentDTO) string {
	return fmt.Sprintf(" - %s | grades=%s | avg=%s", s.Name, FormatGrades(s.Grades), FormatAverage(s.Average))
}

// TopLine renders " <rank>. <name> avg=<x.xx>".
func TopLine(e query.TopEntryDTO) string {
	return fmt.Sprintf(" %d. %s avg=%s", e.Rank, e.Name, FormatAverage(e.Average))
}

// ══════════════════════════════════════════════════════════════════════════════
// STYLES
// ══════════════════════════════════════════════════════════════════════════════

// Styles holds the lipgloss styles bound to one output.
type Styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewStyles binds styles to w. Colour is used only when w is a terminal.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		header:  r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#7CC47C")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Title styles the program banner.
func (s *Styles) Title(text string) string { return s.title.Render(text) }

// Header styles section headers such as "Menu:" and "Students:".
func (s *Styles) Header(text string) string { return s.header.Render(text) }

// Success styles confirmations.
func (s *Styles) Success(text string) string { return s.success.Render(text) }

// Failure styles rejected input.
func (s *Styles) Failure(text string) string { return s.failure.Render(text) }
