package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Panel   lipgloss.Style
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Warn    lipgloss.Style
	Subtle  lipgloss.Style
	KeyHint lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(22),
		Value:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Good:    lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Bad:     lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

// Sparkline renders values as a row of block characters scaled to their
// own range. It samples down to width when there are more values.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

func separator(s Styles, width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
