package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/vtrim/internal/models"
	"github.com/san-kum/vtrim/internal/trim"
)

// Report collects everything shown for a single solve.
type Report struct {
	Name         string
	DataFile     string
	Samples      int
	IncidenceDeg float64
	Trim         *trim.Result
	Stability    trim.Stability
	Breakdown    *models.Breakdown
}

func verdict(s trim.Stability) string {
	if s.Stable {
		return "STABLE"
	}
	return "UNSTABLE"
}

// PlainReport renders r without styling, one figure per line.
func PlainReport(r Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "database: %s (%d points)\n", r.DataFile, r.Samples)
	fmt.Fprintf(&sb, "incidence: %.5f deg\n", r.IncidenceDeg)
	if r.Trim != nil {
		fmt.Fprintf(&sb, "converged: %t\n", r.Trim.Converged)
		fmt.Fprintf(&sb, "iterations: %d\n", r.Trim.Iterations)
		fmt.Fprintf(&sb, "tail angle: %.5f deg\n", r.Trim.TailAngleDeg)
		fmt.Fprintf(&sb, "residual moment: %e\n", r.Trim.ResidualMoment)
	}
	fmt.Fprintf(&sb, "cma: %.5f /deg\n", r.Stability.DerivativePerDeg)
	fmt.Fprintf(&sb, "result: %s\n", verdict(r.Stability))
	return sb.String()
}

// RenderReport renders r as a bordered panel using theme t.
func RenderReport(r Report, t Theme) string {
	s := NewStyles(t)

	row := func(label, value string) string {
		return s.Label.Render(label) + value
	}

	var lines []string
	title := "V-TAIL TRIM"
	if r.Name != "" {
		title += " · " + r.Name
	}
	lines = append(lines, s.Title.Render(title))
	lines = append(lines, s.Subtle.Render(fmt.Sprintf("%s · %d points", r.DataFile, r.Samples)))
	lines = append(lines, "")

	lines = append(lines, s.Header.Render("trim"))
	lines = append(lines, row("incidence", s.Value.Render(fmt.Sprintf("%.5f deg", r.IncidenceDeg))))
	if r.Trim != nil {
		status := s.Good.Render("converged")
		if !r.Trim.Converged {
			status = s.Warn.Render("not converged")
		}
		lines = append(lines,
			row("status", status),
			row("iterations", s.Value.Render(fmt.Sprintf("%d", r.Trim.Iterations))),
			row("tail angle", s.Value.Render(fmt.Sprintf("%.5f deg", r.Trim.TailAngleDeg))),
			row("residual moment", s.Value.Render(fmt.Sprintf("%e", r.Trim.ResidualMoment))),
		)
		lines = append(lines, metricRows(s, r.Trim.Metrics)...)
	}
	lines = append(lines, "")

	lines = append(lines, s.Header.Render("static stability"))
	lines = append(lines, row("Cmα", s.Value.Render(fmt.Sprintf("%.5f /deg", r.Stability.DerivativePerDeg))))
	v := s.Good.Render(verdict(r.Stability))
	if !r.Stability.Stable {
		v = s.Bad.Render(verdict(r.Stability))
	}
	lines = append(lines, row("result", v))

	if b := r.Breakdown; b != nil {
		lines = append(lines, "", s.Header.Render("moment terms"))
		terms := []struct {
			name string
			v    float64
		}{
			{"wing", b.Wing},
			{"tail ac", b.TailAC},
			{"tail longitudinal", b.Longitudinal},
			{"tail vertical", b.Vertical},
			{"propulsion", b.Prop},
			{"total", b.Total},
		}
		for _, term := range terms {
			lines = append(lines, row(term.name, fmt.Sprintf("%+.6f", term.v)))
		}
	}

	return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func metricRows(s Styles, m map[string]float64) []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([]string, 0, len(names))
	for _, k := range names {
		rows = append(rows, s.Label.Render(k)+s.Subtle.Render(fmt.Sprintf("%.4g", m[k])))
	}
	return rows
}
