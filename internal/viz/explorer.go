package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/vtrim/internal/metrics"
	"github.com/san-kum/vtrim/internal/trim"
)

type ExplorerConfig struct {
	Model        trim.Model
	Solver       *trim.Solver
	IncidenceDeg float64
	GuessDeg     float64
	Perturbation float64
	Step         float64
	Theme        Theme
}

// Explorer is a bubbletea model that re-solves trim whenever incidence
// or the initial guess changes.
type Explorer struct {
	cfg       ExplorerConfig
	incidence float64
	guess     float64

	result    *trim.Result
	stability trim.Stability
	moments   []float64
	err       error

	theme  Theme
	width  int
	height int
}

func NewExplorer(cfg ExplorerConfig) Explorer {
	if cfg.Step <= 0 {
		cfg.Step = 0.5
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = ThemeCockpit
	}
	e := Explorer{
		cfg:       cfg,
		incidence: cfg.IncidenceDeg,
		guess:     cfg.GuessDeg,
		theme:     cfg.Theme,
		width:     80,
		height:    24,
	}
	e.solve()
	return e
}

func (e Explorer) Incidence() float64        { return e.incidence }
func (e Explorer) Guess() float64            { return e.guess }
func (e Explorer) Result() *trim.Result      { return e.result }
func (e Explorer) Stability() trim.Stability { return e.stability }
func (e Explorer) Err() error                { return e.err }
func (e Explorer) ThemeName() string         { return e.theme.Name }

func (e *Explorer) solve() {
	trace := metrics.NewTrace()
	s := e.cfg.Solver.Bare()
	s.AddObserver(trace)

	res, err := s.Solve(e.cfg.Model, e.guess, e.incidence)
	if err != nil {
		e.result, e.err, e.moments = nil, err, nil
		return
	}
	stab, err := trim.EvaluateStability(e.cfg.Model, res, e.incidence, e.cfg.Perturbation)
	if err != nil {
		e.result, e.err, e.moments = nil, err, nil
		return
	}
	e.result, e.stability, e.err = res, stab, nil

	e.moments = trace.Moments()
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return e, tea.Quit
		case "up", "k":
			e.incidence += e.cfg.Step
		case "down", "j":
			e.incidence -= e.cfg.Step
		case "right", "l":
			e.guess += e.cfg.Step
		case "left", "h":
			e.guess -= e.cfg.Step
		case "r":
			e.incidence = e.cfg.IncidenceDeg
			e.guess = e.cfg.GuessDeg
		case "t":
			e.theme = nextTheme(e.theme)
			return e, nil
		default:
			return e, nil
		}
		e.solve()
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
	}
	return e, nil
}

func (e Explorer) View() string {
	s := NewStyles(e.theme)

	var b strings.Builder
	b.WriteString(s.Title.Render("V-TAIL TRIM EXPLORER"))
	b.WriteString("\n")
	b.WriteString(separator(s, min(e.width, 60)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(s.Label.Render(label) + value + "\n")
	}
	row("incidence", s.Value.Render(fmt.Sprintf("%+.2f deg", e.incidence)))
	row("initial guess", s.Value.Render(fmt.Sprintf("%+.2f deg", e.guess)))
	b.WriteString("\n")

	if e.err != nil {
		b.WriteString(s.Bad.Render(e.err.Error()))
		b.WriteString("\n")
	} else if e.result != nil {
		status := s.Good.Render("converged")
		if !e.result.Converged {
			status = s.Warn.Render("not converged")
		}
		row("status", status)
		row("iterations", fmt.Sprintf("%d", e.result.Iterations))
		row("tail angle", s.Value.Render(fmt.Sprintf("%.5f deg", e.result.TailAngleDeg)))
		row("residual", fmt.Sprintf("%e", e.result.ResidualMoment))
		row("Cmα", s.Value.Render(fmt.Sprintf("%.5f /deg", e.stability.DerivativePerDeg)))
		if e.stability.Stable {
			row("result", s.Good.Render("STABLE"))
		} else {
			row("result", s.Bad.Render("UNSTABLE"))
		}
		row("|Cm| history", s.Subtle.Render(Sparkline(e.moments, 30)))
	}

	b.WriteString("\n")
	b.WriteString(s.KeyHint.Render("↑/↓ incidence  ←/→ guess  r reset  t theme  q quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
