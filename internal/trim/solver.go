package trim

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

const (
	DefaultStep          = 0.001
	DefaultGradientFloor = 1e-9
	DefaultNudge         = 0.1
)

type Solver struct {
	Tolerance     float64
	MaxIterations int
	// Step is the forward-difference increment in degrees.
	Step float64
	// GradientFloor is the slope magnitude below which the estimate is
	// nudged by Nudge instead of taking a Newton step.
	GradientFloor float64
	Nudge         float64

	metrics   []Metric
	observers []Observer
}

func New(tolerance float64, maxIterations int) *Solver {
	return &Solver{
		Tolerance:     tolerance,
		MaxIterations: maxIterations,
		Step:          DefaultStep,
		GradientFloor: DefaultGradientFloor,
		Nudge:         DefaultNudge,
		metrics:       make([]Metric, 0),
		observers:     make([]Observer, 0),
	}
}

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Bare returns a copy of the solver settings without metrics or observers.
func (s *Solver) Bare() *Solver {
	return &Solver{
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
		Step:          s.Step,
		GradientFloor: s.GradientFloor,
		Nudge:         s.Nudge,
	}
}

// Solve runs Newton-Raphson on the tail angle until |Cm| < Tolerance or
// MaxIterations passes have been made. Failing to converge is reported in
// the result; only bad inputs return an error.
func (s *Solver) Solve(model Model, initialGuessDeg, incidenceDeg float64) (*Result, error) {
	if err := s.validate(model, initialGuessDeg, incidenceDeg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	f := func(alpha float64) float64 {
		return model.Moment(alpha, incidenceDeg)
	}
	settings := &fd.Settings{Formula: fd.Forward, Step: s.Step, OriginKnown: true}

	alpha := initialGuessDeg
	converged := false
	iter := 0

	for iter = 0; iter < s.MaxIterations; iter++ {
		cm := f(alpha)
		it := Iteration{N: iter, Alpha: alpha, Moment: cm}

		if math.Abs(cm) < s.Tolerance {
			converged = true
			s.notify(it)
			break
		}

		settings.OriginValue = cm
		slope := fd.Derivative(f, alpha, settings)
		it.Slope = slope

		if math.Abs(slope) < s.GradientFloor {
			alpha += s.Nudge
			it.Nudged = true
			s.notify(it)
			continue
		}

		alpha -= cm / slope
		s.notify(it)
	}

	result := &Result{
		Converged:      converged,
		Iterations:     iter,
		TailAngleDeg:   alpha,
		ResidualMoment: f(alpha),
		Metrics:        make(map[string]float64),
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Solver) notify(it Iteration) {
	for _, m := range s.metrics {
		m.Observe(it)
	}
	for _, o := range s.observers {
		o.OnIteration(it)
	}
}

func (s *Solver) validate(model Model, guess, incidence float64) error {
	if model == nil {
		return &PreconditionError{Field: "model", Reason: "is nil"}
	}
	if r, ok := model.(Readiness); ok {
		if err := r.Ready(); err != nil {
			return err
		}
	}
	if !finite(guess) {
		return &PreconditionError{Field: "initial guess", Reason: "must be finite"}
	}
	if !finite(incidence) {
		return &PreconditionError{Field: "incidence", Reason: "must be finite"}
	}
	if !(s.Tolerance > 0) {
		return &PreconditionError{Field: "tolerance", Reason: "must be positive"}
	}
	if s.MaxIterations <= 0 {
		return &PreconditionError{Field: "max iterations", Reason: "must be positive"}
	}
	if !(s.Step > 0) || !finite(s.Step) {
		return &PreconditionError{Field: "step", Reason: "must be positive"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
