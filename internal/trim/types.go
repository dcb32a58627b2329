package trim

// Model returns the total pitching-moment coefficient for a tail angle of
// attack and an aircraft incidence, both in degrees.
type Model interface {
	Moment(tailAlphaDeg, incidenceDeg float64) float64
}

// Readiness is implemented by models that depend on loaded data.
type Readiness interface {
	Ready() error
}

// MomentFunc adapts a plain function to Model.
type MomentFunc func(tailAlphaDeg, incidenceDeg float64) float64

func (f MomentFunc) Moment(tailAlphaDeg, incidenceDeg float64) float64 {
	return f(tailAlphaDeg, incidenceDeg)
}

// Iteration is one pass of the Newton loop. Slope is zero on the
// iteration that met the tolerance.
type Iteration struct {
	N      int
	Alpha  float64
	Moment float64
	Slope  float64
	Nudged bool
}

type Observer interface {
	OnIteration(it Iteration)
}

type Metric interface {
	Name() string
	Observe(it Iteration)
	Value() float64
	Reset()
}

type Result struct {
	Converged      bool               `json:"converged"`
	Iterations     int                `json:"iterations"`
	TailAngleDeg   float64            `json:"tail_angle_deg"`
	ResidualMoment float64            `json:"residual_moment"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
}

type Stability struct {
	DerivativePerDeg float64 `json:"derivative_per_deg"`
	Stable           bool    `json:"stable"`
}
