package metrics

import "github.com/san-kum/vtrim/internal/trim"

// Trace keeps every iteration of the last solve for plotting.
type Trace struct {
	its []trim.Iteration
}

func NewTrace() *Trace {
	return &Trace{its: make([]trim.Iteration, 0, 16)}
}

func (t *Trace) OnIteration(it trim.Iteration) {
	t.its = append(t.its, it)
}

func (t *Trace) Iterations() []trim.Iteration {
	return t.its
}

// Moments returns |Cm| per iteration.
func (t *Trace) Moments() []float64 {
	out := make([]float64, len(t.its))
	for i, it := range t.its {
		if it.Moment < 0 {
			out[i] = -it.Moment
		} else {
			out[i] = it.Moment
		}
	}
	return out
}

func (t *Trace) Reset() {
	t.its = t.its[:0]
}

// Default returns the metrics attached to every solve.
func Default() []trim.Metric {
	return []trim.Metric{
		NewNudges(),
		NewContraction(),
		NewMaxStep(),
	}
}
