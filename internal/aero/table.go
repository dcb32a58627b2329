package aero

import "math"

// Sample is one tabulated point: angle in degrees and a dimensionless coefficient.
type Sample struct {
	Angle       float64
	Coefficient float64
}

// Table evaluates a tabulated coefficient curve by piecewise-linear
// interpolation, clamping to the end samples outside the tabulated range.
// A loaded table is read-only and safe for concurrent Evaluate calls.
type Table struct {
	samples []Sample
}

func NewTable(rows []Sample) (*Table, error) {
	t := &Table{}
	if err := t.Load(rows); err != nil {
		return nil, err
	}
	return t, nil
}

// Load replaces the table contents. Rows are stored in the order given;
// ascending angle order is the caller's contract (see CheckOrder).
func (t *Table) Load(rows []Sample) error {
	if len(rows) == 0 {
		return ErrEmptyData
	}
	t.samples = make([]Sample, len(rows))
	copy(t.samples, rows)
	return nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.samples)
}

func (t *Table) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Bounds returns the first and last tabulated angles.
func (t *Table) Bounds() (lo, hi float64) {
	if len(t.samples) == 0 {
		return 0, 0
	}
	return t.samples[0].Angle, t.samples[len(t.samples)-1].Angle
}

func (t *Table) Evaluate(angle float64) float64 {
	n := len(t.samples)
	if n == 0 {
		return 0
	}

	first, last := t.samples[0], t.samples[n-1]
	if angle <= first.Angle {
		return first.Coefficient
	}
	if angle >= last.Angle {
		return last.Coefficient
	}

	for i := 0; i < n-1; i++ {
		a, b := t.samples[i], t.samples[i+1]
		if angle >= a.Angle && angle < b.Angle {
			slope := (b.Coefficient - a.Coefficient) / (b.Angle - a.Angle)
			return a.Coefficient + (angle-a.Angle)*slope
		}
	}

	// only reachable when the samples are out of order
	return last.Coefficient
}

// CheckOrder returns an *OrderError for the first non-finite angle or
// descending pair, or nil. Repeated angles are allowed.
func (t *Table) CheckOrder() error {
	for i, s := range t.samples {
		if math.IsNaN(s.Angle) || math.IsInf(s.Angle, 0) {
			prev := math.NaN()
			if i > 0 {
				prev = t.samples[i-1].Angle
			}
			return &OrderError{Index: i, Prev: prev, Next: s.Angle}
		}
	}
	for i := 1; i < len(t.samples); i++ {
		if t.samples[i].Angle < t.samples[i-1].Angle {
			return &OrderError{Index: i, Prev: t.samples[i-1].Angle, Next: t.samples[i].Angle}
		}
	}
	return nil
}
