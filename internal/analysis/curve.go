package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vtrim/internal/trim"
)

// CurvePoint is one sample of total moment against tail angle.
type CurvePoint struct {
	AlphaDeg float64 `json:"alpha_deg"`
	Moment   float64 `json:"moment"`
}

// MomentCurve samples the model at n tail angles from lo to hi for a fixed incidence.
func MomentCurve(model trim.Model, incidenceDeg, lo, hi float64, n int) []CurvePoint {
	alphas := Linspace(lo, hi, n)
	out := make([]CurvePoint, len(alphas))
	for i, a := range alphas {
		out[i] = CurvePoint{AlphaDeg: a, Moment: model.Moment(a, incidenceDeg)}
	}
	return out
}

// Moments extracts the moment column of a curve.
func Moments(curve []CurvePoint) []float64 {
	out := make([]float64, len(curve))
	for i, p := range curve {
		out[i] = p.Moment
	}
	return out
}

// ZeroCrossings returns the tail angles where the sampled curve changes
// sign, linearly interpolated between samples.
func ZeroCrossings(curve []CurvePoint) []float64 {
	var out []float64
	for i := 0; i+1 < len(curve); i++ {
		a, b := curve[i], curve[i+1]
		if a.Moment == 0 {
			out = append(out, a.AlphaDeg)
			continue
		}
		if (a.Moment < 0) != (b.Moment < 0) && b.Moment != 0 {
			t := a.Moment / (a.Moment - b.Moment)
			out = append(out, a.AlphaDeg+t*(b.AlphaDeg-a.AlphaDeg))
		}
	}
	if n := len(curve); n > 0 && curve[n-1].Moment == 0 {
		out = append(out, curve[n-1].AlphaDeg)
	}
	return out
}

// Extent returns the minimum and maximum moment on a curve.
func Extent(curve []CurvePoint) (lo, hi float64) {
	if len(curve) == 0 {
		return 0, 0
	}
	m := Moments(curve)
	return floats.Min(m), floats.Max(m)
}
