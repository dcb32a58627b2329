// Package analysis provides trim and stability studies built on the solver.
//
// The package includes:
//
//   - [Sweep]: trim and Cm-alpha over a range of incidence angles, in parallel
//   - [MomentCurve]: total moment versus tail angle at a fixed incidence
//   - [NeutralIncidence]: where the stability derivative changes sign
//
// # Stability Boundary
//
// A sweep whose derivative changes sign brackets a neutral point:
//
//	points, _ := analysis.Sweep(ctx, model, solver, cfg)
//	if inc, ok := analysis.NeutralIncidence(points); ok {
//	    // statically neutral at inc degrees
//	}
package analysis
