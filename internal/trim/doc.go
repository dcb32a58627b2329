// Package trim finds the longitudinal trim point of an aircraft and checks
// its static stability.
//
// The package defines the solver-side interfaces and types:
//
//   - [Model]: pitching-moment coefficient as a function of tail angle and incidence
//   - [Solver]: Newton-Raphson iteration driving the moment to zero
//   - [Result]: trim outcome; non-convergence is a field, not an error
//   - [Stability]: finite-difference Cm-alpha derivative around the trim point
//   - [Observer], [Metric]: per-iteration hooks
//
// # Example
//
//	model := models.NewVTail(cfg.Aircraft, table)
//	solver := trim.New(1e-6, 100)
//	res, _ := solver.Solve(model, -2.0, 0.0)
//	stab, _ := trim.EvaluateStability(model, res, 0.0, 1.0)
//
// # Thread Safety
//
// Models are pure over immutable data and may be shared. A Solver carrying
// metrics or observers is NOT thread-safe; use [Solver.Bare] for a hook-free
// copy per goroutine.
package trim
