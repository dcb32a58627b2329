// Package viz renders trim results for the terminal.
//
//   - [RenderReport]: styled summary of one trim and stability analysis
//   - [PlainReport]: the same figures as unstyled text
//   - [Explorer]: interactive model for sweeping incidence and initial guess
//
// # Explorer Key Bindings
//
//	Up/Down    - Incidence +/- step
//	Left/Right - Initial guess -/+ step
//	R          - Reset to configured values
//	T          - Cycle color themes
//	Q          - Quit
package viz
