package log

import (
	"log/slog"

	"github.com/san-kum/vtrim/internal/trim"
)

// IterationLogger is a trim.Observer that emits one debug record per
// Newton step.
type IterationLogger struct {
	l *Logger
}

func NewIterationLogger(l *Logger) *IterationLogger {
	return &IterationLogger{l: l}
}

func (o *IterationLogger) OnIteration(it trim.Iteration) {
	o.l.Debug("newton step",
		slog.Int("iter", it.N),
		slog.Float64("alpha_deg", it.Alpha),
		slog.Float64("cm", it.Moment),
		slog.Float64("slope", it.Slope),
		slog.Bool("nudged", it.Nudged))
}
