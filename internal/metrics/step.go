package metrics

import (
	"math"

	"github.com/san-kum/vtrim/internal/trim"
)

// MaxStep records the largest change in tail angle between iterations.
type MaxStep struct {
	name    string
	prev    float64
	max     float64
	started bool
}

func NewMaxStep() *MaxStep {
	return &MaxStep{
		name: "max_step",
	}
}

func (s *MaxStep) Name() string {
	return s.name
}

func (s *MaxStep) Observe(it trim.Iteration) {
	if s.started {
		s.max = math.Max(s.max, math.Abs(it.Alpha-s.prev))
	}
	s.prev = it.Alpha
	s.started = true
}

func (s *MaxStep) Value() float64 {
	return s.max
}

func (s *MaxStep) Reset() {
	s.prev = 0
	s.max = 0
	s.started = false
}
