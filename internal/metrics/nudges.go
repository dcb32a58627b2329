package metrics

import "github.com/san-kum/vtrim/internal/trim"

// Nudges counts iterations where the slope was too flat for a Newton step.
type Nudges struct {
	name  string
	count int
}

func NewNudges() *Nudges {
	return &Nudges{
		name: "nudges",
	}
}

func (n *Nudges) Name() string {
	return n.name
}

func (n *Nudges) Observe(it trim.Iteration) {
	if it.Nudged {
		n.count++
	}
}

func (n *Nudges) Value() float64 {
	return float64(n.count)
}

func (n *Nudges) Reset() {
	n.count = 0
}
