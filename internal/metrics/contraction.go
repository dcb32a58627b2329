package metrics

import (
	"math"

	"github.com/san-kum/vtrim/internal/trim"
)

// Contraction is the geometric mean of |Cm_{n+1}| / |Cm_n| over the run.
// Values well below 1 mean fast convergence; near or above 1 means the
// iteration is stalling or diverging.
type Contraction struct {
	name    string
	prev    float64
	logSum  float64
	samples int
	started bool
}

func NewContraction() *Contraction {
	return &Contraction{name: "contraction"}
}

func (c *Contraction) Name() string { return c.name }

func (c *Contraction) Observe(it trim.Iteration) {
	cur := math.Abs(it.Moment)
	if c.started && c.prev > 0 && cur > 0 {
		c.logSum += math.Log(cur / c.prev)
		c.samples++
	}
	c.prev = cur
	c.started = true
}

func (c *Contraction) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return math.Exp(c.logSum / float64(c.samples))
}

func (c *Contraction) Reset() {
	c.prev = 0
	c.logSum = 0
	c.samples = 0
	c.started = false
}
