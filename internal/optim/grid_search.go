package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var ErrNoCandidate = errors.New("optim: no candidate could be evaluated")

// Candidate is one evaluated grid point. Lower Score is better.
type Candidate struct {
	Params map[string]float64
	Score  float64
}

// EvaluateFunc scores one parameter combination. Returning an error skips
// the point.
type EvaluateFunc func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point and returns the lowest scoring one
// along with the number of points that were skipped.
func (g *GridSearch) Search(ctx context.Context, evaluate EvaluateFunc) (*Candidate, int, error) {
	best := &Candidate{Score: math.Inf(1)}
	skipped := 0

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), evaluate, best, &skipped); err != nil {
		return nil, skipped, err
	}
	if best.Params == nil {
		return nil, skipped, ErrNoCandidate
	}
	return best, skipped, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	evaluate EvaluateFunc,
	best *Candidate,
	skipped *int,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		score, err := evaluate(ctx, current)
		if err != nil || math.IsNaN(score) {
			*skipped++
			return nil
		}

		if score < best.Score {
			best.Score = score
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, evaluate, best, skipped); err != nil {
			return err
		}
	}
	return nil
}
