package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/bubblepop/internal/experiment"
	"github.com/san-kum/bubblepop/internal/sim"
)

// ScoreMetric selects the final score instead of a named metric.
const ScoreMetric = "score"

var ErrNoCandidates = errors.New("no parameter combination could be evaluated")

// GridSearch tries every combination of policy parameter values and keeps
// the one with the highest mean metric over Trials seeds.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Trials     int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, Trials: 1}
}

type Candidate struct {
	Params map[string]float64
	Value  float64
}

func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameter names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Candidate{Value: math.Inf(-1)}
	var lastErr error

	g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		val, err := g.evaluate(ctx, buildExperiment, params, metricName)
		if err != nil {
			lastErr = err
			return
		}
		if best.Params == nil || val > best.Value {
			best = Candidate{Params: params, Value: val}
		}
	})

	if err := ctx.Err(); err != nil {
		return best.Params, best.Value, err
	}
	if best.Params == nil {
		if lastErr != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrNoCandidates, lastErr)
		}
		return nil, 0, ErrNoCandidates
	}
	return best.Params, best.Value, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64)) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		visit(current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, visit)
	}
}

func (g *GridSearch) evaluate(
	ctx context.Context,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	params map[string]float64,
	metricName string,
) (float64, error) {
	exp, err := buildExperiment(params)
	if err != nil {
		return 0, err
	}

	trials := g.Trials
	if trials <= 0 {
		trials = 1
	}
	results, err := exp.RunEnsemble(ctx, trials)
	if err != nil {
		return 0, err
	}
	return MeanMetric(results, metricName)
}

// MeanMetric averages a named metric, or the score, across results.
func MeanMetric(results []*sim.Result, metricName string) (float64, error) {
	if len(results) == 0 {
		return 0, ErrNoCandidates
	}
	var sum float64
	for _, r := range results {
		if metricName == ScoreMetric {
			sum += float64(r.Score())
			continue
		}
		v, ok := r.Metrics[metricName]
		if !ok {
			return 0, fmt.Errorf("unknown metric: %s", metricName)
		}
		sum += v
	}
	return sum / float64(len(results)), nil
}
