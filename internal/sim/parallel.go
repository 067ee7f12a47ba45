package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblepop/internal/game"
)

// Ensemble plays the same rules over consecutive seeds concurrently. Each run
// gets its own aimer and metrics from the factories.
type Ensemble struct {
	rules      game.Rules
	newAimer   func(seed int64) Aimer
	newMetrics func() []Metric
	numRuns    int
	seedStart  int64
	logger     *log.Logger
}

func NewEnsemble(rules game.Rules, newAimer func(seed int64) Aimer, newMetrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		rules:      rules,
		newAimer:   newAimer,
		newMetrics: newMetrics,
		numRuns:    numRuns,
		seedStart:  seedStart,
		logger:     log.Default(),
	}
}

func (e *Ensemble) SetLogger(l *log.Logger) { e.logger = l }

func (e *Ensemble) Run(ctx context.Context, maxFrames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			sim := New(e.rules, e.newAimer(seed))
			sim.SetLogger(e.logger)
			sim.AddObserver(NewEventLog(e.logger, seed))
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, Config{MaxFrames: maxFrames, Seed: seed})
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary aggregates the scores of an ensemble.
type Summary struct {
	Runs    int
	Mean    float64
	Best    int
	Worst   int
	Cleared int
}

func Summarize(results []*Result) Summary {
	var s Summary
	for i, r := range results {
		score := r.Score()
		if i == 0 || score > s.Best {
			s.Best = score
		}
		if i == 0 || score < s.Worst {
			s.Worst = score
		}
		if r.Cleared {
			s.Cleared++
		}
		s.Mean += float64(score)
		s.Runs++
	}
	if s.Runs > 0 {
		s.Mean /= float64(s.Runs)
	}
	return s
}
