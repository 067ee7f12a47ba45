package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/bubblepop/internal/control"
	"github.com/san-kum/bubblepop/internal/metrics"
	"github.com/san-kum/bubblepop/internal/sim"
)

type PolicyFactory func(params map[string]float64, seed int64) sim.Aimer

type Registry struct {
	policies map[string]PolicyFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[string]PolicyFactory),
	}

	r.policies["none"] = func(params map[string]float64, seed int64) sim.Aimer {
		return control.NewNone()
	}
	r.policies["random"] = func(params map[string]float64, seed int64) sim.Aimer {
		return control.NewRandom(params["spread"], seed)
	}
	r.policies["greedy"] = func(params map[string]float64, seed int64) sim.Aimer {
		return control.NewGreedy(params["jitter"], seed)
	}

	return r
}

func (r *Registry) Register(name string, fn PolicyFactory) {
	r.policies[name] = fn
}

func (r *Registry) GetPolicy(name string, params map[string]float64, seed int64) (sim.Aimer, error) {
	fn, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
	a := fn(params, seed)
	if a == nil {
		return nil, fmt.Errorf("policy %s produced no aimer", name)
	}
	return a, nil
}

func (r *Registry) HasPolicy(name string) bool {
	_, ok := r.policies[name]
	return ok
}

func (r *Registry) ListPolicies() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewShots(),
		metrics.NewMisses(),
		metrics.NewPopped(),
		metrics.NewCleared(),
		metrics.NewLargestCluster(),
		metrics.NewAccuracy(),
	}
}
