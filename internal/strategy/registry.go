package strategy

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Registry holds a named collection of signal generators for lookup and enumeration.
type Registry struct {
	strategies map[string]SignalGenerator
	mu         sync.RWMutex
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]SignalGenerator),
	}
}

// Register adds a strategy to the registry, keyed by its Name().
func (r *Registry) Register(s SignalGenerator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[s.Name()]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExist, "strategy %s already registered", s.Name())
	}

	r.strategies[s.Name()] = s

	return nil
}

// Get retrieves a strategy by name. The second return value indicates whether
// the strategy was found.
func (r *Registry) Get(name string) (SignalGenerator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[name]

	return s, ok
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Strategies returns the registered strategies ordered by name.
func (r *Registry) Strategies() []SignalGenerator {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SignalGenerator, 0, len(names))
	for _, name := range names {
		if s, ok := r.strategies[name]; ok {
			out = append(out, s)
		}
	}

	return out
}
