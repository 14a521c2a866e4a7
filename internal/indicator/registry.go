package indicator

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Factory creates a fresh, default-configured indicator.
type Factory func() Indicator

// IndicatorRegistry manages all available indicators.
type IndicatorRegistry interface {
	RegisterIndicator(name types.IndicatorType, factory Factory) error
	// NewIndicator creates the named indicator and applies Config(params...) when params are given.
	NewIndicator(name types.IndicatorType, params ...any) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	factories map[types.IndicatorType]Factory
	mu        sync.RWMutex
}

// NewIndicatorRegistry creates an empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		factories: make(map[types.IndicatorType]Factory),
		mu:        sync.RWMutex{},
	}
}

// NewDefaultIndicatorRegistry creates a registry holding every built-in indicator.
func NewDefaultIndicatorRegistry() IndicatorRegistry {
	r := NewIndicatorRegistry()

	for _, factory := range []Factory{NewSMA, NewEMA, NewRSI, NewMACD, NewBollingerBands, NewATR} {
		// names are unique, registration cannot fail
		_ = r.RegisterIndicator(factory().Name(), factory)
	}

	return r
}

// RegisterIndicator adds an indicator factory to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(name types.IndicatorType, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", name)
	}

	r.factories[name] = factory

	return nil
}

// NewIndicator creates a configured indicator by name.
func (r *IndicatorRegistryV1) NewIndicator(name types.IndicatorType, params ...any) (Indicator, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "NewIndicator: indicator with name %s not found", name)
	}

	ind := factory()
	if len(params) > 0 {
		if err := ind.Config(params...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to configure indicator %s", name)
		}
	}

	return ind, nil
}

// ListIndicators returns the sorted names of all registered indicators.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.factories, name)

	return nil
}
