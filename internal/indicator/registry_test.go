package indicator

import (
	"sync"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestDefaultRegistry() {
	registry := NewDefaultIndicatorRegistry()

	suite.Equal([]types.IndicatorType{
		types.IndicatorTypeATR,
		types.IndicatorTypeBollingerBands,
		types.IndicatorTypeEMA,
		types.IndicatorTypeMACD,
		types.IndicatorTypeRSI,
		types.IndicatorTypeSMA,
	}, registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestNewIndicator() {
	registry := NewDefaultIndicatorRegistry()

	ind, err := registry.NewIndicator(types.IndicatorTypeSMA, 50)
	suite.NoError(err)
	suite.Equal([]string{"SMA50"}, ind.Columns())

	// every call returns a fresh instance
	other, err := registry.NewIndicator(types.IndicatorTypeSMA)
	suite.NoError(err)
	suite.Equal([]string{"SMA20"}, other.Columns())
}

func (suite *RegistryTestSuite) TestNewIndicatorErrors() {
	registry := NewDefaultIndicatorRegistry()

	_, err := registry.NewIndicator("unknown")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))

	_, err = registry.NewIndicator(types.IndicatorTypeSMA, -5)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(types.IndicatorTypeRSI, NewRSI))

	err := registry.RegisterIndicator(types.IndicatorTypeRSI, NewRSI)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestRemoveIndicator() {
	registry := NewDefaultIndicatorRegistry()
	suite.NoError(registry.RemoveIndicator(types.IndicatorTypeATR))
	suite.NotContains(registry.ListIndicators(), types.IndicatorTypeATR)

	err := registry.RemoveIndicator(types.IndicatorTypeATR)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestConcurrentAccess() {
	registry := NewDefaultIndicatorRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := registry.NewIndicator(types.IndicatorTypeEMA, 10)
			suite.NoError(err)
			suite.Len(registry.ListIndicators(), 6)
		}()
	}

	wg.Wait()
}
