package indicator_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ApplyIndicatorsTestSuite struct {
	suite.Suite
	series *types.PriceSeries
}

func TestApplyIndicatorsSuite(t *testing.T) {
	suite.Run(t, new(ApplyIndicatorsTestSuite))
}

func (suite *ApplyIndicatorsTestSuite) SetupTest() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.MarketData, 5)

	for i := range bars {
		price := float64(10 + i)
		bars[i] = types.MarketData{
			Symbol: "TEST",
			Time:   start.Add(time.Duration(i) * 24 * time.Hour),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 100,
		}
	}

	series, err := types.NewPriceSeries("TEST", bars)
	suite.Require().NoError(err)

	suite.series = series
}

func (suite *ApplyIndicatorsTestSuite) TestAppliesInOrder() {
	ctrl := gomock.NewController(suite.T())
	first := mocks.NewMockIndicator(ctrl)
	second := mocks.NewMockIndicator(ctrl)

	gomock.InOrder(
		first.EXPECT().Apply(suite.series).DoAndReturn(func(series *types.PriceSeries) (*types.PriceSeries, error) {
			return series.WithColumn("FIRST", []float64{1, 2, 3, 4, 5})
		}),
		second.EXPECT().Apply(gomock.Any()).DoAndReturn(func(series *types.PriceSeries) (*types.PriceSeries, error) {
			// sees the column attached by the first indicator
			suite.True(series.HasColumn("FIRST"))

			return series.WithColumn("SECOND", []float64{5, 4, 3, 2, 1})
		}),
	)

	out, err := indicator.ApplyIndicators(suite.series, first, second)
	suite.Require().NoError(err)
	suite.Equal([]string{"FIRST", "SECOND"}, out.IndicatorColumns())
	suite.False(suite.series.HasColumn("FIRST"))
}

func (suite *ApplyIndicatorsTestSuite) TestStopsOnError() {
	ctrl := gomock.NewController(suite.T())
	failing := mocks.NewMockIndicator(ctrl)
	never := mocks.NewMockIndicator(ctrl)

	failing.EXPECT().Apply(gomock.Any()).Return(nil, fmt.Errorf("boom"))
	failing.EXPECT().Name().Return(types.IndicatorTypeSMA)
	never.EXPECT().Apply(gomock.Any()).Times(0)

	out, err := indicator.ApplyIndicators(suite.series, failing, never)
	suite.Error(err)
	suite.Nil(out)
	suite.Equal(errors.ErrCodeIndicatorCalculation, errors.GetCode(err))
}

func (suite *ApplyIndicatorsTestSuite) TestNoIndicators() {
	out, err := indicator.ApplyIndicators(suite.series)
	suite.NoError(err)
	suite.Same(suite.series, out)
}
