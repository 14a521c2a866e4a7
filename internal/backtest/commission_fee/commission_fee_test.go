package commission_fee

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommissionFeeTestSuite struct {
	suite.Suite
}

func TestCommissionFeeSuite(t *testing.T) {
	suite.Run(t, new(CommissionFeeTestSuite))
}

func (suite *CommissionFeeTestSuite) TestZeroCommissionFee() {
	fee := NewZeroCommissionFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		quantity float64
		price    float64
	}{
		{"no trade", 0, 100},
		{"single unit", 1, 100},
		{"reversal", 2, 250.5},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(0.0, fee.Calculate(tc.quantity, tc.price))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestPercentageCommissionFee() {
	fee := NewPercentageCommissionFee(0.001)

	tests := []struct {
		name     string
		quantity float64
		price    float64
		expected float64
	}{
		{"no trade", 0, 100, 0},
		{"entry", 1, 100, 0.1},
		{"reversal counts twice", 2, 100, 0.2},
		{"negative quantity uses magnitude", -1, 50, 0.05},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, fee.Calculate(tc.quantity, tc.price), 1e-12)
		})
	}

	percentage, ok := fee.(*PercentageCommissionFee)
	suite.True(ok)
	suite.Equal(0.001, percentage.Rate())
}

func (suite *CommissionFeeTestSuite) TestInteractiveBrokerCommissionFee() {
	fee := NewInteractiveBrokerCommissionFee()

	suite.Equal(0.0, fee.Calculate(0, 100))
	suite.Equal(1.0, fee.Calculate(1, 100))
	suite.Equal(2.0, fee.Calculate(2, 5000))
}

func (suite *CommissionFeeTestSuite) TestGetCommissionFeeHandler() {
	tests := []struct {
		name     string
		broker   Broker
		rate     float64
		expected float64
	}{
		{"percentage", BrokerPercentage, 0.01, 2.0},
		{"interactive broker ignores rate", BrokerInteractiveBroker, 0.01, 2.0},
		{"zero commission ignores rate", BrokerZero, 0.01, 0.0},
		{"unknown broker with rate", Broker("unknown"), 0.01, 2.0},
		{"unknown broker without rate", Broker(""), 0, 0.0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			handler := GetCommissionFeeHandler(tc.broker, tc.rate)
			suite.NotNil(handler)
			suite.InDelta(tc.expected, handler.Calculate(2, 100), 1e-12)
		})
	}
}

func (suite *CommissionFeeTestSuite) TestAllBrokers() {
	suite.Len(AllBrokers, 3)
	suite.Contains(AllBrokers, BrokerPercentage)
	suite.Contains(AllBrokers, BrokerInteractiveBroker)
	suite.Contains(AllBrokers, BrokerZero)
}
