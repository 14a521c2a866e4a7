package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	suite.Equal(10000.0, config.InitialCapital)
	suite.Equal(1.0, config.PositionSize)
	suite.Equal(0.0, config.Commission)
	suite.Equal(commission_fee.BrokerPercentage, config.Broker)
	suite.True(config.StartTime.IsNone())
	suite.True(config.EndTime.IsNone())
	suite.False(config.AddIndicators)
	suite.Equal(4, config.MaxWorkers)
	suite.Equal(6, config.DecimalPrecision)
	suite.Equal(datasource.DefaultColumnMapping(), config.Columns)
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestTestConfig() {
	startTime := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	config := TestConfig(startTime, endTime, commission_fee.BrokerZero)

	suite.Equal(10000.0, config.InitialCapital)
	suite.Equal(commission_fee.BrokerZero, config.Broker)
	suite.Equal(startTime, config.StartTime.Unwrap())
	suite.Equal(endTime, config.EndTime.Unwrap())
}

func (suite *ConfigTestSuite) TestGenerateSchema() {
	config := &BacktestEngineV1Config{}
	schema, err := config.GenerateSchema()

	suite.NoError(err)
	suite.NotNil(schema)
	suite.Equal("backtest-engine-v1-config", schema.Title)
	suite.Equal("Configuration schema for BacktestEngineV1", schema.Description)
	suite.Equal("http://json-schema.org/draft-07/schema#", schema.Version)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := &BacktestEngineV1Config{}
	schemaJSON, err := config.GenerateSchemaJSON()

	suite.NoError(err)
	suite.NotEmpty(schemaJSON)

	// Verify it's valid JSON
	var result map[string]any
	err = json.Unmarshal([]byte(schemaJSON), &result)
	suite.NoError(err)

	suite.Equal("backtest-engine-v1-config", result["title"])

	properties, ok := result["properties"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(properties, "initial_capital")
	suite.Contains(properties, "position_size")
	suite.Contains(properties, "max_workers")
	suite.Contains(properties, "columns")

	startTime, ok := properties["start_time"].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("date-time", startTime["format"])

	broker, ok := properties["broker"].(map[string]any)
	suite.Require().True(ok)
	suite.ElementsMatch([]any{"percentage", "interactive_broker", "zero_commission"}, broker["enum"])
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLComplete() {
	yamlData := `
initial_capital: 50000
position_size: 0.5
commission: 0.001
broker: interactive_broker
start_time: 2023-01-01T00:00:00Z
end_time: 2023-12-31
add_indicators: true
indicators:
  - type: sma
    params: [10]
  - type: bollinger_bands
    params: [20, 2.5]
max_workers: 2
decimal_precision: 2
columns:
  time: timestamp
  close: adj_close
`

	var config BacktestEngineV1Config
	err := yaml.Unmarshal([]byte(yamlData), &config)

	suite.Require().NoError(err)
	suite.Equal(50000.0, config.InitialCapital)
	suite.Equal(0.5, config.PositionSize)
	suite.Equal(0.001, config.Commission)
	suite.Equal(commission_fee.BrokerInteractiveBroker, config.Broker)
	suite.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), config.StartTime.Unwrap())
	suite.Equal(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), config.EndTime.Unwrap())
	suite.True(config.AddIndicators)
	suite.Require().Len(config.Indicators, 2)
	suite.Equal(types.IndicatorTypeSMA, config.Indicators[0].Type)
	suite.Equal([]any{10}, config.Indicators[0].Params)
	suite.Equal([]any{20, 2.5}, config.Indicators[1].Params)
	suite.Equal(2, config.MaxWorkers)
	suite.Equal(2, config.DecimalPrecision)
	suite.Equal("timestamp", config.Columns.Time)
	suite.Equal("adj_close", config.Columns.Close)
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLKeepsDefaults() {
	yamlData := `
initial_capital: 25000
broker: zero_commission
decimal_precision: 0
`

	var config BacktestEngineV1Config
	err := yaml.Unmarshal([]byte(yamlData), &config)

	suite.NoError(err)
	suite.Equal(25000.0, config.InitialCapital)
	suite.Equal(commission_fee.BrokerZero, config.Broker)
	suite.True(config.StartTime.IsNone())
	suite.True(config.EndTime.IsNone())
	suite.Equal(0, config.DecimalPrecision)
	suite.Equal(1.0, config.PositionSize)
	suite.Equal(4, config.MaxWorkers)
}

func (suite *ConfigTestSuite) TestMarshalYAML() {
	config := DefaultConfig()

	out, err := yaml.Marshal(config)
	suite.Require().NoError(err)
	suite.NotContains(string(out), "start_time")

	parsed, err := ParseConfig(string(out))
	suite.Require().NoError(err)
	suite.Equal(config, parsed)

	config = TestConfig(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		commission_fee.BrokerInteractiveBroker,
	)

	out, err = yaml.Marshal(config)
	suite.Require().NoError(err)
	suite.Contains(string(out), "2023-01-01T00:00:00Z")

	parsed, err = ParseConfig(string(out))
	suite.Require().NoError(err)
	suite.Equal(config.StartTime.Unwrap(), parsed.StartTime.Unwrap())
	suite.Equal(config.EndTime.Unwrap(), parsed.EndTime.Unwrap())
	suite.Equal(commission_fee.BrokerInteractiveBroker, parsed.Broker)
}

func (suite *ConfigTestSuite) TestParseConfig() {
	tests := []struct {
		name      string
		yaml      string
		expectErr bool
	}{
		{"empty document", "", false},
		{"defaults only", "add_indicators: false", false},
		{"quoted time", `start_time: "2023-01-01T00:00:00Z"`, false},
		{"invalid number", "initial_capital: not_a_number", true},
		{"invalid time", "start_time: yesterday", true},
		{"zero capital", "initial_capital: 0", true},
		{"position size above one", "position_size: 1.5", true},
		{"negative commission", "commission: -0.1", true},
		{"unknown broker", "broker: robinhood", true},
		{"zero workers", "max_workers: 0", true},
		{"indicator without type", "indicators: [{params: [5]}]", true},
		{"end before start", "start_time: 2023-02-01\nend_time: 2023-01-01", true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := ParseConfig(tc.yaml)
			if tc.expectErr {
				suite.Error(err)
				suite.Equal(errors.ErrCodeBacktestConfigError, errors.GetCode(err))
				suite.True(errors.IsConfigurationError(err))

				return
			}

			suite.NoError(err)
		})
	}
}

func (suite *ConfigTestSuite) TestSimulatorConfig() {
	config := DefaultConfig()
	config.InitialCapital = 5000
	config.PositionSize = 0.25
	config.Commission = 0.01

	sim := config.SimulatorConfig()

	suite.Equal(5000.0, sim.InitialCapital)
	suite.Equal(0.25, sim.PositionSize)
	suite.InDelta(2.0, sim.Commission.Calculate(2, 100), 1e-12)

	config.Broker = commission_fee.BrokerZero
	suite.Equal(0.0, config.SimulatorConfig().Commission.Calculate(2, 100))
}
