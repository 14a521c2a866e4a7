package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/backtest"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1Config struct {
	InitialCapital   float64                    `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting capital of every run,minimum=0,default=10000"`
	PositionSize     float64                    `yaml:"position_size" json:"position_size" validate:"gt=0,lte=1" jsonschema:"title=Position Size,description=Fraction of capital committed per position; recorded in the stats,minimum=0,maximum=1,default=1"`
	Commission       float64                    `yaml:"commission" json:"commission" validate:"gte=0" jsonschema:"title=Commission,description=Commission rate applied to the traded notional by the percentage broker,minimum=0,default=0"`
	Broker           commission_fee.Broker      `yaml:"broker" json:"broker" validate:"oneof=percentage interactive_broker zero_commission" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
	StartTime        optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime          optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
	AddIndicators    bool                       `yaml:"add_indicators" json:"add_indicators" jsonschema:"title=Add Indicators,description=Attach every registered indicator to the price series before running the strategies,default=false"`
	Indicators       []IndicatorConfig          `yaml:"indicators" json:"indicators" validate:"dive" jsonschema:"title=Indicators,description=Extra indicators attached to every price series"`
	MaxWorkers       int                        `yaml:"max_workers" json:"max_workers" validate:"gt=0" jsonschema:"title=Max Workers,description=Number of strategies evaluated in parallel,minimum=1,default=4"`
	DecimalPrecision int                        `yaml:"decimal_precision" json:"decimal_precision" validate:"gte=0,lte=12" jsonschema:"title=Decimal Precision,description=Number of decimals kept in the stats file,minimum=0,maximum=12,default=6"`
	Columns          datasource.ColumnMapping   `yaml:"columns" json:"columns" jsonschema:"title=Columns,description=Names of the price columns in the data files"`
}

// IndicatorConfig attaches one registered indicator, configured with positional params.
type IndicatorConfig struct {
	Type   types.IndicatorType `yaml:"type" json:"type" validate:"required" jsonschema:"title=Type,enum=sma,enum=ema,enum=rsi,enum=macd,enum=bollinger_bands,enum=atr"`
	Params []any               `yaml:"params,omitempty" json:"params,omitempty" jsonschema:"title=Params,description=Positional parameters such as the period"`
}

// UnmarshalYAML implements yaml.Unmarshaler. Omitted fields keep their DefaultConfig value.
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type Config struct {
		InitialCapital   *float64                  `yaml:"initial_capital"`
		PositionSize     *float64                  `yaml:"position_size"`
		Commission       *float64                  `yaml:"commission"`
		Broker           *commission_fee.Broker    `yaml:"broker"`
		StartTime        *string                   `yaml:"start_time"`
		EndTime          *string                   `yaml:"end_time"`
		AddIndicators    *bool                     `yaml:"add_indicators"`
		Indicators       []IndicatorConfig         `yaml:"indicators"`
		MaxWorkers       *int                      `yaml:"max_workers"`
		DecimalPrecision *int                      `yaml:"decimal_precision"`
		Columns          *datasource.ColumnMapping `yaml:"columns"`
	}

	var config Config
	if err := value.Decode(&config); err != nil {
		return err
	}

	*c = DefaultConfig()

	if config.InitialCapital != nil {
		c.InitialCapital = *config.InitialCapital
	}

	if config.PositionSize != nil {
		c.PositionSize = *config.PositionSize
	}

	if config.Commission != nil {
		c.Commission = *config.Commission
	}

	if config.Broker != nil {
		c.Broker = *config.Broker
	}

	if config.StartTime != nil {
		t, err := parseTime(*config.StartTime)
		if err != nil {
			return err
		}

		c.StartTime = optional.Some(t)
	}

	if config.EndTime != nil {
		t, err := parseTime(*config.EndTime)
		if err != nil {
			return err
		}

		c.EndTime = optional.Some(t)
	}

	if config.AddIndicators != nil {
		c.AddIndicators = *config.AddIndicators
	}

	if config.Indicators != nil {
		c.Indicators = config.Indicators
	}

	if config.MaxWorkers != nil {
		c.MaxWorkers = *config.MaxWorkers
	}

	if config.DecimalPrecision != nil {
		c.DecimalPrecision = *config.DecimalPrecision
	}

	if config.Columns != nil {
		c.Columns = *config.Columns
	}

	return nil
}

// MarshalYAML implements yaml.Marshaler. Unset times are omitted so the output can be
// decoded again.
func (c BacktestEngineV1Config) MarshalYAML() (any, error) {
	type Config struct {
		InitialCapital   float64                  `yaml:"initial_capital"`
		PositionSize     float64                  `yaml:"position_size"`
		Commission       float64                  `yaml:"commission"`
		Broker           commission_fee.Broker    `yaml:"broker"`
		StartTime        string                   `yaml:"start_time,omitempty"`
		EndTime          string                   `yaml:"end_time,omitempty"`
		AddIndicators    bool                     `yaml:"add_indicators"`
		Indicators       []IndicatorConfig        `yaml:"indicators,omitempty"`
		MaxWorkers       int                      `yaml:"max_workers"`
		DecimalPrecision int                      `yaml:"decimal_precision"`
		Columns          datasource.ColumnMapping `yaml:"columns"`
	}

	config := Config{
		InitialCapital:   c.InitialCapital,
		PositionSize:     c.PositionSize,
		Commission:       c.Commission,
		Broker:           c.Broker,
		AddIndicators:    c.AddIndicators,
		Indicators:       c.Indicators,
		MaxWorkers:       c.MaxWorkers,
		DecimalPrecision: c.DecimalPrecision,
		Columns:          c.Columns,
	}

	if c.StartTime.IsSome() {
		config.StartTime = c.StartTime.Unwrap().Format(time.RFC3339)
	}

	if c.EndTime.IsSome() {
		config.EndTime = c.EndTime.Unwrap().Format(time.RFC3339)
	}

	return config, nil
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeBacktestConfigError, "invalid time %q, expected RFC 3339 or YYYY-MM-DD", value)
}

// ParseConfig decodes and validates an engine configuration document.
func ParseConfig(content string) (BacktestEngineV1Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		if errors.HasCode(err, errors.ErrCodeBacktestConfigError) {
			return BacktestEngineV1Config{}, err
		}

		return BacktestEngineV1Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	if err := config.Validate(); err != nil {
		return BacktestEngineV1Config{}, err
	}

	return config, nil
}

var validate = validator.New()

// Validate checks the field constraints and the time range.
func (c BacktestEngineV1Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeBacktestConfigError, "end_time is before start_time")
	}

	return nil
}

// SimulatorConfig converts the engine configuration into the per run simulator settings.
func (c BacktestEngineV1Config) SimulatorConfig() backtest.SimulatorConfig {
	return backtest.SimulatorConfig{
		InitialCapital: c.InitialCapital,
		PositionSize:   c.PositionSize,
		Commission:     commission_fee.GetCommissionFeeHandler(c.Broker, c.Commission),
	}
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "commission_fee.Broker") {
				return &jsonschema.Schema{
					Type:    "string",
					Enum:    commission_fee.AllBrokers,
					Default: commission_fee.BrokerPercentage,
				}
			}

			return nil
		},
	}

	// Generate schema from BacktestEngineV1Config struct
	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns the configuration used for every omitted field.
func DefaultConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital:   10000,
		PositionSize:     1,
		Commission:       0,
		Broker:           commission_fee.BrokerPercentage,
		StartTime:        optional.None[time.Time](),
		EndTime:          optional.None[time.Time](),
		AddIndicators:    false,
		MaxWorkers:       4,
		DecimalPrecision: 6,
		Columns:          datasource.DefaultColumnMapping(),
	}
}

func TestConfig(startTime time.Time, endTime time.Time, broker commission_fee.Broker) BacktestEngineV1Config {
	config := DefaultConfig()
	config.Broker = broker
	config.StartTime = optional.Some(startTime)
	config.EndTime = optional.Some(endTime)

	return config
}
