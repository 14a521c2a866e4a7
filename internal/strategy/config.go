package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Type identifies a strategy implementation in a configuration file.
type Type string

const (
	TypeMovingAverageCrossover Type = "ma_crossover"
	TypeRSI                    Type = "rsi"
)

// AllTypes lists every strategy type, in the form used by the JSON schema enum.
var AllTypes = []any{
	TypeMovingAverageCrossover,
	TypeRSI,
}

// Config is the YAML document describing one strategy:
//
//	type: ma_crossover
//	engine_version: v1.0.0
//	params:
//	  fast_window: 5
//	  slow_window: 20
//
// Omitted params fall back to the strategy defaults.
type Config struct {
	Type          Type      `yaml:"type" validate:"required,oneof=ma_crossover rsi"`
	EngineVersion string    `yaml:"engine_version,omitempty"`
	Params        yaml.Node `yaml:"params,omitempty"`
}

// ParseConfig decodes and validates a strategy configuration document.
func ParseConfig(content string) (Config, error) {
	var config Config

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to parse strategy config", err)
	}

	if err := validateConfig("strategy", config); err != nil {
		return Config{}, err
	}

	if config.EngineVersion != "" {
		if err := version.CheckVersionCompatibility(version.GetVersion(), config.EngineVersion); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeVersionMismatch, "strategy config targets an incompatible engine", err)
		}
	}

	return config, nil
}

// NewFromConfig builds the SignalGenerator described by a YAML configuration document.
func NewFromConfig(content string) (SignalGenerator, error) {
	config, err := ParseConfig(content)
	if err != nil {
		return nil, err
	}

	switch config.Type {
	case TypeMovingAverageCrossover:
		params := DefaultMovingAverageCrossoverConfig()
		if err := decodeParams(config.Params, &params); err != nil {
			return nil, err
		}

		return NewMovingAverageCrossoverFromConfig(params)
	case TypeRSI:
		params := DefaultRSIStrategyConfig()
		if err := decodeParams(config.Params, &params); err != nil {
			return nil, err
		}

		return NewRSIStrategyFromConfig(params)
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy type: %s", config.Type)
	}
}

func decodeParams(node yaml.Node, out any) error {
	if node.IsZero() {
		return nil
	}

	if err := node.Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to decode strategy params", err)
	}

	return nil
}
