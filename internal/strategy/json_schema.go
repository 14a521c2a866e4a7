package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// GetParamsSchema returns the JSON schema of the params block for the given strategy type.
func GetParamsSchema(t Type) (string, error) {
	switch t {
	case TypeMovingAverageCrossover:
		return ToJSONSchema(MovingAverageCrossoverConfig{})
	case TypeRSI:
		return ToJSONSchema(RSIStrategyConfig{})
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy type: %s", t)
	}
}
