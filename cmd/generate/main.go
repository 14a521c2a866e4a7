package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "backtest-engine-v1-config.json"
	sampleConfigName = "backtest-engine-v1-config.yaml"
)

// sampleStrategyConfig mirrors strategy.Config with decoded params.
type sampleStrategyConfig struct {
	Type          strategy.Type `yaml:"type"`
	EngineVersion string        `yaml:"engine_version"`
	Params        any           `yaml:"params"`
}

// validatePaths checks that both output paths are set.
func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return nil
}

// validateSchemaName checks that the schema file is a json file.
func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if filepath.Ext(name) != ".json" {
		return fmt.Errorf("schema name %s must have .json extension", name)
	}

	return nil
}

// getSchemaReference returns the yaml-language-server comment pointing at schemaName.
func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// generateSchemaFile writes the JSON schema of the engine config.
func generateSchemaFile(config engine.BacktestEngineV1Config, schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	return writeFile(schemaPath, []byte(schemaJSON))
}

// generateSampleConfig writes config as YAML unless samplePath already exists.
func generateSampleConfig(config engine.BacktestEngineV1Config, samplePath string, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte(getSchemaReference(schemaName)), yamlBytes...)

	if err := writeFile(samplePath, yamlBytes); err != nil {
		return err
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}

func defaultParams(t strategy.Type) (any, error) {
	switch t {
	case strategy.TypeMovingAverageCrossover:
		return strategy.DefaultMovingAverageCrossoverConfig(), nil
	case strategy.TypeRSI:
		return strategy.DefaultRSIStrategyConfig(), nil
	default:
		return nil, fmt.Errorf("unsupported strategy type: %s", t)
	}
}

// generateStrategyFiles writes the params schema of t and, unless it exists, a strategy
// config holding the default params.
func generateStrategyFiles(t strategy.Type, dir string) error {
	name := strings.ReplaceAll(string(t), "_", "-")

	schema, err := strategy.GetParamsSchema(t)
	if err != nil {
		return fmt.Errorf("failed to generate %s params schema: %w", t, err)
	}

	if err := writeFile(filepath.Join(dir, "strategy-"+name+"-params.json"), []byte(schema)); err != nil {
		return err
	}

	samplePath := filepath.Join(dir, "strategy-"+name+".yaml")
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	params, err := defaultParams(t)
	if err != nil {
		return err
	}

	yamlBytes, err := yaml.Marshal(sampleStrategyConfig{
		Type:          t,
		EngineVersion: version.GetVersion(),
		Params:        params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s config to yaml: %w", t, err)
	}

	return writeFile(samplePath, yamlBytes)
}

func run(dir string) error {
	schemaPath := filepath.Join(dir, schemaName)
	sampleConfigPath := filepath.Join(dir, sampleConfigName)

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		return err
	}

	if err := validateSchemaName(schemaName); err != nil {
		return err
	}

	config := engine.DefaultConfig()

	if err := generateSchemaFile(config, schemaPath); err != nil {
		return err
	}

	if err := generateSampleConfig(config, sampleConfigPath, schemaName); err != nil {
		return err
	}

	for _, t := range strategy.AllTypes {
		if err := generateStrategyFiles(t.(strategy.Type), dir); err != nil {
			return err
		}
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	return nil
}

func main() {
	if err := run("./config"); err != nil {
		log.Fatal(err)
	}
}
