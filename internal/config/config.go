// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into
// calculation inputs.
package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iwvelando/fleet-tco/internal/fleet"
	"github.com/iwvelando/fleet-tco/pkg/constants"
	"github.com/iwvelando/fleet-tco/pkg/tco"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fleet-tco.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Scenarios []Scenario
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Scenario holds the project parameters and cost items of one fleet variant.
type Scenario struct {
	Name           string
	Active         bool
	Project        Project
	CapitalItems   []CapitalItem
	OperatingItems []OperatingItem
	Fleet          *fleet.Config
}

// Project holds the scalar parameters of a scenario. Pointers distinguish a
// missing key from an explicit zero; whole-number fields are read as floats
// so fractional values can be rejected instead of truncated.
type Project struct {
	Duration            *float64 // years
	InterestRate        *float64
	DiscountRate        *float64
	AnnualFleetDistance *float64 // falls back to fleet.statistics.annualFleetMileage
}

// CapitalItem is the configured form of a tco.CapitalCostItem.
type CapitalItem struct {
	Name            string
	Category        string
	UsefulLife      *float64
	ProcurementCost *float64
	CostEscalation  float64
	Quantity        *float64
}

// OperatingItem is the configured form of a tco.OperatingCostItem.
type OperatingItem struct {
	Name           string
	Category       string
	UnitCost       *float64
	UsageAmount    *float64
	CostEscalation float64
}

// envKeys are the settings that FLEET_TCO_* environment variables override,
// e.g. FLEET_TCO_OUTPUT_FORMAT for output.format.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with FLEET_TCO override
// the logging and output settings.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, &tco.ConfigurationError{Key: key, Reason: err.Error()}
		}
	}

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// ParseConfiguration loads a configuration document held in memory. The
// configType is any type viper understands, e.g. "yaml" or "json".
func ParseConfiguration(data []byte, configType string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// decode rejects keys that do not map onto the Configuration structure.
func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.UnmarshalExact(&configuration); err != nil {
		return nil, &tco.ConfigurationError{Key: "configuration", Reason: fmt.Sprintf("unable to decode into struct, %s", err)}
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in configuration order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}
