package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/fleet-tco/internal/config"
	"github.com/iwvelando/fleet-tco/internal/inventory"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", config: config.LoggingConfig{}},
		{name: "console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", config: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "invalid level", config: config.LoggingConfig{Level: "verbose"}, wantErr: true},
		{name: "invalid format", config: config.LoggingConfig{Format: "xml"}, wantErr: true},
		{name: "file output", config: config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "tco.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("initializeLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if logger != nil {
				_ = logger.Sync()
			}
		})
	}
}

func TestCalculateCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	doc := `
logging:
  level: error
scenarios:
  - name: Electric
    active: true
    project:
      duration: 12
      interestRate: 0.04
      discountRate: 0.025
      annualFleetDistance: 60000
    capitalItems:
      - name: Ebusco 3.0 12
        category: VEHICLE
        usefulLife: 12
        procurementCost: 370000
        costEscalation: 0.025
        quantity: 1
`
	if err := os.WriteFile(configPath, []byte(doc), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := calculateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", configPath, "--output-format", "csv"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	if !strings.Contains(out.String(), "Electric,Ebusco 3.0 12,VEHICLE,CAPEX,414515.36") {
		t.Errorf("unexpected CSV output:\n%s", out.String())
	}
}

func TestInitDBAndCalculateStored(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inventory.db")
	logLevel = "error"
	t.Cleanup(func() { logLevel = "" })

	initCmd := initDBCmd()
	initCmd.SetOut(&bytes.Buffer{})
	initCmd.SetArgs([]string{"--db", dbPath})
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("init-db failed: %v", err)
	}

	cmd := calculateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", dbPath, "--scenario", inventory.ExampleScenario, "--output-format", "pretty"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !strings.Contains(out.String(), "--- Results for scenario "+inventory.ExampleScenario+" ---") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	cmd = calculateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without --scenario")
	}
}

func TestEnvFileOverridesOutputFormat(t *testing.T) {
	// Unset for the test; t.Setenv restores the original value afterwards.
	t.Setenv("FLEET_TCO_OUTPUT_FORMAT", "")
	os.Unsetenv("FLEET_TCO_OUTPUT_FORMAT")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	doc := `
logging:
  level: error
output:
  format: pretty
scenarios:
  - name: Electric
    active: true
    project:
      duration: 12
      interestRate: 0.04
      discountRate: 0.025
      annualFleetDistance: 60000
    capitalItems:
      - name: Ebusco 3.0 12
        category: VEHICLE
        usefulLife: 12
        procurementCost: 370000
        costEscalation: 0.025
        quantity: 1
`
	if err := os.WriteFile(configPath, []byte(doc), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	dotenvPath := filepath.Join(dir, "fleet.env")
	if err := os.WriteFile(dotenvPath, []byte("FLEET_TCO_OUTPUT_FORMAT=csv\n"), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { envFile = ".env" })

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--env-file", dotenvPath, "calculate", "--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	if !strings.HasPrefix(out.String(), "scenario,item,category,kind,cost,specificCost") {
		t.Errorf("expected CSV output from the env file override, got:\n%s", out.String())
	}
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	t.Cleanup(func() { envFile = ".env" })

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env"), "version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Errorf("unexpected version output %q", out.String())
	}
}
