package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/fleet-tco/internal/config"
	"github.com/iwvelando/fleet-tco/internal/evaluate"
	"github.com/iwvelando/fleet-tco/internal/inventory"
	"github.com/iwvelando/fleet-tco/internal/report"
	"github.com/iwvelando/fleet-tco/internal/server"
	"github.com/iwvelando/fleet-tco/pkg/constants"
	"github.com/iwvelando/fleet-tco/pkg/tco"
	"github.com/iwvelando/fleet-tco/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	logLevel string
	envFile  string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootCmd assembles the command tree. The dotenv file is loaded before any
// subcommand runs, so its FLEET_TCO_* entries act as environment overrides.
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleet-tco",
		Short: "Total cost of ownership of bus fleets",
		Long: `Calculates the discounted total cost of ownership of a bus fleet over a
project horizon: annuitized capital cost with replacements, escalated
operating cost, and a breakdown by cost category.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with FLEET_TCO_* overrides")

	root.AddCommand(calculateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initDBCmd())
	root.AddCommand(versionCmd())
	return root
}

// calculateCmd computes the TCO of the configured scenarios, or of one
// scenario stored in the inventory.
func calculateCmd() *cobra.Command {
	var (
		configPath   string
		dbPath       string
		scenarioName string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the TCO of the active scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := &config.Configuration{}
			if dbPath == "" {
				var err error
				conf, err = config.LoadConfiguration(configPath)
				if err != nil {
					return fmt.Errorf("failed to load configuration at %s: %w", configPath, err)
				}
			} else if scenarioName == "" {
				return errors.New("--scenario is required with --db")
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				logger.Error(err.Error(),
					zap.String("op", "main.calculate"),
				)
				return err
			}

			var outcomes []evaluate.Outcome
			if dbPath != "" {
				outcomes, err = calculateStored(cmd.Context(), logger, dbPath, scenarioName)
			} else {
				for _, warning := range conf.ValidateConfiguration() {
					logger.Warn("Configuration warning: "+warning,
						zap.String("op", "main.calculate"),
					)
				}
				outcomes, err = evaluate.Evaluate(cmd.Context(), logger, *conf)
			}
			if err != nil {
				logger.Error("failed to calculate TCO",
					zap.String("op", "main.calculate"),
					zap.Error(err),
				)
				return err
			}

			return report.Write(cmd.OutOrStdout(), format, outcomes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVar(&dbPath, "db", "", "read the scenario from this SQLite inventory instead of a config file")
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "inventory scenario name (with --db)")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "o", "", "output format override: pretty, csv, json")
	return cmd
}

func calculateStored(ctx context.Context, logger *zap.Logger, dbPath, name string) ([]evaluate.Outcome, error) {
	inv, err := inventory.Open(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer inv.Close()

	in, err := inv.LoadScenario(ctx, name)
	if err != nil {
		return nil, err
	}

	result, err := tco.NewCalculator(logger.With(zap.String("scenario", name))).CalculateInputs(in)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	return []evaluate.Outcome{{Name: name, Result: result}}, nil
}

// serveCmd starts the HTTP API.
func serveCmd() *cobra.Command {
	var (
		serverConfigPath string
		address          string
		dbPath           string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if dbPath != "" {
				cfg.Database = dbPath
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			var catalog server.Catalog
			if cfg.Database != "" {
				inv, err := inventory.Open(cfg.Database, logger)
				if err != nil {
					return fmt.Errorf("database error: %w", err)
				}
				defer inv.Close()
				catalog = inv
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version, catalog)
			return server.Serve(ctx, logger, cfg, handler)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address override")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite inventory serving /api/scenarios")
	return cmd
}

// initDBCmd creates the inventory schema and stores the example scenario.
func initDBCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the inventory database and seed an example scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initializeLogger(config.LoggingConfig{}, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			inv, err := inventory.Open(dbPath, logger)
			if err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			defer inv.Close()

			if err := inv.Seed(cmd.Context()); err != nil {
				return fmt.Errorf("failed to seed inventory: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s with scenario %q\n", dbPath, inventory.ExampleScenario)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", constants.DefaultDatabaseFile, "path to SQLite database")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
