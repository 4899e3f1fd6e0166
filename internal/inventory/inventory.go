// Package inventory reads scenario catalogs, the project parameters and cost
// items of a fleet variant, from a SQLite database.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/fleet-tco/pkg/tco"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Inventory wraps the SQLite connection.
type Inventory struct {
	conn   *sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the database at dbPath and ensures the
// schema exists. If logger is nil, a no-op logger is used.
func Open(dbPath string, logger *zap.Logger) (*Inventory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on", dbPath)
	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	inv := &Inventory{conn: conn, logger: logger}
	if err := inv.initialize(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return inv, nil
}

func (inv *Inventory) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		duration INTEGER NOT NULL,
		interest_rate REAL NOT NULL,
		discount_rate REAL NOT NULL,
		annual_fleet_distance REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS capital_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		useful_life INTEGER NOT NULL,
		procurement_cost REAL NOT NULL,
		cost_escalation REAL NOT NULL DEFAULT 0,
		quantity INTEGER NOT NULL,
		FOREIGN KEY (scenario_id) REFERENCES scenarios(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS operating_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		unit_cost REAL NOT NULL,
		usage_amount REAL NOT NULL,
		cost_escalation REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (scenario_id) REFERENCES scenarios(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_capital_items_scenario ON capital_items(scenario_id);
	CREATE INDEX IF NOT EXISTS idx_operating_items_scenario ON operating_items(scenario_id);
	`

	_, err := inv.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (inv *Inventory) Close() error {
	return inv.conn.Close()
}

// Scenarios lists the stored scenario names in alphabetical order.
func (inv *Inventory) Scenarios(ctx context.Context) ([]string, error) {
	rows, err := inv.conn.QueryContext(ctx, `SELECT name FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SaveScenario stores the inputs under name, replacing any scenario of the
// same name. Inputs are validated before anything is written.
func (inv *Inventory) SaveScenario(ctx context.Context, name string, in tco.Inputs) error {
	if err := in.Parameters.Validate(); err != nil {
		return err
	}
	for _, item := range in.CapitalItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	for _, item := range in.OperatingItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	tx, err := inv.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scenarios WHERE name = ?`, name); err != nil {
		return err
	}

	p := in.Parameters
	result, err := tx.ExecContext(ctx,
		`INSERT INTO scenarios (name, duration, interest_rate, discount_rate, annual_fleet_distance) VALUES (?, ?, ?, ?, ?)`,
		name, p.Duration, p.InterestRate, p.DiscountRate, p.AnnualFleetDistance,
	)
	if err != nil {
		return err
	}
	scenarioID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	capitalStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO capital_items
		(scenario_id, name, category, useful_life, procurement_cost, cost_escalation, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer capitalStmt.Close()

	for _, item := range in.CapitalItems {
		if _, err := capitalStmt.ExecContext(ctx, scenarioID, item.Name, item.Category.String(),
			item.UsefulLife, item.ProcurementCost, item.CostEscalation, item.Quantity); err != nil {
			return err
		}
	}

	operatingStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO operating_items
		(scenario_id, name, category, unit_cost, usage_amount, cost_escalation)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer operatingStmt.Close()

	for _, item := range in.OperatingItems {
		if _, err := operatingStmt.ExecContext(ctx, scenarioID, item.Name, item.Category.String(),
			item.UnitCost, item.UsageAmount, item.CostEscalation); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	inv.logger.Debug(fmt.Sprintf("saved scenario %s with %d capital and %d operating items",
		name, len(in.CapitalItems), len(in.OperatingItems)),
		zap.String("op", "inventory.SaveScenario"),
	)
	return nil
}

// LoadScenario reads the parameters and items stored under name. Items come
// back in insertion order. A missing scenario is a ConfigurationError; stored
// values that violate the item invariants are a ValidationError.
func (inv *Inventory) LoadScenario(ctx context.Context, name string) (tco.Inputs, error) {
	var (
		in         tco.Inputs
		scenarioID int64
	)

	err := inv.conn.QueryRowContext(ctx,
		`SELECT id, duration, interest_rate, discount_rate, annual_fleet_distance FROM scenarios WHERE name = ?`, name,
	).Scan(&scenarioID, &in.Parameters.Duration, &in.Parameters.InterestRate, &in.Parameters.DiscountRate, &in.Parameters.AnnualFleetDistance)
	if errors.Is(err, sql.ErrNoRows) {
		return tco.Inputs{}, &tco.ConfigurationError{Key: "scenario " + name, Reason: "not found in inventory"}
	}
	if err != nil {
		return tco.Inputs{}, err
	}
	if err := in.Parameters.Validate(); err != nil {
		return tco.Inputs{}, err
	}

	in.CapitalItems, err = inv.capitalItems(ctx, scenarioID)
	if err != nil {
		return tco.Inputs{}, err
	}
	in.OperatingItems, err = inv.operatingItems(ctx, scenarioID)
	if err != nil {
		return tco.Inputs{}, err
	}

	inv.logger.Debug(fmt.Sprintf("loaded scenario %s with %d capital and %d operating items",
		name, len(in.CapitalItems), len(in.OperatingItems)),
		zap.String("op", "inventory.LoadScenario"),
	)
	return in, nil
}

func (inv *Inventory) capitalItems(ctx context.Context, scenarioID int64) ([]tco.CapitalCostItem, error) {
	rows, err := inv.conn.QueryContext(ctx, `
		SELECT name, category, useful_life, procurement_cost, cost_escalation, quantity
		FROM capital_items
		WHERE scenario_id = ?
		ORDER BY id
	`, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []tco.CapitalCostItem
	for rows.Next() {
		var (
			item     tco.CapitalCostItem
			category string
		)
		if err := rows.Scan(&item.Name, &category, &item.UsefulLife, &item.ProcurementCost, &item.CostEscalation, &item.Quantity); err != nil {
			return nil, err
		}
		if item.Category, err = tco.ParseCategory(category); err != nil {
			return nil, err
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (inv *Inventory) operatingItems(ctx context.Context, scenarioID int64) ([]tco.OperatingCostItem, error) {
	rows, err := inv.conn.QueryContext(ctx, `
		SELECT name, category, unit_cost, usage_amount, cost_escalation
		FROM operating_items
		WHERE scenario_id = ?
		ORDER BY id
	`, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []tco.OperatingCostItem
	for rows.Next() {
		var (
			item     tco.OperatingCostItem
			category string
		)
		if err := rows.Scan(&item.Name, &category, &item.UnitCost, &item.UsageAmount, &item.CostEscalation); err != nil {
			return nil, err
		}
		if item.Category, err = tco.ParseCategory(category); err != nil {
			return nil, err
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
