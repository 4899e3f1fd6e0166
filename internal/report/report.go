// Package report renders calculation outcomes for people and machines.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/fleet-tco/internal/evaluate"
	"github.com/iwvelando/fleet-tco/pkg/constants"
	"github.com/iwvelando/fleet-tco/pkg/mathutil"
	"github.com/iwvelando/fleet-tco/pkg/tco"
	"github.com/iwvelando/fleet-tco/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scenario is the exported view of one outcome.
type Scenario struct {
	Name                       string                   `json:"name"`
	Result                     *tco.Result              `json:"result"`
	CostByCategoryWithoutStaff map[tco.Category]float64 `json:"costByCategoryWithoutStaff"`
}

// Report is the JSON document produced for a set of outcomes.
type Report struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Build assembles the report for the given outcomes.
func Build(outcomes []evaluate.Outcome) Report {
	report := Report{Scenarios: make([]Scenario, 0, len(outcomes))}
	for _, outcome := range outcomes {
		report.Scenarios = append(report.Scenarios, Scenario{
			Name:                       outcome.Name,
			Result:                     outcome.Result,
			CostByCategoryWithoutStaff: outcome.Result.CostByCategoryWithoutStaff(),
		})
	}
	return report
}

// Write renders the outcomes in the named format.
func Write(w io.Writer, format string, outcomes []evaluate.Outcome) error {
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, outcomes)
	case constants.OutputFormatCSV:
		return CsvFormat(w, outcomes)
	case constants.OutputFormatJSON:
		return JSONFormat(w, outcomes)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, outcomes []evaluate.Outcome) error {
	p := message.NewPrinter(language.English)
	for i, outcome := range outcomes {
		r := outcome.Result
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", outcome.Name)
		_, _ = p.Fprintf(w, "Duration: %d years | Annual distance: %.0f km | Run: %s\n",
			r.Parameters.Duration, r.Parameters.AnnualFleetDistance, r.RunID)
		_, _ = fmt.Fprintf(w, "Item                            | Category        | Kind  | Cost              | Per km\n")
		_, _ = fmt.Fprintf(w, "____                            | ________        | ____  | ____              | ______\n")
		for _, item := range r.Items {
			_, _ = p.Fprintf(w, "%-31s | %-15s | %-5s | %17.2f | %.4f\n",
				item.Name, item.Category, item.Kind, item.Cost, item.SpecificCost)
		}

		_, _ = fmt.Fprintf(w, "\nCategory        | Per km     | Without staff\n")
		_, _ = fmt.Fprintf(w, "________        | ______     | _____________\n")
		withoutStaff := r.CostByCategoryWithoutStaff()
		for _, category := range r.PresentCategories() {
			without := "-"
			if cost, ok := withoutStaff[category]; ok {
				without = p.Sprintf("%.4f", cost)
			}
			_, _ = p.Fprintf(w, "%-15s | %10.4f | %s\n", category, r.CostByCategory[category], without)
		}

		_, _ = p.Fprintf(w, "\nCapital cost:   $%.2f\n", r.TotalCapitalCost)
		_, _ = p.Fprintf(w, "Operating cost: $%.2f\n", r.TotalOperatingCost)
		_, _ = p.Fprintf(w, "Total cost:     $%.2f\n", r.TotalCostOverDuration)
		_, _ = p.Fprintf(w, "Annual cost:    $%.2f\n", r.AnnualCost)
		_, _ = p.Fprintf(w, "Cost per km:    $%.4f\n", r.SpecificCost)
		if len(outcomes) > 1 && i < len(outcomes)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

// CsvFormat outputs the per-item breakdown of every scenario followed by its
// totals, one record per line.
func CsvFormat(w io.Writer, outcomes []evaluate.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scenario", "item", "category", "kind", "cost", "specificCost"}); err != nil {
		return err
	}
	for _, outcome := range outcomes {
		r := outcome.Result
		for _, item := range r.Items {
			record := []string{outcome.Name, item.Name, item.Category.String(), item.Kind.String(),
				formatCurrency(item.Cost), formatSpecific(item.SpecificCost)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		totals := []struct {
			name  string
			kind  string
			value float64
		}{
			{"TOTAL", "", r.TotalCostOverDuration},
			{"TOTAL", tco.KindCapital.String(), r.TotalCapitalCost},
			{"TOTAL", tco.KindOperating.String(), r.TotalOperatingCost},
			{"ANNUAL", "", r.AnnualCost},
		}
		for _, total := range totals {
			specific := ""
			if total.name == "TOTAL" && total.kind == "" {
				specific = formatSpecific(r.SpecificCost)
			}
			if err := cw.Write([]string{outcome.Name, total.name, "", total.kind, formatCurrency(total.value), specific}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(w io.Writer, outcomes []evaluate.Outcome) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Build(outcomes))
}

func formatCurrency(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64)
}

// formatSpecific keeps every digit; per-km costs of single items are often
// below one cent.
func formatSpecific(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
