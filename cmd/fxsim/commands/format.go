package commands

import (
	"fmt"

	"github.com/wonny/fxsim/backend/internal/simulation"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintRunHeader prints a formatted simulation run header
func PrintRunHeader(runID string, samples int, seed int64) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  FX Scenario Simulation (UIP + PPP)")
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Run ID    : %s\n", runID)
	fmt.Printf("  Samples   : %d per scenario\n", samples)
	if seed != 0 {
		fmt.Printf("  Seed      : %d\n", seed)
	} else {
		fmt.Println("  Seed      : (time-based)")
	}
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintSummaryTable prints the per-scenario summary table in catalog order
func PrintSummaryTable(rows []simulation.SummaryRow) {
	fmt.Println()
	fmt.Printf("  %-26s %10s %9s %10s %10s %10s %10s\n",
		"Escenario", "Media", "Std", "Min", "P5", "P95", "Max")
	PrintSeparator()
	for _, row := range rows {
		fmt.Printf("  %-26s %10.2f %9.2f %10.2f %10.2f %10.2f %10.2f\n",
			row.Scenario, row.Mean, row.StdDev, row.Min, row.P5, row.P95, row.Max)
	}
}

// PrintTailRiskTable prints the per-scenario VaR / Expected Shortfall table
func PrintTailRiskTable(rows []simulation.TailRiskRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  Tail Risk (confidence %.0f%%)\n", rows[0].Confidence*100)
	PrintSeparator()
	fmt.Printf("  %-26s %12s %12s\n", "Escenario", "VaR", "Exp.Shortfall")
	for _, row := range rows {
		fmt.Printf("  %-26s %12.2f %12.2f\n", row.Scenario, row.VaR, row.ExpectedShortfall)
	}
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}
