package output

import (
	"bytes"
	"fmt"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// ConsoleFormatter renders a human-readable projection table plus summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "ROTH CONVERSION PROJECTION")
	fmt.Fprintln(&buf, "================================")
	if result.Input != nil {
		fmt.Fprintf(&buf, "Strategy: %s  Filing: %s  Years: %d\n",
			result.Input.Strategy.Kind, result.Input.FilingStatus, result.Input.SimulationYears)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-4s %-4s %-14s %-14s %-12s %-10s %-12s %-14s %-14s %s\n",
		"Year", "Age", "Traditional", "Roth", "Conversion", "ConvTax", "RMD", "Wealth", "Baseline", "BE")
	for _, yr := range result.Years {
		breakEven := ""
		if yr.BreakEven {
			breakEven = "*"
		}
		fmt.Fprintf(&buf, "%-4d %-4d %-14s %-14s %-12s %-10s %-12s %-14s %-14s %s\n",
			yr.Year,
			yr.Age1,
			FormatCurrency(yr.TraditionalBalance),
			FormatCurrency(yr.RothBalance),
			FormatCurrency(yr.ConversionAmount),
			FormatCurrency(yr.ConversionTax),
			FormatCurrency(yr.RMDAmount),
			FormatCurrency(yr.TotalWealth),
			FormatCurrency(yr.NoConversionWealth),
			breakEven,
		)
	}

	s := result.Summary
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, "--------------------------------")
	fmt.Fprintf(&buf, "Total Converted:    %s\n", FormatCurrency(s.TotalConverted))
	fmt.Fprintf(&buf, "Total Taxes Paid:   %s\n", FormatCurrency(s.TotalTaxesPaid))
	fmt.Fprintf(&buf, "Final Wealth:       %s\n", FormatCurrency(s.FinalWealth))
	fmt.Fprintf(&buf, "Without Conversion: %s\n", FormatCurrency(s.FinalNoConversionWealth))
	if s.BreakEvenYear > 0 {
		fmt.Fprintf(&buf, "Break-Even Year:    %d\n", s.BreakEvenYear)
	} else {
		fmt.Fprintln(&buf, "Break-Even Year:    not reached")
	}
	return buf.Bytes(), nil
}
