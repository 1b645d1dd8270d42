package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// ProjectionEngine orchestrates the deterministic year-by-year projection.
type ProjectionEngine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewProjectionEngine creates a projection engine with current-year tax
// tables and a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		TaxCalc: NewTaxCalculator2023(),
		Logger:  &NopLogger{},
	}
}

// SetLogger installs a logger. Passing nil restores the no-op logger.
func (pe *ProjectionEngine) SetLogger(logger Logger) {
	if logger == nil {
		logger = &NopLogger{}
	}
	pe.Logger = logger
}

// RunSimulation runs the full projection for one input and derives the
// scenario summary from the year series.
func (pe *ProjectionEngine) RunSimulation(ctx context.Context, in *domain.SimulationInput) (*domain.SimulationResult, error) {
	if in == nil {
		return nil, fmt.Errorf("simulation input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("simulation canceled: %w", err)
	}

	pe.Logger.Infof("running projection: strategy=%s years=%d filing=%s",
		in.Strategy.Kind, in.SimulationYears, in.FilingStatus)

	years := pe.GenerateProjection(in)

	result := &domain.SimulationResult{
		Input:   in,
		Years:   years,
		Summary: summarize(years),
	}

	pe.Logger.Infof("projection complete: finalWealth=%s baseline=%s breakEvenYear=%d",
		result.Summary.FinalWealth.StringFixed(2),
		result.Summary.FinalNoConversionWealth.StringFixed(2),
		result.Summary.BreakEvenYear)

	return result, nil
}

func summarize(years []domain.YearResult) domain.SimulationSummary {
	var summary domain.SimulationSummary
	if len(years) == 0 {
		return summary
	}

	totalConverted := decimal.Zero
	for _, yr := range years {
		if summary.BreakEvenYear == 0 && yr.BreakEven {
			summary.BreakEvenYear = yr.Year
		}
		totalConverted = totalConverted.Add(yr.ConversionAmount)
	}

	final := years[len(years)-1]
	summary.FinalWealth = final.TotalWealth
	summary.FinalNoConversionWealth = final.NoConversionWealth
	summary.TotalTaxesPaid = final.CumulativeTax
	summary.TotalConverted = totalConverted
	summary.FinalTraditionalBalance = final.TraditionalBalance
	summary.FinalRothBalance = final.RothBalance
	return summary
}
