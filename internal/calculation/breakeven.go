package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// BreakEvenCrossover pinpoints where the conversion track's wealth overtakes
// the no-conversion baseline, interpolated within the crossing year.
type BreakEvenCrossover struct {
	// Year is the first whole projection year in which the conversion track
	// ends ahead of the baseline.
	Year int

	// Fraction is the interpolated position of the crossing within the gap
	// between Year-1 and Year, in [0, 1).
	Fraction decimal.Decimal

	// WealthAtCrossover is the conversion track's interpolated wealth at the
	// crossing point.
	WealthAtCrossover decimal.Decimal
}

// FirstBreakEvenYear returns the first projection year whose conversion-track
// wealth strictly exceeds the baseline, or 0 when the series never crosses.
func FirstBreakEvenYear(years []domain.YearResult) int {
	for _, yr := range years {
		if yr.BreakEven {
			return yr.Year
		}
	}
	return 0
}

// CumulativeBreakEven locates the break-even crossing with sub-year
// precision. The wealth gap (conversion minus baseline) starts negative by
// the cost of the conversion tax; the crossing is where it changes sign.
// Returns false when the series never reaches break-even.
func CumulativeBreakEven(years []domain.YearResult) (BreakEvenCrossover, bool) {
	prevGap := decimal.Zero
	for i, yr := range years {
		gap := yr.TotalWealth.Sub(yr.NoConversionWealth)
		if gap.GreaterThan(decimal.Zero) {
			crossing := BreakEvenCrossover{Year: yr.Year}
			if i == 0 {
				crossing.WealthAtCrossover = yr.TotalWealth
				return crossing, true
			}
			// Linear interpolation across the sign change.
			span := gap.Sub(prevGap)
			if span.GreaterThan(decimal.Zero) {
				crossing.Fraction = prevGap.Neg().Div(span)
			}
			prevWealth := years[i-1].TotalWealth
			crossing.WealthAtCrossover = prevWealth.Add(yr.TotalWealth.Sub(prevWealth).Mul(crossing.Fraction))
			return crossing, true
		}
		prevGap = gap
	}
	return BreakEvenCrossover{}, false
}
