package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// TAX MODEL ASSUMPTIONS:
//
// 1. Federal brackets: 2023 tables for all projection years, no inflation
//    indexing. Standard deduction: $13,850 single / $27,700 MFJ.
// 2. State tax: optional flat rate applied to GROSS income, not the
//    deduction-adjusted figure. The asymmetry with the federal side is
//    intentional.
// 3. Conversion tax is computed on the conversion amount in isolation, not
//    as the marginal increment on top of other income. See projection.go.

// TaxBracket is one row of a progressive federal bracket table. Cap is the
// upper taxable-income bound; the final bracket of a table is Unbounded.
type TaxBracket struct {
	Rate      decimal.Decimal
	Cap       decimal.Decimal
	Unbounded bool
	Label     string
}

// TaxCalculator holds the static bracket tables and standard deductions for
// both filing statuses.
type TaxCalculator struct {
	Year                    int
	BracketsSingle          []TaxBracket
	BracketsMFJ             []TaxBracket
	StandardDeductionSingle decimal.Decimal
	StandardDeductionMFJ    decimal.Decimal
}

// NewTaxCalculator2023 creates a tax calculator loaded with the 2023 federal
// tables.
func NewTaxCalculator2023() *TaxCalculator {
	return &TaxCalculator{
		Year:                    2023,
		StandardDeductionSingle: decimal.NewFromInt(13850),
		StandardDeductionMFJ:    decimal.NewFromInt(27700),
		BracketsSingle: []TaxBracket{
			{Rate: decimal.NewFromFloat(0.10), Cap: decimal.NewFromInt(11000), Label: "10%"},
			{Rate: decimal.NewFromFloat(0.12), Cap: decimal.NewFromInt(44725), Label: "12%"},
			{Rate: decimal.NewFromFloat(0.22), Cap: decimal.NewFromInt(95375), Label: "22%"},
			{Rate: decimal.NewFromFloat(0.24), Cap: decimal.NewFromInt(182100), Label: "24%"},
			{Rate: decimal.NewFromFloat(0.32), Cap: decimal.NewFromInt(231250), Label: "32%"},
			{Rate: decimal.NewFromFloat(0.35), Cap: decimal.NewFromInt(578125), Label: "35%"},
			{Rate: decimal.NewFromFloat(0.37), Unbounded: true, Label: "37%"},
		},
		BracketsMFJ: []TaxBracket{
			{Rate: decimal.NewFromFloat(0.10), Cap: decimal.NewFromInt(22000), Label: "10%"},
			{Rate: decimal.NewFromFloat(0.12), Cap: decimal.NewFromInt(89450), Label: "12%"},
			{Rate: decimal.NewFromFloat(0.22), Cap: decimal.NewFromInt(190750), Label: "22%"},
			{Rate: decimal.NewFromFloat(0.24), Cap: decimal.NewFromInt(364200), Label: "24%"},
			{Rate: decimal.NewFromFloat(0.32), Cap: decimal.NewFromInt(462500), Label: "32%"},
			{Rate: decimal.NewFromFloat(0.35), Cap: decimal.NewFromInt(693750), Label: "35%"},
			{Rate: decimal.NewFromFloat(0.37), Unbounded: true, Label: "37%"},
		},
	}
}

// BracketsFor returns the bracket table for a filing status. Unknown
// statuses fall back to single, keeping the calculator total over its
// inputs.
func (tc *TaxCalculator) BracketsFor(status domain.FilingStatus) []TaxBracket {
	if status == domain.FilingMarriedFilingJointly {
		return tc.BracketsMFJ
	}
	return tc.BracketsSingle
}

// StandardDeductionFor returns the standard deduction for a filing status.
func (tc *TaxCalculator) StandardDeductionFor(status domain.FilingStatus) decimal.Decimal {
	if status == domain.FilingMarriedFilingJointly {
		return tc.StandardDeductionMFJ
	}
	return tc.StandardDeductionSingle
}

// MarginalTax applies the progressive formula to an income against a bracket
// table: each bracket's full width is taxed at its rate until the remaining
// income fits under the current cap. Negative income is clamped to zero.
func MarginalTax(income decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, bracket := range brackets {
		if bracket.Unbounded || income.LessThanOrEqual(bracket.Cap) {
			tax = tax.Add(income.Sub(lower).Mul(bracket.Rate))
			break
		}
		tax = tax.Add(bracket.Cap.Sub(lower).Mul(bracket.Rate))
		lower = bracket.Cap
	}

	return tax
}

// MarginalRate returns the rate applied to the next dollar of income after
// the filing status's standard deduction, floored at zero.
func (tc *TaxCalculator) MarginalRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := income.Sub(tc.StandardDeductionFor(status))
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	brackets := tc.BracketsFor(status)
	for _, bracket := range brackets {
		if bracket.Unbounded || bracket.Cap.GreaterThanOrEqual(taxable) {
			return bracket.Rate
		}
	}
	// Tables always end in an unbounded bracket; unreachable with the
	// built-in constants.
	return brackets[len(brackets)-1].Rate
}

// TotalTax computes federal tax on (income - standard deduction, floored at
// zero) plus flat state tax on the gross income. A nil state rate disables
// the state component.
func (tc *TaxCalculator) TotalTax(income decimal.Decimal, stateRate *decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := income.Sub(tc.StandardDeductionFor(status))
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	tax := MarginalTax(taxable, tc.BracketsFor(status))
	if stateRate != nil {
		tax = tax.Add(income.Mul(*stateRate))
	}
	return tax
}

// conversionFallbackCeiling caps the 10%-of-balance fallback when no bracket
// matches the requested target rate.
var conversionFallbackCeiling = decimal.NewFromInt(50000)

// OptimalConversionAmount sizes a conversion that fills up to, but not
// beyond, the bracket carrying the target rate.
//
// When the current marginal rate is already at or below the target, the
// result is the room left in the matching bracket measured against gross
// income, capped by the traditional balance; with no matching bracket it
// falls back to 10% of the balance, at most $50,000. When the current rate
// exceeds the target, room is accumulated across every bracket at or below
// the target rate, each cap inflated by the standard deduction against a
// running income cursor, capped by the balance.
func (tc *TaxCalculator) OptimalConversionAmount(income, traditionalBalance decimal.Decimal, targetRate decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if traditionalBalance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	brackets := tc.BracketsFor(status)
	currentRate := tc.MarginalRate(income, status)

	if currentRate.LessThanOrEqual(targetRate) {
		for _, bracket := range brackets {
			if !bracket.Rate.Equal(targetRate) {
				continue
			}
			if bracket.Unbounded {
				return traditionalBalance
			}
			room := bracket.Cap.Sub(income)
			if room.LessThan(decimal.Zero) {
				room = decimal.Zero
			}
			return decimal.Min(room, traditionalBalance)
		}
		// No bracket carries the target rate: conservative fallback.
		fallback := traditionalBalance.Mul(decimal.NewFromFloat(0.10))
		return decimal.Min(fallback, conversionFallbackCeiling)
	}

	// Current rate above target: sum the remaining deduction-inflated room
	// in every bracket at or below the target rate.
	stdDed := tc.StandardDeductionFor(status)
	cursor := income
	total := decimal.Zero
	for _, bracket := range brackets {
		if bracket.Unbounded || bracket.Rate.GreaterThan(targetRate) {
			continue
		}
		effectiveCap := bracket.Cap.Add(stdDed)
		room := effectiveCap.Sub(cursor)
		if room.GreaterThan(decimal.Zero) {
			total = total.Add(room)
			cursor = effectiveCap
		}
	}
	return decimal.Min(total, traditionalBalance)
}

// BracketRoomBreakdown projects the bracket table against a current income:
// one row per bracket with the room remaining below its cap and the
// conversion that would exactly fill it. Read-only display data.
func (tc *TaxCalculator) BracketRoomBreakdown(income decimal.Decimal, status domain.FilingStatus) []domain.BracketRoom {
	brackets := tc.BracketsFor(status)
	rooms := make([]domain.BracketRoom, len(brackets))
	for i, bracket := range brackets {
		row := domain.BracketRoom{
			Index:     i,
			Rate:      bracket.Rate,
			Cap:       bracket.Cap,
			Unbounded: bracket.Unbounded,
		}
		if !bracket.Unbounded {
			room := bracket.Cap.Sub(income)
			if room.LessThan(decimal.Zero) {
				room = decimal.Zero
			}
			row.Room = room
			row.SuggestedConversion = room
		}
		rooms[i] = row
	}
	return rooms
}
