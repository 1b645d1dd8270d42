package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// accountState carries the balances of one projection track between years.
// The same state type and step function drive both the live track and the
// shadow no-conversion baseline; only the conversion amount differs.
type accountState struct {
	traditional decimal.Decimal
	roth        decimal.Decimal
	taxable     decimal.Decimal
	hasTaxable  bool
}

func newAccountState(in *domain.SimulationInput) accountState {
	state := accountState{
		traditional: in.TraditionalBalance,
		roth:        in.RothBalance,
	}
	if in.TaxableBalance != nil {
		state.taxable = *in.TaxableBalance
		state.hasTaxable = true
	}
	return state
}

// totalWealth sums the track's after-tax wealth. A negative taxable balance
// persists in the state but is floored at zero here.
func (s *accountState) totalWealth() decimal.Decimal {
	wealth := s.traditional.Add(s.roth)
	if s.hasTaxable && s.taxable.GreaterThan(decimal.Zero) {
		wealth = wealth.Add(s.taxable)
	}
	return wealth
}

// stepOutcome reports the taxable events of one advanced year.
type stepOutcome struct {
	conversion    decimal.Decimal
	conversionTax decimal.Decimal
	rmdAmount     decimal.Decimal
	rmdTax        decimal.Decimal
}

// advanceYear applies one year's transition to a track, in fixed order:
// conversion transfer, conversion tax, RMD, RMD tax, growth. The baseline
// track passes a zero conversion and follows the identical sequence.
func (pe *ProjectionEngine) advanceYear(state *accountState, in *domain.SimulationInput, conversion decimal.Decimal, retired bool, age int) stepOutcome {
	var out stepOutcome

	// Conversion is a balance transfer: wealth-neutral until its tax is
	// debited. Withdrawals floor at the remaining balance, never negative.
	conversion = decimal.Min(conversion, state.traditional)
	if conversion.LessThan(decimal.Zero) {
		conversion = decimal.Zero
	}
	if conversion.GreaterThan(decimal.Zero) {
		out.conversion = conversion
		out.conversionTax = pe.TaxCalc.TotalTax(conversion, in.StateRate, in.FilingStatus)
		state.traditional = state.traditional.Sub(conversion)
		state.roth = state.roth.Add(conversion)
		if state.hasTaxable {
			// May drive the taxable account negative; that persists.
			state.taxable = state.taxable.Sub(out.conversionTax)
		}
	}

	// RMD on the post-conversion traditional balance.
	if retired && age >= RMDStartAge && state.traditional.GreaterThan(decimal.Zero) {
		rmd := decimal.Min(RMDAmount(state.traditional, age), state.traditional)
		out.rmdAmount = rmd
		out.rmdTax = pe.TaxCalc.TotalTax(rmd, in.StateRate, in.FilingStatus)
		state.traditional = state.traditional.Sub(rmd)
		if state.hasTaxable {
			state.taxable = state.taxable.Sub(out.rmdTax)
		}
	}

	// Growth. A nil return rate skips the step entirely, which is distinct
	// from an explicit 0% rate; rates must be strictly positive to apply.
	if in.ReturnRate != nil && in.ReturnRate.GreaterThan(decimal.Zero) {
		factor := decimal.NewFromInt(1).Add(*in.ReturnRate)
		state.traditional = state.traditional.Mul(factor)
		state.roth = state.roth.Mul(factor)
	}
	if state.hasTaxable && in.TaxableYield != nil {
		state.taxable = state.taxable.Mul(decimal.NewFromInt(1).Add(*in.TaxableYield))
	}

	return out
}

// conversionForYear dispatches on the strategy variant to size this year's
// conversion against the live traditional balance. oneTimeFired tracks the
// single firing of the one-time strategy across years.
func (pe *ProjectionEngine) conversionForYear(in *domain.SimulationInput, state *accountState, retired bool, income decimal.Decimal, oneTimeFired *bool) decimal.Decimal {
	switch in.Strategy.Kind {
	case domain.StrategyOneTime:
		if *oneTimeFired {
			return decimal.Zero
		}
		*oneTimeFired = true
		return decimal.Min(in.Strategy.OneTimeAmount, state.traditional)

	case domain.StrategyAnnual:
		cap := state.traditional
		if in.Strategy.PercentOfBalance != nil {
			cap = state.traditional.Mul(*in.Strategy.PercentOfBalance)
		}
		return decimal.Min(in.Strategy.AnnualAmount, cap)

	case domain.StrategyBracketOptimization:
		// Retirees never convert under this strategy.
		if retired {
			return decimal.Zero
		}
		return pe.TaxCalc.OptimalConversionAmount(income, state.traditional, in.Strategy.TargetBracketRate, in.FilingStatus)
	}
	return decimal.Zero
}

// GenerateProjection runs the year-stepper: a strict left-fold over years
// 1..N carrying the live and no-conversion tracks, emitting one YearResult
// per year in order. It is total over valid-shaped inputs; all numeric edge
// cases clamp or floor rather than fail.
func (pe *ProjectionEngine) GenerateProjection(in *domain.SimulationInput) []domain.YearResult {
	years := in.SimulationYears
	if years <= 0 {
		return nil
	}
	if years > domain.MaxSimulationYears {
		years = domain.MaxSimulationYears
	}

	live := newAccountState(in)
	baseline := newAccountState(in)
	cumulativeTax := decimal.Zero
	oneTimeFired := false

	results := make([]domain.YearResult, 0, years)
	for year := 1; year <= years; year++ {
		age1 := in.Age1 + year - 1
		age2 := in.Age2 + year - 1
		retired := age1 >= in.RetirementAge
		income := in.IncomeForYear(year, retired)

		conversion := pe.conversionForYear(in, &live, retired, income, &oneTimeFired)

		// Bracket placement considers the combined income; the dollar tax
		// (inside advanceYear) is computed on the conversion in isolation.
		marginalRate := pe.TaxCalc.MarginalRate(income.Add(conversion), in.FilingStatus)

		out := pe.advanceYear(&live, in, conversion, retired, age1)
		pe.advanceYear(&baseline, in, decimal.Zero, retired, age1)

		cumulativeTax = cumulativeTax.Add(out.conversionTax).Add(out.rmdTax)
		wealth := live.totalWealth()
		baselineWealth := baseline.totalWealth()

		pe.Logger.Debugf("year %d: age=%d retired=%t conversion=%s tax=%s rmd=%s wealth=%s baseline=%s",
			year, age1, retired, out.conversion.StringFixed(2), out.conversionTax.StringFixed(2),
			out.rmdAmount.StringFixed(2), wealth.StringFixed(2), baselineWealth.StringFixed(2))

		results = append(results, domain.YearResult{
			Year:               year,
			Age1:               age1,
			Age2:               age2,
			TraditionalBalance: live.traditional,
			RothBalance:        live.roth,
			TaxableBalance:     live.taxable,
			ConversionAmount:   out.conversion,
			ConversionTax:      out.conversionTax,
			MarginalRate:       marginalRate,
			RMDAmount:          out.rmdAmount,
			RMDTax:             out.rmdTax,
			CumulativeTax:      cumulativeTax,
			TotalWealth:        wealth,
			NoConversionWealth: baselineWealth,
			BreakEven:          wealth.GreaterThan(baselineWealth),
			IsRetired:          retired,
		})
	}

	return results
}
