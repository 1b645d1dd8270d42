package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus identifies the federal filing status used for bracket and
// standard-deduction lookups.
type FilingStatus string

const (
	FilingSingle               FilingStatus = "single"
	FilingMarriedFilingJointly FilingStatus = "married_filing_jointly"
)

// Valid reports whether the filing status is one of the supported values.
func (fs FilingStatus) Valid() bool {
	return fs == FilingSingle || fs == FilingMarriedFilingJointly
}

// StrategyKind selects how the conversion amount is determined each year.
type StrategyKind string

const (
	StrategyOneTime             StrategyKind = "one_time"
	StrategyAnnual              StrategyKind = "annual"
	StrategyBracketOptimization StrategyKind = "bracket_optimization"
)

// Valid reports whether the strategy kind is one of the supported values.
func (sk StrategyKind) Valid() bool {
	switch sk {
	case StrategyOneTime, StrategyAnnual, StrategyBracketOptimization:
		return true
	}
	return false
}

// ConversionStrategy is a closed tagged variant: only the parameters for the
// selected kind are meaningful, the rest are ignored.
type ConversionStrategy struct {
	Kind StrategyKind `json:"kind" yaml:"kind"`

	// one_time: convert this amount in the first projection year, capped by
	// the traditional balance.
	OneTimeAmount decimal.Decimal `json:"one_time_amount,omitempty" yaml:"one_time_amount,omitempty"`

	// annual: convert min(AnnualAmount, PercentOfBalance x traditional)
	// every year. PercentOfBalance is optional; when absent the cap is the
	// traditional balance itself.
	AnnualAmount     decimal.Decimal  `json:"annual_amount,omitempty" yaml:"annual_amount,omitempty"`
	PercentOfBalance *decimal.Decimal `json:"percent_of_balance,omitempty" yaml:"percent_of_balance,omitempty"`

	// bracket_optimization: fill up to (not beyond) the bracket with this
	// rate. Only applies while not yet retired.
	TargetBracketRate decimal.Decimal `json:"target_bracket_rate,omitempty" yaml:"target_bracket_rate,omitempty"`
}

// MaxExplicitIncomeYears is the number of projection years that may carry an
// explicit income entry.
const MaxExplicitIncomeYears = 10

// MaxSimulationYears bounds a single projection run.
const MaxSimulationYears = 50

// SimulationInput is the single immutable record consumed by one projection
// run. Optional assumptions use pointers so that "absent" stays distinct
// from an explicit zero.
type SimulationInput struct {
	Age1          int          `json:"age1" yaml:"age1"`
	Age2          int          `json:"age2" yaml:"age2"`
	FilingStatus  FilingStatus `json:"filing_status" yaml:"filing_status"`
	RetirementAge int          `json:"retirement_age" yaml:"retirement_age"`

	TraditionalBalance decimal.Decimal  `json:"traditional_balance" yaml:"traditional_balance"`
	RothBalance        decimal.Decimal  `json:"roth_balance" yaml:"roth_balance"`
	TaxableBalance     *decimal.Decimal `json:"taxable_balance,omitempty" yaml:"taxable_balance,omitempty"`

	Strategy ConversionStrategy `json:"strategy" yaml:"strategy"`

	// YearlyIncomes holds up to MaxExplicitIncomeYears explicit projected
	// incomes for years 1..len. AnnualIncome backfills absent slots.
	YearlyIncomes    []decimal.Decimal `json:"yearly_incomes,omitempty" yaml:"yearly_incomes,omitempty"`
	AnnualIncome     decimal.Decimal   `json:"annual_income" yaml:"annual_income"`
	RetirementIncome decimal.Decimal   `json:"retirement_income" yaml:"retirement_income"`

	// ReturnRate applies to traditional and Roth balances; TaxableYield to
	// the taxable account. A nil rate skips the growth step entirely.
	ReturnRate   *decimal.Decimal `json:"return_rate,omitempty" yaml:"return_rate,omitempty"`
	TaxableYield *decimal.Decimal `json:"taxable_yield,omitempty" yaml:"taxable_yield,omitempty"`

	SimulationYears int              `json:"simulation_years" yaml:"simulation_years"`
	StateRate       *decimal.Decimal `json:"state_rate,omitempty" yaml:"state_rate,omitempty"`
}

// IncomeForYear resolves the gross income for a 1-based projection year.
// Retired years use the dedicated retirement income. Working years 1..10 use
// the explicit yearly entry when present, falling back to the general annual
// income; working years past 10 carry the last explicit entry forward.
func (in *SimulationInput) IncomeForYear(year int, retired bool) decimal.Decimal {
	if retired {
		return in.RetirementIncome
	}
	if year <= MaxExplicitIncomeYears {
		if year <= len(in.YearlyIncomes) {
			return in.YearlyIncomes[year-1]
		}
		return in.AnnualIncome
	}
	if n := len(in.YearlyIncomes); n > 0 {
		return in.YearlyIncomes[n-1]
	}
	return in.AnnualIncome
}

// TracksTaxable reports whether the run models an ordinary taxable account.
func (in *SimulationInput) TracksTaxable() bool {
	return in.TaxableBalance != nil
}
