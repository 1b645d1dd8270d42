package domain

import (
	"github.com/shopspring/decimal"
)

// YearResult captures one simulated year. Results are emitted strictly in
// year order and never revised once emitted.
type YearResult struct {
	Year int `json:"year"`
	Age1 int `json:"age1"`
	Age2 int `json:"age2"`

	// End-of-year balances. TaxableBalance may be negative when conversion
	// or RMD taxes exceed the tracked taxable account; it is floored at zero
	// only inside wealth totals.
	TraditionalBalance decimal.Decimal `json:"traditional_balance"`
	RothBalance        decimal.Decimal `json:"roth_balance"`
	TaxableBalance     decimal.Decimal `json:"taxable_balance"`

	ConversionAmount decimal.Decimal `json:"conversion_amount"`
	ConversionTax    decimal.Decimal `json:"conversion_tax"`
	MarginalRate     decimal.Decimal `json:"marginal_rate"`

	RMDAmount decimal.Decimal `json:"rmd_amount"`
	RMDTax    decimal.Decimal `json:"rmd_tax"`

	CumulativeTax      decimal.Decimal `json:"cumulative_tax"`
	TotalWealth        decimal.Decimal `json:"total_wealth"`
	NoConversionWealth decimal.Decimal `json:"no_conversion_wealth"`

	// BreakEven is the point-in-time comparison against the no-conversion
	// track for this year; it can flip back and forth across years.
	BreakEven bool `json:"break_even"`
	IsRetired bool `json:"is_retired"`
}

// SimulationSummary holds the derived headline metrics for a completed run.
type SimulationSummary struct {
	BreakEvenYear           int             `json:"break_even_year"` // 0 when never reached
	FinalWealth             decimal.Decimal `json:"final_wealth"`
	FinalNoConversionWealth decimal.Decimal `json:"final_no_conversion_wealth"`
	TotalTaxesPaid          decimal.Decimal `json:"total_taxes_paid"`
	TotalConverted          decimal.Decimal `json:"total_converted"`
	FinalTraditionalBalance decimal.Decimal `json:"final_traditional_balance"`
	FinalRothBalance        decimal.Decimal `json:"final_roth_balance"`
}

// SimulationResult is the engine's complete output for one run.
type SimulationResult struct {
	Input   *SimulationInput  `json:"input"`
	Years   []YearResult      `json:"years"`
	Summary SimulationSummary `json:"summary"`
}

// BracketRoom is one row of the read-only bracket-room projection used by
// the auxiliary analysis view.
type BracketRoom struct {
	Index               int             `json:"index"`
	Rate                decimal.Decimal `json:"rate"`
	Cap                 decimal.Decimal `json:"cap"`
	Unbounded           bool            `json:"unbounded"`
	Room                decimal.Decimal `json:"room"`
	SuggestedConversion decimal.Decimal `json:"suggested_conversion"`
}

// PathOutcome records the final balances of a single Monte Carlo path.
type PathOutcome struct {
	Traditional decimal.Decimal `json:"traditional"`
	Roth        decimal.Decimal `json:"roth"`
	Total       decimal.Decimal `json:"total"`
}

// PercentileRanges summarizes a path distribution at the standard cut points.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}
