// Package config loads and validates simulation inputs from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// InputParser handles loading and validation of scenario configuration.
type InputParser struct{}

func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads and validates a simulation input from a YAML file.
func (p *InputParser) LoadFromFile(filename string) (*domain.SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", filename, err)
	}

	var input domain.SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
	}

	if err := p.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ValidateInput checks that a simulation input is internally consistent
// before it reaches the engine. The engine itself is total over inputs that
// pass here.
func (p *InputParser) ValidateInput(in *domain.SimulationInput) error {
	if in == nil {
		return fmt.Errorf("input is required")
	}

	if in.Age1 <= 0 {
		return fmt.Errorf("age1 must be positive, got %d", in.Age1)
	}
	if in.Age2 < 0 {
		return fmt.Errorf("age2 cannot be negative, got %d", in.Age2)
	}
	if in.RetirementAge <= 0 {
		return fmt.Errorf("retirement_age must be positive, got %d", in.RetirementAge)
	}
	if !in.FilingStatus.Valid() {
		return fmt.Errorf("unknown filing status %q", in.FilingStatus)
	}

	if in.SimulationYears < 1 || in.SimulationYears > domain.MaxSimulationYears {
		return fmt.Errorf("simulation_years must be between 1 and %d, got %d",
			domain.MaxSimulationYears, in.SimulationYears)
	}

	if in.TraditionalBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("traditional_balance cannot be negative")
	}
	if in.RothBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("roth_balance cannot be negative")
	}

	if len(in.YearlyIncomes) > domain.MaxExplicitIncomeYears {
		return fmt.Errorf("at most %d yearly incomes may be listed, got %d",
			domain.MaxExplicitIncomeYears, len(in.YearlyIncomes))
	}
	for i, income := range in.YearlyIncomes {
		if income.LessThan(decimal.Zero) {
			return fmt.Errorf("yearly income for year %d cannot be negative", i+1)
		}
	}
	if in.AnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("annual_income cannot be negative")
	}
	if in.RetirementIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("retirement_income cannot be negative")
	}

	if in.ReturnRate != nil && in.ReturnRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("return_rate must be greater than -100%%")
	}
	if in.TaxableYield != nil && in.TaxableYield.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("taxable_yield must be greater than -100%%")
	}
	if in.StateRate != nil {
		if in.StateRate.LessThan(decimal.Zero) || in.StateRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("state_rate must be in [0, 1)")
		}
	}

	return p.validateStrategy(&in.Strategy)
}

func (p *InputParser) validateStrategy(s *domain.ConversionStrategy) error {
	switch s.Kind {
	case domain.StrategyOneTime:
		if s.OneTimeAmount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("one_time strategy requires a positive amount")
		}
	case domain.StrategyAnnual:
		if s.AnnualAmount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("annual strategy requires a positive amount")
		}
		if s.PercentOfBalance != nil {
			if s.PercentOfBalance.LessThanOrEqual(decimal.Zero) || s.PercentOfBalance.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("percent_of_balance must be in (0, 1]")
			}
		}
	case domain.StrategyBracketOptimization:
		if s.TargetBracketRate.LessThanOrEqual(decimal.Zero) || s.TargetBracketRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket_optimization strategy requires a target rate in (0, 1)")
		}
	default:
		return fmt.Errorf("unknown conversion strategy %q", s.Kind)
	}
	return nil
}

// CreateExampleInput writes a complete sample scenario to filename, useful
// as a starting point for new configurations.
func (p *InputParser) CreateExampleInput(filename string) error {
	example := `# Roth conversion scenario
age1: 55
age2: 53
filing_status: married_filing_jointly
retirement_age: 65

traditional_balance: 1200000
roth_balance: 150000
taxable_balance: 300000

# Income while working; retirement_income applies once retired.
annual_income: 180000
retirement_income: 60000

# Growth assumptions (omit return_rate to project balances flat).
return_rate: 0.06
taxable_yield: 0.03

# Optional flat state income tax rate applied to gross income.
state_rate: 0.05

simulation_years: 30

strategy:
  kind: bracket_optimization
  target_bracket_rate: 0.22

# Alternative strategies:
# strategy:
#   kind: one_time
#   one_time_amount: 200000
# strategy:
#   kind: annual
#   annual_amount: 50000
#   percent_of_balance: 0.10
`
	if err := os.WriteFile(filename, []byte(example), 0644); err != nil {
		return fmt.Errorf("failed to write example file %s: %w", filename, err)
	}
	return nil
}
