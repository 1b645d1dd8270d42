package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

func validInput() *domain.SimulationInput {
	return &domain.SimulationInput{
		Age1:               55,
		Age2:               53,
		FilingStatus:       domain.FilingMarriedFilingJointly,
		RetirementAge:      65,
		TraditionalBalance: decimal.NewFromInt(1200000),
		RothBalance:        decimal.NewFromInt(150000),
		Strategy: domain.ConversionStrategy{
			Kind:              domain.StrategyBracketOptimization,
			TargetBracketRate: decimal.NewFromFloat(0.22),
		},
		AnnualIncome:     decimal.NewFromInt(180000),
		RetirementIncome: decimal.NewFromInt(60000),
		SimulationYears:  30,
	}
}

func TestValidateInput(t *testing.T) {
	parser := NewInputParser()

	t.Run("Valid input passes", func(t *testing.T) {
		assert.NoError(t, parser.ValidateInput(validInput()))
	})

	tests := []struct {
		name   string
		mutate func(*domain.SimulationInput)
		errMsg string
	}{
		{
			name:   "Nil input",
			mutate: nil,
			errMsg: "required",
		},
		{
			name:   "Zero age",
			mutate: func(in *domain.SimulationInput) { in.Age1 = 0 },
			errMsg: "age1",
		},
		{
			name:   "Unknown filing status",
			mutate: func(in *domain.SimulationInput) { in.FilingStatus = "head_of_household" },
			errMsg: "filing status",
		},
		{
			name:   "Too many simulation years",
			mutate: func(in *domain.SimulationInput) { in.SimulationYears = 51 },
			errMsg: "simulation_years",
		},
		{
			name:   "Zero simulation years",
			mutate: func(in *domain.SimulationInput) { in.SimulationYears = 0 },
			errMsg: "simulation_years",
		},
		{
			name:   "Negative traditional balance",
			mutate: func(in *domain.SimulationInput) { in.TraditionalBalance = decimal.NewFromInt(-1) },
			errMsg: "traditional_balance",
		},
		{
			name: "Too many yearly incomes",
			mutate: func(in *domain.SimulationInput) {
				in.YearlyIncomes = make([]decimal.Decimal, 11)
			},
			errMsg: "yearly incomes",
		},
		{
			name: "Negative yearly income",
			mutate: func(in *domain.SimulationInput) {
				in.YearlyIncomes = []decimal.Decimal{decimal.NewFromInt(-100)}
			},
			errMsg: "negative",
		},
		{
			name: "State rate at 100%",
			mutate: func(in *domain.SimulationInput) {
				rate := decimal.NewFromInt(1)
				in.StateRate = &rate
			},
			errMsg: "state_rate",
		},
		{
			name: "Return rate at total loss",
			mutate: func(in *domain.SimulationInput) {
				rate := decimal.NewFromInt(-1)
				in.ReturnRate = &rate
			},
			errMsg: "return_rate",
		},
		{
			name: "One-time strategy without amount",
			mutate: func(in *domain.SimulationInput) {
				in.Strategy = domain.ConversionStrategy{Kind: domain.StrategyOneTime}
			},
			errMsg: "one_time",
		},
		{
			name: "Annual strategy without amount",
			mutate: func(in *domain.SimulationInput) {
				in.Strategy = domain.ConversionStrategy{Kind: domain.StrategyAnnual}
			},
			errMsg: "annual",
		},
		{
			name: "Annual percent above 100%",
			mutate: func(in *domain.SimulationInput) {
				pct := decimal.NewFromFloat(1.5)
				in.Strategy = domain.ConversionStrategy{
					Kind:             domain.StrategyAnnual,
					AnnualAmount:     decimal.NewFromInt(50000),
					PercentOfBalance: &pct,
				}
			},
			errMsg: "percent_of_balance",
		},
		{
			name: "Bracket strategy with rate of 1",
			mutate: func(in *domain.SimulationInput) {
				in.Strategy = domain.ConversionStrategy{
					Kind:              domain.StrategyBracketOptimization,
					TargetBracketRate: decimal.NewFromInt(1),
				}
			},
			errMsg: "target rate",
		},
		{
			name: "Unknown strategy kind",
			mutate: func(in *domain.SimulationInput) {
				in.Strategy = domain.ConversionStrategy{Kind: "ladder"}
			},
			errMsg: "unknown conversion strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in *domain.SimulationInput
			if tt.mutate != nil {
				in = validInput()
				tt.mutate(in)
			}
			err := parser.ValidateInput(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	yaml := `
age1: 55
age2: 53
filing_status: married_filing_jointly
retirement_age: 65
traditional_balance: 1200000
roth_balance: 150000
taxable_balance: 300000
annual_income: 180000
retirement_income: 60000
return_rate: 0.06
simulation_years: 30
strategy:
  kind: annual
  annual_amount: 50000
  percent_of_balance: 0.10
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	input, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 55, input.Age1)
	assert.Equal(t, domain.FilingMarriedFilingJointly, input.FilingStatus)
	assert.Equal(t, domain.StrategyAnnual, input.Strategy.Kind)
	assert.True(t, input.Strategy.AnnualAmount.Equal(decimal.NewFromInt(50000)))
	require.NotNil(t, input.Strategy.PercentOfBalance)
	assert.True(t, input.Strategy.PercentOfBalance.Equal(decimal.NewFromFloat(0.10)))
	require.NotNil(t, input.TaxableBalance)
	assert.True(t, input.TaxableBalance.Equal(decimal.NewFromInt(300000)))
	require.NotNil(t, input.ReturnRate)
	assert.Nil(t, input.TaxableYield)
}

func TestLoadFromFileErrors(t *testing.T) {
	parser := NewInputParser()

	t.Run("Missing file", func(t *testing.T) {
		_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("age1: [not a number"), 0644))
		_, err := parser.LoadFromFile(path)
		assert.Error(t, err)
	})

	t.Run("Valid YAML failing validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("age1: 55\nsimulation_years: 0\n"), 0644))
		_, err := parser.LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})
}

func TestCreateExampleInputRoundTrip(t *testing.T) {
	parser := NewInputParser()

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.CreateExampleInput(path))

	// The generated example must load and validate cleanly.
	input, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyBracketOptimization, input.Strategy.Kind)
	assert.True(t, input.TraditionalBalance.GreaterThan(decimal.Zero))
}
