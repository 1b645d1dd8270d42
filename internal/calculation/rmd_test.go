package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRMDFactor(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		expected decimal.Decimal
	}{
		{"First RMD age", 72, decimal.NewFromFloat(27.4)},
		{"Mid table", 90, decimal.NewFromFloat(12.2)},
		{"Last table entry", 120, decimal.NewFromFloat(2.0)},
		{"Beyond the table forces full depletion", 121, decimal.NewFromInt(1)},
		{"Below the table", 71, decimal.NewFromInt(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := RMDFactor(tt.age)
			assert.True(t, factor.Equal(tt.expected),
				"age %d: expected %s, got %s", tt.age, tt.expected.String(), factor.String())
		})
	}
}

func TestRMDAmount(t *testing.T) {
	balance := decimal.NewFromInt(1000000)

	// 1,000,000 / 27.4 at age 72
	amount := RMDAmount(balance, 72)
	expected := decimal.NewFromFloat(36496.35)
	difference := amount.Sub(expected).Abs()
	assert.True(t, difference.LessThan(decimal.NewFromFloat(0.01)),
		"expected ~%s, got %s", expected.StringFixed(2), amount.StringFixed(2))

	// Past the table the whole balance comes out.
	assert.True(t, RMDAmount(balance, 130).Equal(balance))
}

func TestRMDFactorDecreasesWithAge(t *testing.T) {
	prev := RMDFactor(72)
	for age := 73; age <= 120; age++ {
		factor := RMDFactor(age)
		assert.True(t, factor.LessThanOrEqual(prev),
			"divisor increased at age %d", age)
		prev = factor
	}
}
