package decimal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "$0.00"},
		{999.995, "$1,000.00"},
		{1234.5, "$1,234.50"},
		{1234567.89, "$1,234,567.89"},
		{-98765.43, "-$98,765.43"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NewMoney(tt.value).Format())
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(100.50)
	b := NewMoney(50.25)

	assert.Equal(t, "150.75", a.Add(b).String())
	assert.Equal(t, "50.25", a.Sub(b).String())
	assert.Equal(t, "201.00", a.Mul(decimal.NewFromInt(2)).String())
	assert.True(t, a.GreaterThan(b))
	assert.True(t, b.LessThan(a))
	assert.True(t, Zero().IsZero())
	assert.True(t, NewMoney(-1).IsNegative())
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("1234.56")
	assert.NoError(t, err)
	assert.Equal(t, "1234.56", m.String())

	_, err = NewMoneyFromString("not-money")
	assert.Error(t, err)
}
