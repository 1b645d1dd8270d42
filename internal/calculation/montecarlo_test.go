package calculation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

func TestSampleReturnZeroVolatility(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	mean := decimal.NewFromFloat(0.07)

	for i := 0; i < 10; i++ {
		r := SampleReturn(rng, mean, decimal.Zero)
		assert.True(t, r.Equal(mean), "zero volatility must return the mean exactly")
	}
}

func TestSampleReturnBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mean := decimal.NewFromFloat(0.07)
	vol := decimal.NewFromFloat(0.15)

	// Log-normal growth keeps every sampled return above a total loss.
	floor := decimal.NewFromInt(-1)
	for i := 0; i < 1000; i++ {
		r := SampleReturn(rng, mean, vol)
		assert.True(t, r.GreaterThan(floor), "sampled return at or below -100%%: %s", r.String())
	}
}

func TestRunPathsZeroVolatilityDeterministic(t *testing.T) {
	sim := NewMonteCarloSimulator()
	sim.Seed = 7

	traditional := decimal.NewFromInt(100000)
	roth := decimal.NewFromInt(50000)
	mean := decimal.NewFromFloat(0.07)
	years := 10

	paths := sim.RunPaths(context.Background(), traditional, roth, years, mean, decimal.Zero, 5)
	require.Len(t, paths, 5)

	factor := decimal.NewFromInt(1).Add(mean)
	expected := traditional.Add(roth)
	for i := 0; i < years; i++ {
		expected = expected.Mul(factor)
	}

	for i, p := range paths {
		assert.True(t, p.Total.Equal(expected),
			"path %d: expected %s, got %s", i, expected.StringFixed(2), p.Total.StringFixed(2))
		assert.True(t, p.Traditional.Add(p.Roth).Equal(p.Total))
	}
}

func TestRunPathsSeedReproducible(t *testing.T) {
	traditional := decimal.NewFromInt(500000)
	roth := decimal.NewFromInt(100000)
	mean := decimal.NewFromFloat(0.07)
	vol := decimal.NewFromFloat(0.15)

	first := NewMonteCarloSimulator()
	first.Seed = 1234
	second := NewMonteCarloSimulator()
	second.Seed = 1234

	a := first.RunPaths(context.Background(), traditional, roth, 20, mean, vol, 50)
	b := second.RunPaths(context.Background(), traditional, roth, 20, mean, vol, 50)
	require.Len(t, a, 50)
	require.Len(t, b, 50)

	for i := range a {
		assert.True(t, a[i].Total.Equal(b[i].Total), "path %d differs across identical seeds", i)
	}
}

func TestRunPathsEmptyRequests(t *testing.T) {
	sim := NewMonteCarloSimulator()
	mean := decimal.NewFromFloat(0.07)

	assert.Nil(t, sim.RunPaths(context.Background(), decimal.Zero, decimal.Zero, 10, mean, decimal.Zero, 0))
	assert.Nil(t, sim.RunPaths(context.Background(), decimal.Zero, decimal.Zero, 0, mean, decimal.Zero, 10))
}

func TestComputePercentilesNearestRank(t *testing.T) {
	paths := []domain.PathOutcome{
		{Total: decimal.NewFromInt(30)},
		{Total: decimal.NewFromInt(10)},
		{Total: decimal.NewFromInt(50)},
		{Total: decimal.NewFromInt(20)},
		{Total: decimal.NewFromInt(40)},
	}

	values := ComputePercentiles(paths, []int{0, 50, 90, 100})
	require.Len(t, values, 4)
	assert.True(t, values[0].Equal(decimal.NewFromInt(10)))
	assert.True(t, values[1].Equal(decimal.NewFromInt(30)))
	// Nearest rank: floor(0.90 * 4) = index 3.
	assert.True(t, values[2].Equal(decimal.NewFromInt(40)))
	assert.True(t, values[3].Equal(decimal.NewFromInt(50)))

	assert.Nil(t, ComputePercentiles(nil, []int{50}))
}

func TestPercentileRanges(t *testing.T) {
	paths := make([]domain.PathOutcome, 100)
	for i := range paths {
		paths[i] = domain.PathOutcome{Total: decimal.NewFromInt(int64(i + 1))}
	}

	ranges := Percentiles(paths)
	assert.True(t, ranges.P10.Equal(decimal.NewFromInt(10)))  // floor(0.10 * 99) = 9
	assert.True(t, ranges.P25.Equal(decimal.NewFromInt(25)))  // floor(0.25 * 99) = 24
	assert.True(t, ranges.P50.Equal(decimal.NewFromInt(50)))  // floor(0.50 * 99) = 49
	assert.True(t, ranges.P75.Equal(decimal.NewFromInt(75)))  // floor(0.75 * 99) = 74
	assert.True(t, ranges.P90.Equal(decimal.NewFromInt(90)))  // floor(0.90 * 99) = 89
}
