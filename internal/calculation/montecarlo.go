package calculation

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// Maximum number of simulation paths running concurrently.
const defaultMaxConcurrentPaths = 10

// MonteCarloSimulator runs stochastic growth projections over many
// independent market paths. Paths share nothing but the inputs; each gets
// its own seeded RNG so a fixed Seed reproduces the full run.
type MonteCarloSimulator struct {
	Logger        Logger
	Seed          int64
	MaxConcurrent int
}

func NewMonteCarloSimulator() *MonteCarloSimulator {
	return &MonteCarloSimulator{
		Logger:        &NopLogger{},
		Seed:          time.Now().UnixNano(),
		MaxConcurrent: defaultMaxConcurrentPaths,
	}
}

// SampleReturn draws one annual return from a log-normal growth model with
// the given mean return and volatility. The location parameter is ln(1+mean)
// so that zero volatility degenerates to exactly the mean return.
func SampleReturn(rng *rand.Rand, mean, volatility decimal.Decimal) decimal.Decimal {
	if volatility.IsZero() {
		return mean
	}

	// Box-Muller transform for a standard normal variate.
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*rng.Float64())

	m, _ := mean.Float64()
	vol, _ := volatility.Float64()
	growth := math.Exp(math.Log(1+m) + vol*z)
	return decimal.NewFromFloat(growth - 1)
}

// RunPaths simulates pathCount independent growth paths of the given length,
// starting from the supplied balances. Both accounts see the same sampled
// return within a year. Results are ordered by path index.
func (mc *MonteCarloSimulator) RunPaths(ctx context.Context, initialTraditional, initialRoth decimal.Decimal, years int, mean, volatility decimal.Decimal, pathCount int) []domain.PathOutcome {
	if pathCount <= 0 || years <= 0 {
		return nil
	}

	limit := mc.MaxConcurrent
	if limit <= 0 {
		limit = defaultMaxConcurrentPaths
	}

	mc.Logger.Infof("monte carlo: paths=%d years=%d mean=%s volatility=%s",
		pathCount, years, mean.StringFixed(4), volatility.StringFixed(4))

	outcomes := make([]domain.PathOutcome, pathCount)
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i := 0; i < pathCount; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(path int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rng := rand.New(rand.NewSource(mc.Seed + int64(path)))
			traditional := initialTraditional
			roth := initialRoth
			for y := 0; y < years; y++ {
				factor := decimal.NewFromInt(1).Add(SampleReturn(rng, mean, volatility))
				traditional = traditional.Mul(factor)
				roth = roth.Mul(factor)
			}
			outcomes[path] = domain.PathOutcome{
				Traditional: traditional,
				Roth:        roth,
				Total:       traditional.Add(roth),
			}
		}(i)
	}
	wg.Wait()

	return outcomes
}

// ComputePercentiles returns the requested percentiles of total final wealth
// using the nearest-rank method on the sorted outcomes.
func ComputePercentiles(paths []domain.PathOutcome, percentiles []int) []decimal.Decimal {
	if len(paths) == 0 {
		return nil
	}

	totals := make([]decimal.Decimal, len(paths))
	for i, p := range paths {
		totals[i] = p.Total
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].LessThan(totals[j]) })

	out := make([]decimal.Decimal, len(percentiles))
	for i, p := range percentiles {
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		idx := p * (len(totals) - 1) / 100
		out[i] = totals[idx]
	}
	return out
}

// Percentiles summarizes a path set at the standard reporting percentiles.
func Percentiles(paths []domain.PathOutcome) domain.PercentileRanges {
	values := ComputePercentiles(paths, []int{10, 25, 50, 75, 90})
	if values == nil {
		return domain.PercentileRanges{}
	}
	return domain.PercentileRanges{
		P10: values[0],
		P25: values[1],
		P50: values[2],
		P75: values[3],
		P90: values[4],
	}
}
