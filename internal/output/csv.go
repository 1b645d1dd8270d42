package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// CSVFormatter exports the full year-by-year projection (one row per year).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age1", "Age2", "TraditionalBalance", "RothBalance", "TaxableBalance", "ConversionAmount", "ConversionTax", "MarginalRate", "RMDAmount", "RMDTax", "CumulativeTax", "TotalWealth", "NoConversionWealth", "BreakEven", "IsRetired"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, yr := range result.Years {
		row := []string{
			strconv.Itoa(yr.Year),
			strconv.Itoa(yr.Age1),
			strconv.Itoa(yr.Age2),
			yr.TraditionalBalance.StringFixed(2),
			yr.RothBalance.StringFixed(2),
			yr.TaxableBalance.StringFixed(2),
			yr.ConversionAmount.StringFixed(2),
			yr.ConversionTax.StringFixed(2),
			yr.MarginalRate.StringFixed(4),
			yr.RMDAmount.StringFixed(2),
			yr.RMDTax.StringFixed(2),
			yr.CumulativeTax.StringFixed(2),
			yr.TotalWealth.StringFixed(2),
			yr.NoConversionWealth.StringFixed(2),
			strconv.FormatBool(yr.BreakEven),
			strconv.FormatBool(yr.IsRetired),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
