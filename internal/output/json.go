package output

import (
	"encoding/json"

	"github.com/rothcalc/conversion-calculator/internal/domain"
)

// JSONFormatter serializes the full simulation result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
