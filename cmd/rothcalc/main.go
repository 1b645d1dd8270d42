package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rothcalc/conversion-calculator/internal/calculation"
	"github.com/rothcalc/conversion-calculator/internal/config"
	"github.com/rothcalc/conversion-calculator/internal/domain"
	"github.com/rothcalc/conversion-calculator/internal/logging"
	"github.com/rothcalc/conversion-calculator/internal/output"
)

var (
	inputPath    string
	outputFormat string
	verbose      bool
	writeFile    bool

	mcPaths      int
	mcYears      int
	mcMean       string
	mcVolatility string
	mcSeed       int64

	bracketsStatus string
)

// rootCmd is the base command for the rothcalc CLI
var rootCmd = &cobra.Command{
	Use:   "rothcalc",
	Short: "Roth conversion projection calculator",
	Long: `rothcalc projects Roth conversion strategies year by year against a
no-conversion baseline, including federal bracket taxes, RMDs, and an
optional Monte Carlo view of growth uncertainty.`,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a deterministic year-by-year conversion projection",
	Long: `Run the full projection for a scenario file and report the year series,
break-even point, and final wealth versus the no-conversion baseline.

Example usage:
  rothcalc project --input scenario.yaml
  rothcalc project --input scenario.yaml --format json
  rothcalc project --input scenario.yaml --format csv --write`,
	RunE: runProject,
}

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Run a stochastic growth simulation over many market paths",
	Long: `Simulate growth of the scenario's starting balances across many random
market paths and report percentile outcomes of final wealth.

Example usage:
  rothcalc montecarlo --input scenario.yaml --paths 1000
  rothcalc montecarlo --input scenario.yaml --mean 0.07 --volatility 0.15 --seed 42`,
	RunE: runMonteCarlo,
}

var bracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "Show remaining room in each federal tax bracket for an income",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrackets,
}

var exampleCmd = &cobra.Command{
	Use:   "example [filename]",
	Short: "Write an example scenario configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	projectCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to scenario YAML file (required)")
	projectCmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "Output format: console, csv, json")
	projectCmd.Flags().BoolVar(&writeFile, "write", false, "Write output to a timestamped report file")
	_ = projectCmd.MarkFlagRequired("input")

	montecarloCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to scenario YAML file (required)")
	montecarloCmd.Flags().IntVar(&mcPaths, "paths", 1000, "Number of simulation paths")
	montecarloCmd.Flags().IntVar(&mcYears, "years", 0, "Years to simulate (default: scenario's simulation_years)")
	montecarloCmd.Flags().StringVar(&mcMean, "mean", "0.07", "Mean annual return")
	montecarloCmd.Flags().StringVar(&mcVolatility, "volatility", "0.15", "Annual return volatility")
	montecarloCmd.Flags().Int64Var(&mcSeed, "seed", 0, "RNG seed (0 uses current time)")
	_ = montecarloCmd.MarkFlagRequired("input")

	bracketsCmd.Flags().StringVar(&bracketsStatus, "status", "single", "Filing status: single, married_filing_jointly")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(montecarloCmd)
	rootCmd.AddCommand(bracketsCmd)
	rootCmd.AddCommand(exampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadInput() (*domain.SimulationInput, error) {
	parser := config.NewInputParser()
	return parser.LoadFromFile(inputPath)
}

func runProject(cmd *cobra.Command, args []string) error {
	input, err := loadInput()
	if err != nil {
		return err
	}

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logging.New(verbose))

	result, err := engine.RunSimulation(context.Background(), input)
	if err != nil {
		return err
	}

	formatter := output.GetFormatterByName(outputFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %v)", outputFormat, output.AvailableFormatterNames())
	}

	if writeFile {
		filename, err := output.WriteFormatted(formatter, result, output.NormalizeFormatName(outputFormat))
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", filename)
		return nil
	}

	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	input, err := loadInput()
	if err != nil {
		return err
	}

	mean, err := decimal.NewFromString(mcMean)
	if err != nil {
		return fmt.Errorf("invalid mean return %q: %w", mcMean, err)
	}
	volatility, err := decimal.NewFromString(mcVolatility)
	if err != nil {
		return fmt.Errorf("invalid volatility %q: %w", mcVolatility, err)
	}
	years := mcYears
	if years <= 0 {
		years = input.SimulationYears
	}

	sim := calculation.NewMonteCarloSimulator()
	sim.Logger = logging.New(verbose)
	if mcSeed != 0 {
		sim.Seed = mcSeed
	}

	paths := sim.RunPaths(context.Background(), input.TraditionalBalance, input.RothBalance, years, mean, volatility, mcPaths)
	ranges := calculation.Percentiles(paths)

	fmt.Printf("MONTE CARLO RESULTS (%d paths, %d years)\n", len(paths), years)
	fmt.Println("================================")
	fmt.Printf("P10: %s\n", output.FormatCurrency(ranges.P10))
	fmt.Printf("P25: %s\n", output.FormatCurrency(ranges.P25))
	fmt.Printf("P50: %s\n", output.FormatCurrency(ranges.P50))
	fmt.Printf("P75: %s\n", output.FormatCurrency(ranges.P75))
	fmt.Printf("P90: %s\n", output.FormatCurrency(ranges.P90))
	return nil
}

func runBrackets(cmd *cobra.Command, args []string) error {
	income, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid income %q: %w", args[0], err)
	}
	status := domain.FilingStatus(bracketsStatus)
	if !status.Valid() {
		return fmt.Errorf("unknown filing status %q", bracketsStatus)
	}

	tc := calculation.NewTaxCalculator2023()
	fmt.Printf("Bracket room at %s income (%s, %d tables)\n", output.FormatCurrency(income), status, tc.Year)
	fmt.Println("================================")
	for _, room := range tc.BracketRoomBreakdown(income, status) {
		cap := "unbounded"
		if !room.Unbounded {
			cap = output.FormatCurrency(room.Cap)
		}
		fmt.Printf("%2d. %s bracket (cap %s): room %s\n",
			room.Index+1, output.FormatPercentage(room.Rate), cap, output.FormatCurrency(room.Room))
	}
	return nil
}

func runExample(cmd *cobra.Command, args []string) error {
	filename := "scenario.yaml"
	if len(args) == 1 {
		filename = args[0]
	}
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", filename)
	}
	if err := config.NewInputParser().CreateExampleInput(filename); err != nil {
		return err
	}
	fmt.Printf("Example scenario written to %s\n", filename)
	return nil
}
