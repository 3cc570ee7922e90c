package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/internal/config"
	"github.com/siderealworks/astrocarto/model"
)

var rootCmd = &cobra.Command{
	Use:   "astro",
	Short: "Astrocartography and activation window calculator",
	Long: "Astro computes natal planetary positions, astrocartography lines, " +
		"activation windows, and ranked location syntheses for a birth chart.",
}

var (
	flagDate   string
	flagTime   string
	flagLat    float64
	flagLon    float64
	flagTables string
	flagJSON   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "birth date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagTime, "time", "12:00", "local birth time (HH:MM)")
	rootCmd.PersistentFlags().Float64Var(&flagLat, "lat", 0, "birth latitude in degrees")
	rootCmd.PersistentFlags().Float64Var(&flagLon, "lon", 0, "birth longitude in degrees")
	rootCmd.PersistentFlags().StringVar(&flagTables, "tables", "", "optional TOML tuning tables")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON instead of text")
}

// chartFromFlags validates the birth flags and computes the natal chart.
func chartFromFlags() (model.BirthData, float64, []model.PlanetPosition, error) {
	birth := model.BirthData{
		Date:      flagDate,
		Time:      flagTime,
		Latitude:  flagLat,
		Longitude: flagLon,
	}
	if birth.Date == "" {
		return birth, 0, nil, fmt.Errorf("--date is required")
	}
	if birth.Latitude < -90 || birth.Latitude > 90 || birth.Longitude < -180 || birth.Longitude > 180 {
		return birth, 0, nil, fmt.Errorf("birth coordinates out of range")
	}

	jd, err := core.BirthJulianDay(birth)
	if err != nil {
		return birth, 0, nil, err
	}
	return birth, jd, core.PositionsAt(jd), nil
}

func loadEngine() (*core.ScoringEngine, error) {
	tables, err := config.LoadTables(flagTables)
	if err != nil {
		return nil, err
	}
	return core.NewScoringEngine(tables.Orbs, tables.Weights, tables.Sentiment), nil
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
