package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/kb"
	"github.com/siderealworks/astrocarto/model"
)

var (
	flagSpan      string
	flagLocations string
	flagCity      string
)

var synthesisCmd = &cobra.Command{
	Use:   "synthesis",
	Short: "Rank catalog locations by upcoming transit quality",
	RunE:  runSynthesis,
}

var cityCmd = &cobra.Command{
	Use:   "city",
	Short: "Report the current activation of one catalog location",
	RunE:  runCity,
}

func init() {
	synthesisCmd.Flags().StringVar(&flagSpan, "span", "quarter", "synthesis span: month, quarter, or year")
	synthesisCmd.Flags().StringVar(&flagLocations, "locations", "configs/locations.json", "JSON location catalog")
	rootCmd.AddCommand(synthesisCmd)

	cityCmd.Flags().StringVar(&flagCity, "name", "", "location name from the catalog")
	cityCmd.Flags().StringVar(&flagLocations, "locations", "configs/locations.json", "JSON location catalog")
	rootCmd.AddCommand(cityCmd)
}

func loadCatalog() (*kb.Store, error) {
	store := kb.NewStore()
	if _, err := store.LoadLocations(flagLocations); err != nil {
		return nil, err
	}
	return store, nil
}

func runSynthesis(cmd *cobra.Command, args []string) error {
	_, jd, natal, err := chartFromFlags()
	if err != nil {
		return err
	}

	var span time.Duration
	switch flagSpan {
	case "month":
		span = core.SpanMonth
	case "quarter":
		span = core.SpanQuarter
	case "year":
		span = core.SpanYear
	default:
		return fmt.Errorf("--span must be month, quarter, or year")
	}

	store, err := loadCatalog()
	if err != nil {
		return err
	}
	locations := make([]model.Location, 0)
	for _, loc := range store.ListLocations() {
		locations = append(locations, *loc)
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	gst := core.GreenwichSiderealTime(jd)
	lines := core.GenerateLines(natal, gst, "natal")

	synthesis, err := engine.TransitSynthesis(cmd.Context(), locations, lines, natal, jd, time.Now().UTC(), span)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), synthesis)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "optimal:")
	for i, e := range synthesis.Optimal {
		fmt.Fprintf(out, "  %2d. %-24s %6.2f  %s\n", i+1, e.Location.Name, e.Score, e.BestWindow.Description)
	}
	fmt.Fprintln(out, "intense:")
	for i, e := range synthesis.Intense {
		fmt.Fprintf(out, "  %2d. %-24s %6.2f  %s\n", i+1, e.Location.Name, e.Score, e.BestWindow.Description)
	}
	return nil
}

func runCity(cmd *cobra.Command, args []string) error {
	_, jd, natal, err := chartFromFlags()
	if err != nil {
		return err
	}
	if flagCity == "" {
		return fmt.Errorf("--name is required")
	}

	store, err := loadCatalog()
	if err != nil {
		return err
	}
	loc := store.GetLocation(flagCity)
	if loc == nil {
		return fmt.Errorf("location %q not in catalog", flagCity)
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	gst := core.GreenwichSiderealTime(jd)
	lines := core.GenerateLines(natal, gst, "natal")

	activation, err := engine.CityActivation(cmd.Context(), *loc, lines, natal, jd, time.Now().UTC())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), activation)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s): %s\n", loc.Name, loc.Country, activation.Overall)
	for _, n := range activation.NearbyLines {
		fmt.Fprintf(out, "  %-12s %-4s %7.1f km  %s (%s)\n",
			n.Body, n.LineType, n.DistanceKm, n.Influence, n.Side)
	}
	for _, a := range activation.ActiveAspects {
		fmt.Fprintf(out, "  active: %s %s natal %s (%s, orb %.2f)\n",
			a.Aspect.MovingBody, a.Aspect.Type, a.Aspect.NatalBody, a.Intensity, a.Aspect.Orb)
	}
	if activation.NextWindow != nil {
		fmt.Fprintf(out, "  next window: %s starting %s\n",
			activation.NextWindow.Description, activation.NextWindow.Start.Format("2006-01-02"))
	}
	if activation.BestVisitWindow != nil {
		fmt.Fprintf(out, "  best visit: %s (score %.2f)\n",
			activation.BestVisitWindow.Window.Description, activation.BestVisitWindow.Score)
	}
	return nil
}
