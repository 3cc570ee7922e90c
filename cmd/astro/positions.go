package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/model"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Print natal body positions for the birth instant",
	RunE:  runPositions,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	_, jd, natal, err := chartFromFlags()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), natal)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "julian day %.5f\n", jd)
	fmt.Fprintf(out, "%-12s %10s %10s %10s\n", "body", "ecl lon", "ra", "dec")
	for _, p := range natal {
		fmt.Fprintf(out, "%-12s %10.4f %10.4f %10.4f\n",
			p.Body, p.EclipticLongitude, p.RightAscension, p.Declination)
	}
	return nil
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Print astrocartography lines for the birth chart",
	RunE:  runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, args []string) error {
	_, jd, natal, err := chartFromFlags()
	if err != nil {
		return err
	}

	gst := core.GreenwichSiderealTime(jd)
	lines := core.GenerateLines(natal, gst, "natal")

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), lines)
	}

	out := cmd.OutOrStdout()
	type lineKey struct {
		body model.Body
		line model.LineType
	}
	segments := make(map[lineKey]int)
	points := make(map[lineKey]int)
	perBody := make(map[model.Body]bool)
	var order []lineKey
	for _, line := range lines {
		k := lineKey{line.Body, line.LineType}
		if segments[k] == 0 {
			order = append(order, k)
		}
		segments[k]++
		points[k] += len(line.Points)
		perBody[line.Body] = true
	}
	for _, k := range order {
		fmt.Fprintf(out, "%-12s %-4s segments=%d points=%d\n",
			k.body, k.line, segments[k], points[k])
	}
	fmt.Fprintf(out, "%d line segments for %d bodies\n", len(lines), len(perBody))
	return nil
}
