package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagMonths int
	flagFrom   string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan ahead for activation windows",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVar(&flagMonths, "months", 6, "scan horizon in months (1-60)")
	scanCmd.Flags().StringVar(&flagFrom, "from", "", "scan start date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	_, jd, natal, err := chartFromFlags()
	if err != nil {
		return err
	}
	if flagMonths < 1 || flagMonths > 60 {
		return fmt.Errorf("--months must be between 1 and 60")
	}

	start := time.Now().UTC()
	if flagFrom != "" {
		start, err = time.Parse("2006-01-02", flagFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	windows, err := engine.Scanner.Scan(cmd.Context(), natal, jd, start, start.AddDate(0, flagMonths, 0))
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), windows)
	}

	out := cmd.OutOrStdout()
	for _, w := range windows {
		fmt.Fprintf(out, "%s  %s .. %s  exact %s  (%s, orb %.2f)\n",
			w.Description,
			w.Start.Format("2006-01-02"),
			w.End.Format("2006-01-02"),
			w.Exact.Format("2006-01-02"),
			w.WindowType,
			w.MinOrb,
		)
	}
	fmt.Fprintf(out, "%d windows over %d months\n", len(windows), flagMonths)
	return nil
}
