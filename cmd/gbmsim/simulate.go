package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"gbm-go-api/internal/gbm"
)

func newSimulateCmd() *cobra.Command {
	var (
		initial    float64
		drift      float64
		volatility float64
		horizon    float64
		steps      int
		seed       int64
		output     string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a single GBM path and print its summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []gbm.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, gbm.WithSeed(seed))
			}

			sim, err := gbm.NewSimulator(initial, drift, volatility, opts...)
			if err != nil {
				return err
			}

			path, err := sim.SimulatePath(horizon, steps)
			if err != nil {
				return err
			}

			mean, err := stats.Mean(path.Values)
			if err != nil {
				return fmt.Errorf("summarize path: %w", err)
			}
			std, err := stats.StandardDeviation(path.Values)
			if err != nil {
				return fmt.Errorf("summarize path: %w", err)
			}

			final := path.Values[len(path.Values)-1]
			fmt.Printf("Final value: %.4f, mean: %.4f, std: %.4f\n", final, mean, std)

			if output != "" {
				if err := writePathCSV(output, path); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Printf("Path saved to %s\n", output)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&initial, "y0", 100.0, "Initial value Y(0)")
	cmd.Flags().Float64Var(&drift, "mu", 0.05, "Drift per unit time")
	cmd.Flags().Float64Var(&volatility, "sigma", 0.2, "Volatility per unit time")
	cmd.Flags().Float64Var(&horizon, "horizon", 1.0, "Time horizon T")
	cmd.Flags().IntVar(&steps, "steps", 100, "Number of discretization steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (omit for system entropy)")
	cmd.Flags().StringVar(&output, "output", "", "Write the path to this CSV file")

	return cmd
}

func writePathCSV(name string, path gbm.Path) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"t", "y"}); err != nil {
		return err
	}
	for i := range path.Times {
		record := []string{
			strconv.FormatFloat(path.Times[i], 'g', -1, 64),
			strconv.FormatFloat(path.Values[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
