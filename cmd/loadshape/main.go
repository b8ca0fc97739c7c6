package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "loadshape",
		Short: "Duck-curve flattening by dual subgradient ascent",
		Long: `The loadshape tool flattens a daily aggregate load profile (the "duck
curve") by shifting controllable EV load across the 24 hours of the day.
It solves the dual problem with one of three step-size policies and sweeps
the dispersion coefficient sigma to compare how aggressively each setting
flattens the curve. A companion command ranks plugged-in vehicles against
a power budget for a single 15-minute slot.

* GitHub: https://github.com/ja7ad/loadshape

Examples:
  loadshape solve --variant fixed-ascent --sigma 50,100,200
  loadshape solve --config scenario.yaml --csv out/loads.csv --html out/report.html
  loadshape rank --data vehicles.csv --slot 54 --budget -300`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: "15:04:05",
				}),
			))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSolveCmd(), newRankCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
