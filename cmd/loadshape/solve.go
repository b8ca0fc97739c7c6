package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja7ad/loadshape/pkg/profile"
	"github.com/ja7ad/loadshape/pkg/scenario"
	"github.com/ja7ad/loadshape/pkg/solver"
)

type solveOpts struct {
	configPath string
	variant    string
	baseline   string
	sigmas     []float64

	// solver
	fleet   int
	alpha   float64
	maxIter int
	tol     float64
	workers int

	// presentation
	offset float64
	pretty bool

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
}

// run is everything a report writer needs about one sweep.
type run struct {
	Variant  solver.Variant
	Config   solver.Config
	Baseline profile.Profile
	Sigmas   []float64
	Results  map[float64]solver.Result
	Offset   float64
	Elapsed  time.Duration
}

func newSolveCmd() *cobra.Command {
	var o solveOpts

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Sweep sigma values and report the shaped load for each",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := prepare(cmd, o)
			if err != nil {
				return err
			}
			return solve(cmd.Context(), r, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML scenario file; flags override its values")
	f.StringVar(&o.variant, "variant", "fixed-ascent", "step-size policy: fixed-ascent, incremental-constant, incremental-decreasing")
	f.StringVar(&o.baseline, "baseline", "", "24 comma-separated hourly loads in kW (default: reference duck curve)")
	f.Float64SliceVarP(&o.sigmas, "sigma", "s", nil, "sigma values to sweep (default depends on variant)")

	f.IntVarP(&o.fleet, "fleet", "n", 200, "number of vehicles N")
	f.Float64VarP(&o.alpha, "alpha", "a", 0.5, "constant step size (fixed-ascent, incremental-constant)")
	f.IntVar(&o.maxIter, "max-iter", 0, "iteration cap (default depends on variant)")
	f.Float64Var(&o.tol, "tol", 0, "convergence tolerance on the λ update norm (default depends on variant)")
	f.IntVarP(&o.workers, "workers", "w", 0, "sigma values solved concurrently (0 = GOMAXPROCS)")

	f.Float64Var(&o.offset, "display-offset", 0, "vertical shift applied to shaped loads in the table and HTML only (default depends on variant)")
	f.BoolVar(&o.pretty, "pretty", true, "format output as a table instead of CSV-like lines")

	f.StringVar(&o.csvPath, "csv", "", "write hourly loads per sigma to CSV file")
	f.StringVar(&o.jsonPath, "json", "", "write full results to JSON file")
	f.StringVar(&o.htmlPath, "html", "", "write summary and hourly loads to HTML file")
	return cmd
}

// prepare resolves scenario file, defaults and flag overrides into a run.
func prepare(cmd *cobra.Command, o solveOpts) (*run, error) {
	sc := &scenario.Scenario{}
	if o.configPath != "" {
		var err error
		if sc, err = scenario.Load(o.configPath); err != nil {
			return nil, err
		}
		slog.Debug("scenario loaded", "path", o.configPath)
	}

	changed := cmd.Flags().Changed
	if changed("variant") || sc.Variant == "" {
		sc.Variant = o.variant
	}
	v, err := sc.ResolvedVariant()
	if err != nil {
		return nil, err
	}

	cfg := sc.Config(v)
	if changed("fleet") {
		cfg.FleetSize = o.fleet
	}
	if changed("alpha") {
		cfg.StepSize = o.alpha
	}
	if changed("max-iter") {
		cfg.MaxIterations = o.maxIter
	}
	if changed("tol") {
		cfg.Tolerance = o.tol
	}

	var base profile.Profile
	if changed("baseline") {
		base, err = profile.Parse(o.baseline)
	} else {
		base, err = sc.Profile()
	}
	if err != nil {
		return nil, err
	}

	sigmas := sc.SigmaSet(v)
	if changed("sigma") {
		sigmas = o.sigmas
	}

	offset := sc.DisplayOffset(v)
	if changed("display-offset") {
		offset = o.offset
	}

	return &run{
		Variant:  v,
		Config:   cfg,
		Baseline: base,
		Sigmas:   sigmas,
		Offset:   offset,
	}, nil
}

func solve(ctx context.Context, r *run, o solveOpts) error {
	slog.Info("solving",
		"variant", r.Variant,
		"sigmas", r.Sigmas,
		"fleet", r.Config.FleetSize,
		"alpha", r.Config.StepSize,
		"max_iter", r.Config.MaxIterations,
		"tol", r.Config.Tolerance,
	)

	start := time.Now()
	results, err := solver.Sweep(ctx, r.Baseline, r.Config, r.Variant, r.Sigmas, solver.WithWorkers(o.workers))
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	r.Results = results
	r.Elapsed = time.Since(start)
	r.Sigmas = solver.Sigmas(results)

	for _, s := range r.Sigmas {
		res := results[s]
		if !res.Converged {
			slog.Warn("iteration cap reached before convergence",
				"sigma", s, "iterations", res.Iterations, "residual", res.Residual)
			continue
		}
		slog.Debug("converged", "sigma", s, "iterations", res.Iterations, "residual", res.Residual)
	}

	if o.pretty {
		printSummaryTable(r)
		printHourlyTable(r)
	} else {
		printCsvLike(r)
	}

	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(w io.Writer) error { return writeLoadsCSV(w, r) }); err != nil {
			slog.Error("write csv", "err", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeFile(o.jsonPath, func(w io.Writer) error { return writeJSON(w, r) }); err != nil {
			slog.Error("write json", "err", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(w io.Writer) error { return writeHTML(w, r) }); err != nil {
			slog.Error("write html", "err", err)
		}
	}

	slog.Info("done", "runs", len(r.Sigmas), "elapsed", r.Elapsed)
	return nil
}
