package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-stellar/augment"
	"github.com/cwbudde/algo-stellar/continuum"
	"github.com/cwbudde/algo-stellar/dataset"
	"github.com/cwbudde/algo-stellar/internal/config"
	"github.com/cwbudde/algo-stellar/internal/logging"
	"github.com/cwbudde/algo-stellar/perturb"
	"github.com/cwbudde/algo-stellar/specio"
)

// sweepFlags holds the flags of augment and prepare.
type sweepFlags struct {
	base      baseFlags
	in, out   string
	catalog   string
	points    int
	lo, hi    float64
	knot      float64
	workers   int
	seed      uint64
	abort     bool
	balmer    bool
	vsini     floatList
	snr       floatList
	rv        floatList
	random    bool
	perturbed bool
}

func (f *sweepFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.in, "in", "", "input directory of .tsv/.fits spectra")
	fs.StringVar(&f.out, "out", "", "output directory for .tsv spectra")
	fs.StringVar(&f.catalog, "catalog", "", "SQLite catalog receiving the spectra")
	fs.IntVar(&f.points, "points", 0, "output grid size, 0 keeps the input sampling")
	fs.Float64Var(&f.lo, "lo", 0, "lower wavelength bound in nm")
	fs.Float64Var(&f.hi, "hi", 0, "upper wavelength bound in nm")
	fs.Float64Var(&f.knot, "knot", 0, "continuum anchor window in nm, 0 skips normalization")
	fs.IntVar(&f.workers, "workers", 0, "concurrent combinations, 0 means one per CPU")
	fs.Uint64Var(&f.seed, "seed", 0, "noise and sampling seed")
	fs.BoolVar(&f.abort, "abort", false, "stop at the first failure instead of skipping it")
	fs.BoolVar(&f.balmer, "balmer", false, "keep continuum anchors out of the Balmer lines")
	if f.perturbed {
		fs.Var(&f.vsini, "vsini", "comma-separated vsini values in km/s")
		fs.Var(&f.snr, "snr", "comma-separated signal-to-noise ratios")
		fs.Var(&f.rv, "rv", "comma-separated radial velocities in km/s")
		fs.BoolVar(&f.random, "random", false, "draw vsini and snr values from the default ranges")
	}
}

func (f *sweepFlags) apply(cfg *config.Config, name string) {
	switch name {
	case "in":
		cfg.Input.Dir = f.in
	case "out":
		cfg.Output.Dir = f.out
	case "catalog":
		cfg.Output.Catalog = f.catalog
	case "points":
		cfg.Grid.Points = f.points
	case "lo":
		cfg.Grid.Lo = f.lo
	case "hi":
		cfg.Grid.Hi = f.hi
	case "knot":
		cfg.Continuum.Knot = f.knot
	case "workers":
		cfg.Workers = f.workers
	case "seed":
		cfg.Seed = f.seed
	case "abort":
		if f.abort {
			cfg.ErrorPolicy = augment.Abort.String()
		}
	case "balmer":
		cfg.Continuum.ExcludeBalmer = f.balmer
	case "vsini":
		cfg.Perturb.Vsini = f.vsini
	case "snr":
		cfg.Perturb.SNR = f.snr
	case "rv":
		cfg.Perturb.RadialVelocity = f.rv
	case "random":
		cfg.Perturb.Random = f.random
	}
}

func runAugment(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return runSweep(ctx, "augment", true, args, stdout, stderr)
}

func runPrepare(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return runSweep(ctx, "prepare", false, args, stdout, stderr)
}

func runSweep(ctx context.Context, name string, perturbed bool, args []string, stdout, stderr io.Writer) error {
	f := &sweepFlags{perturbed: perturbed}
	fs := newFlagSet(name, name+" -in DIR [-out DIR] [-catalog FILE] [flags]", stderr, &f.base)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := load(fs, &f.base, f.apply)
	if err != nil {
		return err
	}
	if cfg.Input.Dir == "" {
		return errors.New("an input directory is required (-in)")
	}
	if cfg.Output.Dir == "" && cfg.Output.Catalog == "" {
		return errors.New("an output directory (-out) or catalog (-catalog) is required")
	}

	plan, err := planFromConfig(cfg, perturbed)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, stderr)
	runID := uuid.New()

	var sinks []augment.Sink
	if cfg.Output.Dir != "" {
		sinks = append(sinks, specio.NewTSVWriter(cfg.Output.Dir))
	}
	if cfg.Output.Catalog != "" {
		cat, err := dataset.Open(ctx, cfg.Output.Catalog,
			dataset.WithRunID(runID), dataset.WithCatalogLogger(logger))
		if err != nil {
			return err
		}
		defer cat.Close()
		sinks = append(sinks, cat)
	}

	p := augment.New(pipelineOptions(cfg, logger, runID, sinks)...)
	logger.Info("starting sweep",
		slog.String("command", name),
		slog.String("in", cfg.Input.Dir),
		slog.Int("combinations", len(plan.Combinations())))

	report, err := p.SweepDir(ctx, cfg.Input.Dir, specio.Reader(readerOptions(cfg.Input, logger)...), plan)
	printReport(stdout, report)
	return err
}

func planFromConfig(cfg config.Config, perturbed bool) (augment.Plan, error) {
	plan := augment.Plan{
		Points: cfg.Grid.Points,
		Window: cfg.Grid.Window(),
		Knot:   cfg.Continuum.Knot,
	}
	if !perturbed {
		return plan, nil
	}

	plan.Vsini = cfg.Perturb.Vsini
	plan.SNR = cfg.Perturb.SNR
	plan.RadialVelocity = cfg.Perturb.RadialVelocity
	if cfg.Perturb.Random && len(plan.Vsini) == 0 && len(plan.SNR) == 0 {
		random, err := augment.RandomPlan(cfg.Seed)
		if err != nil {
			return augment.Plan{}, err
		}
		plan.Vsini, plan.SNR = random.Vsini, random.SNR
	}
	return plan, nil
}

func pipelineOptions(cfg config.Config, logger *slog.Logger, runID uuid.UUID, sinks []augment.Sink) []augment.Option {
	policy := augment.SkipAndLog
	if cfg.ErrorPolicy == augment.Abort.String() {
		policy = augment.Abort
	}

	copts := []continuum.Option{
		continuum.WithSmoothingWidth(cfg.Continuum.SmoothingWidth),
		continuum.WithEdgeOffset(cfg.Continuum.EdgeOffset),
	}
	if cfg.Continuum.ExcludeBalmer {
		copts = append(copts, continuum.WithExcludedBands(continuum.BalmerBands()...))
	}

	return []augment.Option{
		augment.WithLogger(logger),
		augment.WithRunID(runID),
		augment.WithSeed(cfg.Seed),
		augment.WithWorkers(cfg.Workers),
		augment.WithErrorPolicy(policy),
		augment.WithSinks(sinks...),
		augment.WithPerturbOptions(
			perturb.WithMaxVsini(cfg.Perturb.MaxVsini),
			perturb.WithSpacingTolerance(cfg.Perturb.SpacingTolerance),
		),
		augment.WithContinuumOptions(copts...),
	}
}

func readerOptions(in config.InputConfig, logger *slog.Logger) []specio.Option {
	opts := []specio.Option{
		specio.WithLabels(),
		specio.WithHDU(in.HDU),
		specio.WithLogger(logger),
	}
	if in.FluxColumn != "" {
		opts = append(opts, specio.WithColumns(in.WaveColumn, in.FluxColumn, in.ErrorColumn))
	}
	if in.HasErrors {
		opts = append(opts, specio.WithErrorColumn())
	}
	return opts
}

func printReport(w io.Writer, r augment.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "files\t%d\n", r.Files)
	fmt.Fprintf(tw, "emitted\t%d\n", r.Emitted)
	fmt.Fprintf(tw, "skipped\t%d\n", r.Skipped)
	if r.Emitted > 0 {
		fmt.Fprintf(tw, "flux mean\t%.4f\n", r.Flux.Mean)
		fmt.Fprintf(tw, "flux std\t%.4f\n", r.Flux.StdDev)
		fmt.Fprintf(tw, "flux range\t%.4f .. %.4f\n", r.Flux.Min, r.Flux.Max)
	}
	tw.Flush()

	for _, f := range r.Failures {
		where := f.Path
		if f.Combination != nil {
			where += " " + f.Combination.String()
		}
		fmt.Fprintf(w, "failed: %s: %v\n", where, f.Err)
	}
}
