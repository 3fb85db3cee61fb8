package augment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-stellar/continuum"
	"github.com/cwbudde/algo-stellar/grid"
	"github.com/cwbudde/algo-stellar/perturb"
	"github.com/cwbudde/algo-stellar/specio"
	"github.com/cwbudde/algo-stellar/spectrum"
	"github.com/cwbudde/algo-stellar/stats/flux"
)

// Plan lists the parameters of a sweep. Empty parameter lists skip their
// stage; Points == 0 skips resampling and Knot == 0 skips normalization.
type Plan struct {
	Vsini          []float64 // km/s
	SNR            []float64
	RadialVelocity []float64 // km/s

	Points int // output grid size
	Window *[2]float64
	Knot   float64 // continuum anchor window width, nm
}

// Combinations returns every parameter combination of the plan, vsini
// outermost.
func (p Plan) Combinations() []Combination {
	vs := optional(p.Vsini)
	rvs := optional(p.RadialVelocity)
	snrs := optional(p.SNR)

	out := make([]Combination, 0, len(vs)*len(rvs)*len(snrs))
	for _, v := range vs {
		for _, rv := range rvs {
			for _, snr := range snrs {
				out = append(out, Combination{
					Index:          len(out),
					Vsini:          v,
					SNR:            snr,
					RadialVelocity: rv,
				})
			}
		}
	}
	return out
}

// optional turns an empty list into a single nil entry so a skipped stage
// does not collapse the product.
func optional(xs []float64) []*float64 {
	if len(xs) == 0 {
		return []*float64{nil}
	}
	out := make([]*float64, len(xs))
	for i := range xs {
		out[i] = &xs[i]
	}
	return out
}

// Combination is one point of a sweep. Nil parameters skip their stage.
type Combination struct {
	Index          int
	Vsini          *float64
	SNR            *float64
	RadialVelocity *float64
}

// String formats the combination for logs.
func (c Combination) String() string {
	f := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%g", *p)
	}
	return fmt.Sprintf("#%d vsini=%s snr=%s rv=%s", c.Index, f(c.Vsini), f(c.SNR), f(c.RadialVelocity))
}

// Failure describes a combination or file that could not be processed.
type Failure struct {
	Path        string
	Combination *Combination // nil when the file itself failed
	Err         error
}

// Report summarises a sweep.
type Report struct {
	RunID    uuid.UUID
	Files    int
	Emitted  int
	Skipped  int
	Failures []Failure
	Flux     flux.Stats // over every emitted flux sample
}

// Reader loads a spectrum file.
type Reader func(path string) (*spectrum.Spectrum, error)

// Pipeline runs augmentation sweeps.
type Pipeline struct {
	cfg        config
	runID      uuid.UUID
	broadener  *perturb.Broadener
	shifter    *perturb.Shifter
	normalizer *continuum.Normalizer
}

// New creates a Pipeline. Without WithRunID it gets a fresh random run id.
func New(opts ...Option) *Pipeline {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	runID := cfg.runID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	cfg.logger = cfg.logger.With(slog.String("run", runID.String()))
	popts := append([]perturb.Option{perturb.WithLogger(cfg.logger)}, cfg.perturbOpts...)
	copts := append([]continuum.Option{continuum.WithLogger(cfg.logger)}, cfg.continuumOpt...)

	return &Pipeline{
		cfg:        cfg,
		runID:      runID,
		broadener:  perturb.NewBroadener(popts...),
		shifter:    perturb.NewShifter(popts...),
		normalizer: continuum.NewNormalizer(copts...),
	}
}

// RunID identifies the spectra produced by this pipeline.
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

// sweep carries the mutable state shared by the workers of one run.
type sweep struct {
	mu     sync.Mutex
	report Report
	stats  *flux.StreamingStats
}

func (p *Pipeline) newSweep() *sweep {
	return &sweep{
		report: Report{RunID: p.runID},
		stats:  flux.NewStreamingStats(),
	}
}

func (sw *sweep) fail(f Failure) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.report.Skipped++
	sw.report.Failures = append(sw.report.Failures, f)
}

func (sw *sweep) emitted(fl []float64) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.report.Emitted++
	sw.stats.Update(fl)
}

func (sw *sweep) result() Report {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	r := sw.report
	r.Flux = sw.stats.Result()
	return r
}

// Sweep runs every combination of plan on base.
func (p *Pipeline) Sweep(ctx context.Context, base *spectrum.Spectrum, plan Plan) (Report, error) {
	sw := p.newSweep()
	err := p.sweepOne(ctx, sw, "", 0, base, plan)
	return sw.result(), err
}

// SweepDir reads every .fits and .tsv file in dir with read and sweeps it.
// Files are processed in name order; AppleDouble "._" files are ignored.
func (p *Pipeline) SweepDir(ctx context.Context, dir string, read Reader, plan Plan) (Report, error) {
	paths, err := specio.ListSpectra(dir)
	if err != nil {
		return Report{RunID: p.runID}, err
	}

	sw := p.newSweep()
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return sw.result(), err
		}

		p.cfg.logger.Info("sweeping file", slog.String("path", path))
		sw.mu.Lock()
		sw.report.Files++
		sw.mu.Unlock()

		base, err := read(path)
		if err != nil {
			if p.cfg.policy == Abort {
				return sw.result(), fmt.Errorf("augment: %s: %w", path, err)
			}
			p.cfg.logger.Warn("skipping unreadable spectrum", slog.String("path", path), slog.Any("err", err))
			sw.fail(Failure{Path: path, Err: err})
			continue
		}

		if err := p.sweepOne(ctx, sw, path, uint64(i), base, plan); err != nil {
			return sw.result(), err
		}
	}
	return sw.result(), nil
}

func (p *Pipeline) sweepOne(ctx context.Context, sw *sweep, path string, file uint64, base *spectrum.Spectrum, plan Plan) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.workers)

	for _, c := range plan.Combinations() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.Run(base, plan, c, DeriveSeed(p.cfg.seed, file, uint64(c.Index)))
			if err == nil {
				err = p.emit(gctx, out)
			}
			if err == nil {
				sw.emitted(out.Fluxes())
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return err
			}

			if p.cfg.policy == Abort {
				return fmt.Errorf("augment: %s %s: %w", base, c, err)
			}
			p.cfg.logger.Warn("skipping combination",
				slog.String("path", path),
				slog.String("combination", c.String()),
				slog.Any("err", err))
			sw.fail(Failure{Path: path, Combination: &c, Err: err})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Run applies the stages of plan selected by c to base. seed drives the
// noise stage.
func (p *Pipeline) Run(base *spectrum.Spectrum, plan Plan, c Combination, seed uint64) (*spectrum.Spectrum, error) {
	s := base
	var err error

	if c.RadialVelocity != nil {
		if s, err = p.shifter.Apply(s, *c.RadialVelocity); err != nil {
			return nil, err
		}
	}
	if c.Vsini != nil {
		if s, err = p.broadener.Apply(s, *c.Vsini); err != nil {
			return nil, err
		}
	}
	if c.SNR != nil {
		opts := append([]perturb.Option{perturb.WithLogger(p.cfg.logger)}, p.cfg.perturbOpts...)
		opts = append(opts, perturb.WithSeed(seed))
		if s, err = perturb.NewNoiseInjector(opts...).Apply(s, *c.SNR); err != nil {
			return nil, err
		}
	}
	if plan.Points > 0 {
		gopts := []grid.Option{grid.WithLogger(p.cfg.logger)}
		if plan.Window != nil {
			gopts = append(gopts, grid.WithWindow(plan.Window[0], plan.Window[1]))
		}
		if s, err = grid.Resample(s, plan.Points, gopts...); err != nil {
			return nil, err
		}
	}
	if plan.Knot > 0 {
		if s, _, err = p.normalizer.Normalize(s, plan.Knot); err != nil {
			return nil, err
		}
	}

	p.cfg.logger.Debug("combination done",
		slog.String("combination", c.String()),
		slog.Float64("der_snr", flux.DERSNR(s.Fluxes())))
	return s, nil
}

func (p *Pipeline) emit(ctx context.Context, s *spectrum.Spectrum) error {
	for _, sink := range p.cfg.sinks {
		if err := sink.Emit(ctx, s); err != nil {
			return fmt.Errorf("augment: sink: %w", err)
		}
	}
	return nil
}

// DeriveSeed mixes a base seed with indices into an independent seed
// (splitmix64 finalizer), so per-combination noise does not depend on
// scheduling order.
func DeriveSeed(base uint64, parts ...uint64) uint64 {
	x := base
	for _, p := range parts {
		x ^= p + 0x9e3779b97f4a7c15 + (x << 6) + (x >> 2)
		x ^= x >> 30
		x *= 0xbf58476d1ce4e5b9
		x ^= x >> 27
		x *= 0x94d049bb133111eb
		x ^= x >> 31
	}
	return x
}
