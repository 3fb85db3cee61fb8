package augment

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-stellar/continuum"
	"github.com/cwbudde/algo-stellar/perturb"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// Sink receives finished spectra. Emit may be called from several goroutines
// at once.
type Sink interface {
	Emit(ctx context.Context, s *spectrum.Spectrum) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s *spectrum.Spectrum) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, s *spectrum.Spectrum) error {
	return f(ctx, s)
}

// ErrorPolicy selects how a sweep reacts to a failing combination or file.
type ErrorPolicy int

const (
	// SkipAndLog records the failure and continues.
	SkipAndLog ErrorPolicy = iota
	// Abort cancels the sweep and returns the first error.
	Abort
)

// String returns the policy name used in configuration files.
func (p ErrorPolicy) String() string {
	switch p {
	case SkipAndLog:
		return "skip"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	workers      int
	seed         uint64
	sinks        []Sink
	policy       ErrorPolicy
	perturbOpts  []perturb.Option
	continuumOpt []continuum.Option
	runID        uuid.UUID
}

func defaultConfig() config {
	return config{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers: runtime.GOMAXPROCS(0),
		seed:    1,
	}
}

// WithLogger sets the logger. It is also handed to every stage.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers bounds the number of combinations processed concurrently.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeed sets the seed all per-combination noise seeds derive from.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithSinks appends sinks that receive every finished spectrum.
func WithSinks(sinks ...Sink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sinks...)
	}
}

// WithErrorPolicy selects skip-and-log or abort behaviour.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithPerturbOptions passes options to the broadening, noise and shift stages.
func WithPerturbOptions(opts ...perturb.Option) Option {
	return func(c *config) {
		c.perturbOpts = append(c.perturbOpts, opts...)
	}
}

// WithContinuumOptions passes options to the continuum normalizer.
func WithContinuumOptions(opts ...continuum.Option) Option {
	return func(c *config) {
		c.continuumOpt = append(c.continuumOpt, opts...)
	}
}

// WithRunID sets the run id instead of generating one, so that other sinks
// can share it.
func WithRunID(id uuid.UUID) Option {
	return func(c *config) {
		c.runID = id
	}
}
