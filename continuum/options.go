package continuum

import (
	"io"
	"log/slog"
)

const (
	// DefaultSmoothingWidth is the boxcar width, in samples, of the copy used
	// to pick anchors.
	DefaultSmoothingWidth = 50

	// DefaultEdgeOffset is how many samples before the end the closing anchor
	// is placed.
	DefaultEdgeOffset = 10
)

// Band is a closed wavelength interval in nanometres.
type Band struct {
	Lo, Hi float64
}

// Contains reports whether w lies in [Lo, Hi].
func (b Band) Contains(w float64) bool {
	return w >= b.Lo && w <= b.Hi
}

// BalmerBands returns the default excluded regions around H-alpha, H-beta,
// H-gamma and H-delta.
func BalmerBands() []Band {
	return []Band{
		{Lo: 653, Hi: 661},
		{Lo: 481, Hi: 491},
		{Lo: 428, Hi: 441},
		{Lo: 406, Hi: 415},
	}
}

// Option configures a Normalizer.
type Option func(*config)

type config struct {
	smoothingWidth int
	edgeOffset     int
	bands          []Band
	logger         *slog.Logger
}

func defaultConfig() config {
	return config{
		smoothingWidth: DefaultSmoothingWidth,
		edgeOffset:     DefaultEdgeOffset,
		bands:          BalmerBands(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSmoothingWidth sets the boxcar width in samples.
func WithSmoothingWidth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.smoothingWidth = n
		}
	}
}

// WithEdgeOffset sets the position of the closing anchor, in samples before
// the last one.
func WithEdgeOffset(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.edgeOffset = n
		}
	}
}

// WithExcludedBands replaces the excluded bands. No arguments disables
// exclusion.
func WithExcludedBands(bands ...Band) Option {
	return func(c *config) {
		c.bands = append([]Band(nil), bands...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
