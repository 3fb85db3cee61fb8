package dataset

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cwbudde/algo-stellar/specio"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// ErrCorruptFlux is returned when a stored flux blob is not a whole number
// of float64 values.
var ErrCorruptFlux = errors.New("dataset: corrupt flux blob")

// Catalog stores spectra in a SQLite database. Emit makes it usable as an
// augmentation sink; it is safe for concurrent use.
type Catalog struct {
	db     *sql.DB
	runID  uuid.UUID
	logger *slog.Logger
}

// CatalogOption configures Open.
type CatalogOption func(*Catalog)

// WithRunID tags emitted rows with id instead of a fresh random one.
func WithRunID(id uuid.UUID) CatalogOption {
	return func(c *Catalog) {
		c.runID = id
	}
}

// WithCatalogLogger sets the logger used for debug output.
func WithCatalogLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// Open opens or creates the catalog at path and applies pending migrations.
func Open(ctx context.Context, path string, opts ...CatalogOption) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("dataset: catalog path is required")
	}
	c := &Catalog{
		runID:  uuid.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("dataset: open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("dataset: ping sqlite db: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("dataset: %w", err)
	}
	c.db = db
	return c, nil
}

// RunID returns the id stored with emitted rows.
func (c *Catalog) RunID() uuid.UUID {
	return c.runID
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Emit stores s with its labels, perturbation state and flux vector.
func (c *Catalog) Emit(ctx context.Context, s *spectrum.Spectrum) error {
	labels, err := s.Labels().Values()
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	st := s.State()
	lo, hi := s.Bounds()

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO spectra (
		   run_id, name, teff, logg, mh, vsini, snr, radial_velocity,
		   wl_min, wl_max, points, flux, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.runID.String(),
		specio.TrimExt(specio.FormatName(s.Labels(), st, true)),
		labels[0], labels[1], labels[2],
		nullable(st.VsiniApplied, st.Vsini),
		nullable(st.NoiseApplied, st.SNR),
		nullable(st.RadialVelocityApplied, st.RadialVelocity),
		lo, hi, s.Len(),
		encodeFlux(s.Fluxes()),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("dataset: insert spectrum: %w", err)
	}
	c.logger.Debug("stored spectrum", slog.String("labels", s.Labels().String()), slog.Int("points", s.Len()))
	return nil
}

// Count returns the number of stored spectra.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spectra`).Scan(&n); err != nil {
		return 0, fmt.Errorf("dataset: count spectra: %w", err)
	}
	return n, nil
}

// Load returns every stored spectrum in insertion order.
func (c *Catalog) Load(ctx context.Context) (Set, error) {
	return c.load(ctx, `SELECT name, teff, logg, mh, flux FROM spectra ORDER BY id`)
}

// LoadRun returns the spectra stored by run id in insertion order.
func (c *Catalog) LoadRun(ctx context.Context, id uuid.UUID) (Set, error) {
	return c.load(ctx, `SELECT name, teff, logg, mh, flux FROM spectra WHERE run_id = ? ORDER BY id`, id.String())
}

func (c *Catalog) load(ctx context.Context, query string, args ...any) (Set, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Set{}, fmt.Errorf("dataset: query spectra: %w", err)
	}
	defer rows.Close()

	var set Set
	for rows.Next() {
		var (
			name   string
			labels [3]float64
			blob   []byte
		)
		if err := rows.Scan(&name, &labels[0], &labels[1], &labels[2], &blob); err != nil {
			return Set{}, fmt.Errorf("dataset: scan spectrum: %w", err)
		}
		flux, err := decodeFlux(blob)
		if err != nil {
			return Set{}, fmt.Errorf("%w: %s", err, name)
		}
		set.Fluxes = append(set.Fluxes, flux)
		set.Labels = append(set.Labels, labels)
		set.Names = append(set.Names, name)
	}
	if err := rows.Err(); err != nil {
		return Set{}, fmt.Errorf("dataset: iterate spectra: %w", err)
	}
	return set, nil
}

func nullable(applied bool, v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: applied}
}

// encodeFlux packs values as little-endian IEEE 754 doubles.
func encodeFlux(values []float64) []byte {
	out := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}

func decodeFlux(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptFlux, len(blob))
	}
	out := make([]float64, len(blob)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[8*i:]))
	}
	return out, nil
}
