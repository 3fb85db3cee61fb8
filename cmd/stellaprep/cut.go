package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-stellar/internal/config"
	"github.com/cwbudde/algo-stellar/internal/logging"
	"github.com/cwbudde/algo-stellar/specio"
)

func runCut(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		base    baseFlags
		in, out string
		lo, hi  float64
	)
	fs := newFlagSet("cut", "cut -in DIR -out DIR -lo NM -hi NM", stderr, &base)
	fs.StringVar(&in, "in", "", "input directory of labelled .tsv spectra")
	fs.StringVar(&out, "out", "", "output directory")
	fs.Float64Var(&lo, "lo", 0, "first wavelength to keep, nm")
	fs.Float64Var(&hi, "hi", 0, "wavelength to stop before, nm")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := load(fs, &base, func(cfg *config.Config, name string) {
		switch name {
		case "in":
			cfg.Input.Dir = in
		case "out":
			cfg.Output.Dir = out
		case "lo":
			cfg.Grid.Lo = lo
		case "hi":
			cfg.Grid.Hi = hi
		}
	})
	if err != nil {
		return err
	}
	if cfg.Input.Dir == "" || cfg.Output.Dir == "" {
		return errors.New("both -in and -out are required")
	}
	window := cfg.Grid.Window()
	if window == nil {
		return errors.New("a wavelength range is required (-lo, -hi)")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, stderr)
	n, err := specio.CutDirectory(cfg.Input.Dir, cfg.Output.Dir, window[0], window[1], specio.WithLogger(logger))
	fmt.Fprintf(stdout, "cut %d files to [%g, %g) nm\n", n, window[0], window[1])
	return err
}
