package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/cwbudde/algo-stellar/dataset"
	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/internal/config"
	"github.com/cwbudde/algo-stellar/internal/logging"
)

func runDataset(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		base    baseFlags
		in      string
		catalog string
		shuffle bool
		seed    uint64
	)
	fs := newFlagSet("dataset", "dataset (-in DIR | -catalog FILE) [-shuffle]", stderr, &base)
	fs.StringVar(&in, "in", "", "directory of labelled spectra")
	fs.StringVar(&catalog, "catalog", "", "SQLite catalog written by augment")
	fs.BoolVar(&shuffle, "shuffle", false, "shuffle spectra and labels together")
	fs.Uint64Var(&seed, "seed", 0, "shuffle seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := load(fs, &base, func(cfg *config.Config, name string) {
		switch name {
		case "in":
			cfg.Input.Dir = in
		case "catalog":
			cfg.Output.Catalog = catalog
		case "seed":
			cfg.Seed = seed
		}
	})
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, stderr)

	var set dataset.Set
	switch {
	case cfg.Output.Catalog != "":
		cat, err := dataset.Open(ctx, cfg.Output.Catalog, dataset.WithCatalogLogger(logger))
		if err != nil {
			return err
		}
		defer cat.Close()
		if set, err = cat.Load(ctx); err != nil {
			return err
		}
	case cfg.Input.Dir != "":
		if set, err = dataset.BuildFromDir(cfg.Input.Dir, readerOptions(cfg.Input, logger)...); err != nil {
			return err
		}
	default:
		return errors.New("a directory (-in) or catalog (-catalog) is required")
	}

	if shuffle {
		if err := set.Shuffle(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))); err != nil {
			return err
		}
	}
	return printSet(stdout, &set)
}

func printSet(w io.Writer, set *dataset.Set) error {
	m, err := set.Matrix()
	if err != nil {
		return err
	}
	rows, cols := m.Dims()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "spectra\t%d\n", rows)
	fmt.Fprintf(tw, "points\t%d\n", cols)
	for i, name := range []string{"teff", "logg", "mh"} {
		col := make([]float64, set.Len())
		for j, l := range set.Labels {
			col[j] = l[i]
		}
		lo, hi := core.MinMax(col)
		fmt.Fprintf(tw, "%s\t%g .. %g\n", name, lo, hi)
	}
	fmt.Fprintf(tw, "first\t%s\n", set.Names[0])
	return tw.Flush()
}
