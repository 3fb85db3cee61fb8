package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/internal/logging"
	"github.com/cwbudde/algo-stellar/specio"
	"github.com/cwbudde/algo-stellar/spectrum"
	"github.com/cwbudde/algo-stellar/stats/flux"
)

func runInfo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		base      baseFlags
		hasErrors bool
		tol       float64
	)
	fs := newFlagSet("info", "info [flags] FILE...", stderr, &base)
	fs.BoolVar(&hasErrors, "errors", false, "files carry a third error column")
	fs.Float64Var(&tol, "tol", 1e-6, "relative tolerance of the uniform spacing check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no files given")
	}

	cfg, err := load(fs, &base, nil)
	if err != nil {
		return err
	}
	opts := []specio.Option{specio.WithLogger(logging.New(cfg.LogLevel, stderr))}
	if hasErrors {
		opts = append(opts, specio.WithErrorColumn())
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "file\tpoints\trange nm\tstep nm\tmean\tstd\tder_snr\tlabels\tapplied")
	var failed error
	for _, path := range fs.Args() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := specio.Read(path, opts...)
		if err != nil {
			failed = errors.Join(failed, err)
			continue
		}
		printInfo(tw, path, s, tol)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return failed
}

func printInfo(w io.Writer, path string, s *spectrum.Spectrum, tol float64) {
	lo, hi := s.Bounds()
	step := "irregular"
	if d, err := core.UniformStep(s.Wavelengths(), tol); err == nil {
		step = fmt.Sprintf("%.6g", d)
	}

	fl := s.Fluxes()
	st := flux.Calculate(fl)

	labels, applied := "-", "-"
	if l, state, err := specio.ParseFilename(path); err == nil {
		labels = l.String()
		applied = describeState(state)
	}

	fmt.Fprintf(w, "%s\t%d\t%.4f..%.4f\t%s\t%.4f\t%.4f\t%.1f\t%s\t%s\n",
		path, s.Len(), lo, hi, step, st.Mean, st.StdDev, flux.DERSNR(fl), labels, applied)
}

func describeState(st spectrum.State) string {
	out := ""
	add := func(applied bool, format string, v float64) {
		if !applied {
			return
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf(format, v)
	}
	add(st.VsiniApplied, "vsini=%g", st.Vsini)
	add(st.NoiseApplied, "snr=%g", st.SNR)
	add(st.RadialVelocityApplied, "rv=%g", st.RadialVelocity)
	if out == "" {
		return "-"
	}
	return out
}
