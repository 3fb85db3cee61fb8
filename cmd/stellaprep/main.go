// Command stellaprep prepares stellar spectra for classifier training.
//
// Usage:
//
//	stellaprep <command> [flags]
//
// Commands:
//
//	augment   broaden, shift and noise every spectrum of a directory
//	prepare   resample and normalize every spectrum of a directory
//	cut       copy a directory of .tsv spectra restricted to a wavelength range
//	dataset   summarise a training set built from a directory or catalog
//	info      print properties of individual spectrum files
//
// Settings come from defaults, an optional YAML file (-config or
// STELLAPREP_CONFIG), STELLAPREP_* environment variables and finally flags.
//
// Examples:
//
//	stellaprep augment -in grid -out train -vsini 10,50,100 -snr 100,200 -points 27000 -knot 5
//	stellaprep augment -config sweep.yaml -catalog train.db -random
//	stellaprep cut -in grid -out cut -lo 450 -hi 650
//	stellaprep info grid/5000_4.5_0.0.tsv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"augment": {"broaden, shift and noise every spectrum of a directory", runAugment},
	"prepare": {"resample and normalize every spectrum of a directory", runPrepare},
	"cut":     {"copy .tsv spectra restricted to a wavelength range", runCut},
	"dataset": {"summarise a training set", runDataset},
	"info":    {"print properties of spectrum files", runInfo},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("no command given")
	}
	name := args[0]
	if name == "-h" || name == "-help" || name == "help" {
		usage(stderr)
		return flag.ErrHelp
	}
	cmd, ok := commands[name]
	if !ok {
		usage(stderr)
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(ctx, args[1:], stdout, stderr)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: stellaprep <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-8s  %s\n", n, commands[n].summary)
	}
	fmt.Fprintf(w, "\nRun 'stellaprep <command> -h' for the flags of a command.\n")
}
