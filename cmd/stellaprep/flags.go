package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-stellar/internal/config"
)

// floatList is a comma-separated list of numbers.
type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	var out floatList
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", part)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// baseFlags are shared by every command.
type baseFlags struct {
	config string
	level  string
}

func newFlagSet(name, usage string, stderr io.Writer, b *baseFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&b.config, "config", "", "YAML configuration file (default $"+config.PathEnv+")")
	fs.StringVar(&b.level, "log", "", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: stellaprep %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

// load reads the configuration and applies the flags the user set through
// apply, which is called once per visited flag.
func load(fs *flag.FlagSet, b *baseFlags, apply func(cfg *config.Config, name string)) (config.Config, error) {
	cfg, err := config.Load(b.config, nil)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "log" {
			cfg.LogLevel = b.level
			return
		}
		if apply != nil {
			apply(&cfg, f.Name)
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
