package specio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CutDirectory copies every labelled .tsv spectrum in in to out, keeping
// only the samples in [lo, hi). Output names carry the perturbation
// parameters parsed from the input names. It returns the number of files
// written.
func CutDirectory(in, out string, lo, hi float64, opts ...Option) (int, error) {
	entries, err := os.ReadDir(in)
	if err != nil {
		return 0, fmt.Errorf("specio: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "._") || !strings.EqualFold(filepath.Ext(name), extTSV) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	cfg := applyOptions(opts)
	readOpts := append(append([]Option(nil), opts...), WithLabels(), WithRange(lo, hi))
	w := NewTSVWriter(out)
	for i, name := range names {
		s, err := ReadTSV(filepath.Join(in, name), readOpts...)
		if err != nil {
			return i, err
		}
		if err := w.Write(s); err != nil {
			return i, err
		}
		cfg.logger.Debug("cut", "file", name, "samples", s.Len())
	}
	return len(names), nil
}
