package dataset

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-stellar/specio"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// Set is a collection of flux vectors and their labels. Fluxes[i],
// Labels[i] and Names[i] describe the same spectrum.
type Set struct {
	Fluxes [][]float64
	Labels [][3]float64 // teff, logg, mh
	Names  []string
}

// Len returns the number of spectra.
func (s *Set) Len() int {
	return len(s.Fluxes)
}

// Add appends a labelled spectrum.
func (s *Set) Add(name string, sp *spectrum.Spectrum) error {
	labels, err := sp.Labels().Values()
	if err != nil {
		return fmt.Errorf("dataset: %s: %w", name, err)
	}
	s.Fluxes = append(s.Fluxes, sp.Fluxes())
	s.Labels = append(s.Labels, labels)
	s.Names = append(s.Names, name)
	return nil
}

// Matrix returns the fluxes as a rows-by-points matrix. All spectra must have
// the same number of points.
func (s *Set) Matrix() (*mat.Dense, error) {
	if s.Len() == 0 {
		return nil, spectrum.ErrEmpty
	}
	cols := len(s.Fluxes[0])
	data := make([]float64, 0, s.Len()*cols)
	for i, f := range s.Fluxes {
		if len(f) != cols {
			return nil, fmt.Errorf("%w: %s has %d points, %s has %d",
				spectrum.ErrArrayLengthMismatch, s.Names[i], len(f), s.Names[0], cols)
		}
		data = append(data, f...)
	}
	return mat.NewDense(s.Len(), cols, data), nil
}

// LabelMatrix returns the labels as a rows-by-3 matrix.
func (s *Set) LabelMatrix() (*mat.Dense, error) {
	if s.Len() == 0 {
		return nil, spectrum.ErrEmpty
	}
	data := make([]float64, 0, 3*s.Len())
	for _, l := range s.Labels {
		data = append(data, l[:]...)
	}
	return mat.NewDense(s.Len(), 3, data), nil
}

// BuildFromDir reads every labelled .tsv and .fits file in dir. Reader
// options such as FITS column names or a logger are passed through; labels
// are always parsed from the file names.
func BuildFromDir(dir string, opts ...specio.Option) (Set, error) {
	paths, err := specio.ListSpectra(dir)
	if err != nil {
		return Set{}, err
	}

	read := specio.Reader(append(append([]specio.Option(nil), opts...), specio.WithLabels())...)
	var set Set
	for _, path := range paths {
		sp, err := read(path)
		if err != nil {
			return Set{}, err
		}
		if err := set.Add(specio.TrimExt(filepath.Base(path)), sp); err != nil {
			return Set{}, err
		}
	}
	return set, nil
}
