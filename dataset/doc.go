// Package dataset assembles labelled spectra into training sets.
//
// A [Set] pairs one flux vector per spectrum with its (teff, logg, mh)
// labels. Sets are built from a directory of labelled files with
// [BuildFromDir] or loaded from a [Catalog], a SQLite database that the
// augmentation pipeline can write into directly.
package dataset
