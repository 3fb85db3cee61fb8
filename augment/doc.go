// Package augment expands a base spectrum into a family of perturbed copies
// for training-set augmentation.
//
// For every combination of the planned rotational velocities, signal-to-noise
// ratios and (optionally) radial velocities the pipeline runs
//
//	shift -> broaden -> add noise -> resample -> normalize
//
// on the base spectrum and hands the result to its sinks. Stages without
// parameters in the [Plan] are skipped. Spectra are immutable, so the
// combinations never see each other's changes and can run concurrently.
//
// # Usage
//
//	p := augment.New(
//		augment.WithSinks(writer),
//		augment.WithWorkers(8),
//		augment.WithSeed(42),
//	)
//	report, err := p.Sweep(ctx, base, augment.Plan{
//		Vsini: []float64{10, 50, 100},
//		SNR:   []float64{50, 150},
//	})
//
// [Pipeline.SweepDir] does the same for every spectrum file of a directory.
// With the default [SkipAndLog] policy a failing combination or file is
// logged and recorded in the [Report]; [Abort] stops at the first failure.
package augment
