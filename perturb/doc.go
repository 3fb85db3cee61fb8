// Package perturb simulates observational effects on stellar spectra:
// rotational broadening, photon noise and Doppler shifts.
//
// Each perturbation is one-shot. Applying it to a spectrum that already
// carries it fails with the matching spectrum.Err*AlreadyApplied error, and
// every Apply returns a new spectrum, leaving its input untouched.
//
// # Usage
//
//	b := perturb.NewBroadener(perturb.WithLogger(log))
//	broadened, err := b.Apply(s, 50)           // vsini in km/s
//
//	n := perturb.NewNoiseInjector(perturb.WithSeed(7))
//	noisy, err := n.Apply(broadened, 150)      // SNR
//
//	sh := perturb.NewShifter()
//	shifted, err := sh.Apply(noisy, 12.5)      // radial velocity in km/s
//
// # Rotational kernel
//
// The broadening kernel integrates the classical limb-darkened rotational
// profile (Gray 1992) over each wavelength bin in closed form, with
// dedicated expressions for the centre bin and the two partially covered
// edge bins. The limb-darkening coefficient is fixed at 0.6. Broadening acts
// on the absorption depth 1-flux, so a flat unit continuum is unchanged.
package perturb
