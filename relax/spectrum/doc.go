// Package spectrum recovers a discrete relaxation spectrum H(tau) from a
// normalised decay curve by non-negative Tikhonov-regularised inversion of
//
//	g(t) ≈ Σ H_j exp(-t/tau_j)
//
// over a log-spaced tau grid.
package spectrum
