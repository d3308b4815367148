// Package model defines the parametric decay models fitted to normalised
// stress-relaxation curves.
//
// The set is closed: Maxwell (single exponential), SingleStretched
// (Kohlrausch-Williams-Watts) and DualStretched (two stretched modes mixed
// by a fast-mode fraction). Each variant implements [Model], exposing
// evaluation, a heuristic initial guess, parameter bounds and named
// parameters, so callers look up "tau" or "tau1" by name rather than by
// position.
//
// Models are stateless values and safe for concurrent use.
package model
