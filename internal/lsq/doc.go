// Package lsq provides the least-squares solvers behind curve fitting:
// a box-constrained Levenberg-Marquardt for nonlinear models, a
// Lawson-Hanson non-negative solver operating on Gram systems, ordinary
// linear regression, and small dense linear solves.
//
// The solvers are sized for the problems this module produces (a handful of
// model parameters, at most a few hundred spectrum modes) and favour
// determinism over speed: identical inputs always yield identical outputs.
package lsq
