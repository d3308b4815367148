package lsq

import "errors"

// Errors returned by the solvers.
var (
	ErrDimension       = errors.New("lsq: dimension mismatch")
	ErrSingular        = errors.New("lsq: singular system")
	ErrNonFinite       = errors.New("lsq: non-finite residual")
	ErrMaxEvaluations  = errors.New("lsq: maximum function evaluations exceeded")
	ErrMaxIterations   = errors.New("lsq: maximum iterations exceeded")
	ErrDegenerate      = errors.New("lsq: degenerate regression input")
	ErrInvalidBounds   = errors.New("lsq: lower bound exceeds upper bound")
	ErrTooFewResiduals = errors.New("lsq: fewer residuals than parameters")
)
