package lsq

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// NNLS solves the non-negative least-squares problem in Gram form:
//
//	min ½·xᵀGx − bᵀx  subject to x >= 0
//
// which is equivalent to min ‖Ax − y‖² with G = AᵀA and b = Aᵀy. Ridge
// (Tikhonov) regularisation is obtained by adding α to the diagonal of G.
//
// The Lawson-Hanson active-set method is used. maxIter <= 0 selects
// 5·len(b)+10 outer iterations. On ErrMaxIterations the current feasible
// iterate is returned alongside the error.
//
//nolint:gocognit
func NNLS(gram [][]float64, b []float64, maxIter int) ([]float64, error) {
	n := len(b)
	if len(gram) != n {
		return nil, ErrDimension
	}
	for i := range gram {
		if len(gram[i]) != n {
			return nil, ErrDimension
		}
	}
	if maxIter <= 0 {
		maxIter = 5*n + 10
	}

	x := make([]float64, n)
	w := make([]float64, n)
	passive := make([]bool, n)
	blocked := make([]bool, n)

	maxB := 0.0
	for _, v := range b {
		maxB = math.Max(maxB, math.Abs(v))
	}
	if maxB == 0 {
		return x, nil
	}
	tol := maxB * 1e-12

	for iter := 0; ; iter++ {
		for i := range w {
			w[i] = b[i] - vecmath.DotProduct(gram[i], x)
		}

		j := -1
		best := tol
		for i, v := range w {
			if !passive[i] && !blocked[i] && v > best {
				best = v
				j = i
			}
		}
		if j < 0 {
			return x, nil
		}
		if iter >= maxIter {
			return x, ErrMaxIterations
		}

		passive[j] = true
		z, err := solvePassive(gram, b, passive)
		if err != nil || z[j] <= 0 {
			// Adding j cannot improve the objective from here; skip it until
			// the iterate moves.
			passive[j] = false
			blocked[j] = true
			continue
		}

		for inner := 0; inner <= n; inner++ {
			alpha := math.Inf(1)
			limit := -1
			for q := range z {
				if passive[q] && z[q] <= 0 {
					a := x[q] / (x[q] - z[q])
					if a < alpha {
						alpha = a
						limit = q
					}
				}
			}
			if limit < 0 {
				break
			}

			for q := range x {
				if passive[q] {
					x[q] += alpha * (z[q] - x[q])
				}
			}
			x[limit] = 0
			for q := range x {
				if passive[q] && x[q] <= 0 {
					x[q] = 0
					passive[q] = false
				}
			}

			z, err = solvePassive(gram, b, passive)
			if err != nil {
				return x, err
			}
		}

		for q := range x {
			if passive[q] {
				x[q] = z[q]
			} else {
				x[q] = 0
			}
			blocked[q] = false
		}
	}
}

// solvePassive solves the unconstrained subproblem restricted to the passive
// set and scatters the result into a full-length vector.
func solvePassive(gram [][]float64, b []float64, passive []bool) ([]float64, error) {
	idx := make([]int, 0, len(b))
	for i, p := range passive {
		if p {
			idx = append(idx, i)
		}
	}

	out := make([]float64, len(b))
	if len(idx) == 0 {
		return out, nil
	}

	sub := make([][]float64, len(idx))
	rhs := make([]float64, len(idx))
	maxDiag := 0.0
	for a, ia := range idx {
		sub[a] = make([]float64, len(idx))
		for c, ic := range idx {
			sub[a][c] = gram[ia][ic]
		}
		rhs[a] = b[ia]
		maxDiag = math.Max(maxDiag, gram[ia][ia])
	}

	z, err := Solve(sub, rhs)
	if err != nil {
		// Nearly collinear exponentials make the unregularised Gram matrix
		// numerically singular; a trace-scaled jitter restores solvability.
		for a := range sub {
			sub[a][a] += maxDiag * 1e-12
		}
		z, err = Solve(sub, rhs)
		if err != nil {
			return nil, err
		}
	}

	for a, ia := range idx {
		out[ia] = z[a]
	}

	return out, nil
}

// Gram returns AᵀA and Aᵀy for a matrix given as columns (cols[j] is column
// j of A, each of length len(y)).
func Gram(cols [][]float64, y []float64) ([][]float64, []float64, error) {
	n := len(cols)
	g := make([][]float64, n)
	b := make([]float64, n)
	for i := range cols {
		if len(cols[i]) != len(y) {
			return nil, nil, ErrDimension
		}
		g[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		b[i] = vecmath.DotProduct(cols[i], y)
		for j := 0; j <= i; j++ {
			v := vecmath.DotProduct(cols[i], cols[j])
			g[i][j] = v
			g[j][i] = v
		}
	}

	return g, b, nil
}
