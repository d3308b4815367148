package lsq

import "math"

// Solve solves the dense square system a·x = b by Gaussian elimination with
// partial pivoting. a and b are not modified.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if len(a) != n {
		return nil, ErrDimension
	}

	m := make([][]float64, n)
	for i := range a {
		if len(a[i]) != n {
			return nil, ErrDimension
		}
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		m[i] = row
	}

	scale := 0.0
	for i := range m {
		for j := 0; j < n; j++ {
			scale = math.Max(scale, math.Abs(m[i][j]))
		}
	}
	if scale == 0 {
		return nil, ErrSingular
	}
	tiny := scale * 1e-15

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) <= tiny {
			return nil, ErrSingular
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			if f == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		s := m[i][n]
		for j := i + 1; j < n; j++ {
			s -= m[i][j] * x[j]
		}
		x[i] = s / m[i][i]
	}

	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrSingular
		}
	}

	return x, nil
}

// PolyFit fits a polynomial of the given order to (x, y) in the least-squares
// sense and returns its coefficients in ascending power order.
func PolyFit(x, y []float64, order int) ([]float64, error) {
	if len(x) != len(y) || order < 0 {
		return nil, ErrDimension
	}
	k := order + 1
	if len(x) < k {
		return nil, ErrTooFewResiduals
	}

	// Normal equations: sums of x^(i+j) and x^i*y.
	powSums := make([]float64, 2*order+1)
	rhs := make([]float64, k)
	for i, xi := range x {
		p := 1.0
		for d := range powSums {
			powSums[d] += p
			if d < k {
				rhs[d] += p * y[i]
			}
			p *= xi
		}
	}

	gram := make([][]float64, k)
	for i := range gram {
		gram[i] = make([]float64, k)
		for j := range gram[i] {
			gram[i][j] = powSums[i+j]
		}
	}

	return Solve(gram, rhs)
}

// PolyEval evaluates ascending-order coefficients at x using Horner's rule.
func PolyEval(coeffs []float64, x float64) float64 {
	var y float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}
