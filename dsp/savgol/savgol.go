package savgol

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-relax/internal/lsq"
)

// Errors returned by the filter.
var (
	ErrEmptyInput     = errors.New("savgol: empty input")
	ErrInvalidWindow  = errors.New("savgol: window must be odd and exceed the polynomial order")
	ErrWindowTooLong  = errors.New("savgol: window longer than input")
	ErrInvalidOrder   = errors.New("savgol: polynomial order must be >= 0")
	errKernelSolution = errors.New("savgol: kernel design failed")
)

// directThreshold is the longest kernel convolved with direct dot products.
const directThreshold = 64

// OddWindow returns n rounded up to the next odd integer.
func OddWindow(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

func validate(window, order int) error {
	if order < 0 {
		return ErrInvalidOrder
	}
	if window < 1 || window%2 == 0 || window <= order {
		return fmt.Errorf("%w: window=%d order=%d", ErrInvalidWindow, window, order)
	}
	return nil
}

// Coefficients returns the smoothing kernel of the given odd window length
// and polynomial order. The kernel is symmetric and sums to one.
func Coefficients(window, order int) ([]float64, error) {
	if err := validate(window, order); err != nil {
		return nil, err
	}

	half := window / 2
	k := order + 1

	// Gram matrix of the Vandermonde design over positions -half..half.
	powSums := make([]float64, 2*order+1)
	for j := -half; j <= half; j++ {
		p := 1.0
		for d := range powSums {
			powSums[d] += p
			p *= float64(j)
		}
	}
	gram := make([][]float64, k)
	for a := range gram {
		gram[a] = make([]float64, k)
		for b := range gram[a] {
			gram[a][b] = powSums[a+b]
		}
	}

	e0 := make([]float64, k)
	e0[0] = 1
	a, err := lsq.Solve(gram, e0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errKernelSolution, err)
	}

	kernel := make([]float64, window)
	for j := -half; j <= half; j++ {
		kernel[j+half] = lsq.PolyEval(a, float64(j))
	}

	return kernel, nil
}

// Filter smooths x with a Savitzky-Golay filter and returns a new slice of
// the same length.
func Filter(x []float64, window, order int) ([]float64, error) {
	return filter(x, window, order, window > directThreshold)
}

func filter(x []float64, window, order int, useFFT bool) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if err := validate(window, order); err != nil {
		return nil, err
	}
	if window > len(x) {
		return nil, fmt.Errorf("%w: window=%d len=%d", ErrWindowTooLong, window, len(x))
	}

	kernel, err := Coefficients(window, order)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	half := window / 2

	if useFFT {
		if err := correlateFFT(out[half:len(x)-half], x, kernel); err != nil {
			return nil, err
		}
	} else {
		correlateDirect(out[half:len(x)-half], x, kernel)
	}

	if err := fitEdges(out, x, window, order); err != nil {
		return nil, err
	}

	return out, nil
}

// fitEdges fills the first and last half-window by evaluating a polynomial
// fitted to the outermost full window.
func fitEdges(out, x []float64, window, order int) error {
	half := window / 2
	n := len(x)

	// Positions are centred on the window to keep the normal equations
	// well conditioned for long windows.
	pos := make([]float64, window)
	for i := range pos {
		pos[i] = float64(i - half)
	}

	head, err := lsq.PolyFit(pos, x[:window], order)
	if err != nil {
		return err
	}
	tail, err := lsq.PolyFit(pos, x[n-window:], order)
	if err != nil {
		return err
	}

	for i := 0; i < half; i++ {
		out[i] = lsq.PolyEval(head, float64(i-half))
		out[n-half+i] = lsq.PolyEval(tail, float64(i+1))
	}

	return nil
}
