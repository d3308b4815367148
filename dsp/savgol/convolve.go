package savgol

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// correlateDirect writes the valid-mode correlation of x with kernel into
// dst, which must have length len(x)-len(kernel)+1.
func correlateDirect(dst, x, kernel []float64) {
	m := len(kernel)
	for i := range dst {
		dst[i] = vecmath.DotProduct(x[i:i+m], kernel)
	}
}

// correlateFFT computes the same valid-mode correlation through a single
// zero-padded FFT convolution. The kernel is symmetric, so convolution and
// correlation coincide.
func correlateFFT(dst, x, kernel []float64) error {
	n := len(x)
	m := len(kernel)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("savgol: failed to create FFT plan: %w", err)
	}

	signal := make([]complex128, fftSize)
	for i, v := range x {
		signal[i] = complex(v, 0)
	}
	taps := make([]complex128, fftSize)
	for i, v := range kernel {
		taps[i] = complex(v, 0)
	}

	if err := plan.Forward(signal, signal); err != nil {
		return fmt.Errorf("savgol: forward FFT failed: %w", err)
	}
	if err := plan.Forward(taps, taps); err != nil {
		return fmt.Errorf("savgol: kernel FFT failed: %w", err)
	}
	for i := range signal {
		signal[i] *= taps[i]
	}
	if err := plan.Inverse(signal, signal); err != nil {
		return fmt.Errorf("savgol: inverse FFT failed: %w", err)
	}

	// Full convolution index m-1 is the first fully overlapping sample.
	for i := range dst {
		dst[i] = real(signal[i+m-1])
	}

	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
