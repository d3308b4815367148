package analysis

import (
	"math"

	"github.com/cwbudde/algo-relax/stats"
)

const rssFloor = 1e-15

// RSquared returns 1 - RSS/TSS, or 0 when the data has no variance.
func RSquared(data []float64, rss float64) float64 {
	tss := stats.SumSquaredDeviation(data)
	if tss <= 0 {
		return 0
	}
	return 1 - rss/tss
}

// AICc is the small-sample corrected Akaike criterion for n residuals and k
// parameters. It is +Inf when n <= k+1.
func AICc(rss float64, n, k int) float64 {
	if n <= k+1 {
		return math.Inf(1)
	}
	nf, kf := float64(n), float64(k)
	aic := 2*kf + nf*math.Log(math.Max(rss, rssFloor)/nf)
	return aic + 2*kf*(kf+1)/(nf-kf-1)
}

func residualSumSquares(data, pred []float64) float64 {
	var sum float64
	for i := range data {
		d := data[i] - pred[i]
		sum += d * d
	}
	return sum
}
