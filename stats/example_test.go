package stats_test

import (
	"fmt"

	"github.com/cwbudde/algo-relax/stats"
)

func ExampleSignChanges() {
	fmt.Println(stats.SignChanges([]float64{1, 0.8, 0.9, 0.7, 0.6}))

	// Output:
	// 2
}
