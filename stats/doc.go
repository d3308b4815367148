// Package stats provides small descriptive statistics used to judge the
// trustworthiness of relaxation curves: Kahan-summed means, Welford
// population variance, and monotonicity counters.
//
// All functions are pure and allocation-free unless noted.
package stats
