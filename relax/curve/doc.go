// Package curve cleans a raw stress-relaxation series into a normalised,
// trimmed decay curve ready for model fitting.
//
// [Trim] drops non-finite and non-positive samples, sorts by time, smooths
// with a Savitzky-Golay filter, cuts the loading ramp before the stress peak
// and any late drift rise, re-zeroes time and normalises by the initial
// modulus G0.
package curve
