// Package quality scores how trustworthy a normalised relaxation curve is.
//
// The score blends three sub-scores: tail noise, total relaxation range and
// monotonicity (wiggle). See [Score] and [Tier].
package quality
