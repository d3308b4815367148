// Package analysis runs the full per-temperature pipeline on one raw
// stress-relaxation curve: glass-transition barrier, preprocessing, quality
// scoring, bounded fits of every decay model, AICc model selection and a
// human-readable assessment.
//
// An [Analyzer] is immutable after [New] and safe for concurrent use.
// [Analyzer.AnalyzeAll] fans curves out over a bounded worker group.
//
// Analyze never returns an error. Frozen or unusable curves yield a Result
// with Valid false and a Status and Reason; an individual model that fails
// to fit is recorded as a FitOutcome with OK false and AICc +Inf.
package analysis
