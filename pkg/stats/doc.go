// Package stats implements the estimators used by the lessons and by causal discovery: descriptive
// statistics, ordinary least squares, partial correlation and its significance test, histograms
// and a residual dependence score.
//
// It is a thin layer over gonum. Inputs are plain float64 slices, one per variable.
package stats
