// Package model defines the step descriptions shared by the pipeline and its options.
package model
