package analyzer

import (
	"context"
)

// FileAnalyzer is the interface implemented by detectors.
// It provides a standard way to analyze collections of files with
// context support for cancellation and progress reporting.
type FileAnalyzer[T any] interface {
	// Analyze processes a collection of files and returns the result.
	Analyze(ctx context.Context, files []string) (T, error)

	// Close releases any resources held by the analyzer.
	Close()
}
