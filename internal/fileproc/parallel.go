// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/scry-dev/scry/pkg/parser"
	"github.com/scry-dev/scry/pkg/source"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for the
// worker count. 2x is optimal for mixed I/O and CGO workloads.
const DefaultWorkerMultiplier = 2

func workerCount() int {
	return runtime.NumCPU() * DefaultWorkerMultiplier
}

// MapFiles processes files in parallel, calling fn for each file with a
// dedicated parser and the file's content read from src. Results are
// returned in arbitrary order; callers needing stable output sort by
// path afterwards. Per-file failures are collected, not fatal.
func MapFiles[T any](ctx context.Context, files []string, src source.ContentSource, fn func(p *parser.Parser, path string, content []byte) (T, error)) ([]T, *ProcessingErrors) {
	errs := &ProcessingErrors{}
	if len(files) == 0 {
		return nil, errs
	}
	if src == nil {
		src = source.NewFilesystem()
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(workerCount())
	for _, path := range files {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}

			content, err := src.Read(path)
			if err != nil {
				errs.Add(path, err)
				return
			}

			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, path, content)
			if err != nil {
				errs.Add(path, err)
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		errs.Add("", err)
	}
	return results, errs
}

// ForEachFile processes files in parallel without a parser; use this
// for non-AST detectors such as the comment scanner.
func ForEachFile[T any](ctx context.Context, files []string, src source.ContentSource, fn func(path string, content []byte) (T, error)) ([]T, *ProcessingErrors) {
	errs := &ProcessingErrors{}
	if len(files) == 0 {
		return nil, errs
	}
	if src == nil {
		src = source.NewFilesystem()
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(workerCount())
	for _, path := range files {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}

			content, err := src.Read(path)
			if err != nil {
				errs.Add(path, err)
				return
			}

			result, err := fn(path, content)
			if err != nil {
				errs.Add(path, err)
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		errs.Add("", err)
	}
	return results, errs
}
