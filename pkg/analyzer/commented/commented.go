// Package commented flags comment lines that look like disabled code
// rather than prose. The check is a text heuristic over // line
// comments: prose-shaped remainders and annotation markers are
// skipped, everything matching a small table of code shapes is
// flagged. It deliberately trades precision for zero parsing cost; a
// capitalized identifier starting a comment reads as prose.
package commented

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/scry-dev/scry/internal/fileproc"
	"github.com/scry-dev/scry/pkg/analyzer"
	"github.com/scry-dev/scry/pkg/source"
)

var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// lineMarker introduces the comments this check reads. Block comments
// are out of scope.
const lineMarker = "//"

// DefaultAnnotations are markers whose lines are never flagged when
// followed by a colon.
var DefaultAnnotations = []string{"TODO", "FIXME", "NOTE", "HACK"}

// proseShape matches a capitalized word followed by a lowercase
// letter, the usual start of an English sentence.
var proseShape = regexp.MustCompile(`^[A-Z][a-z]`)

// codeShapes are tried in order; the first hit flags the line.
var codeShapes = []*regexp.Regexp{
	// leading JS keyword
	regexp.MustCompile(`^(?:const|let|var|function|return|if|else|for|while|switch|case|break|continue|class|new|import|export|throw|try|catch|finally|await|async|typeof|delete|yield|do)\b`),
	// identifier immediately assigned, called, or opened
	regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*\s*[=({]`),
	// statement-ish trailing punctuation
	regexp.MustCompile(`[;)\]}]\s*$`),
	// dotted member access
	regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(?:\.[A-Za-z_$][A-Za-z0-9_$]*)+`),
	// console call anywhere on the line
	regexp.MustCompile(`\bconsole\.[A-Za-z]+\s*\(`),
	// generic call expression
	regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*\s*\([^)]*\)`),
}

// ContainsCode reports whether the remainder of one comment line (the
// text after //) looks like code. Empty, prose-shaped, and annotated
// remainders are never code.
func ContainsCode(text string) bool {
	return containsCode(text, DefaultAnnotations)
}

func containsCode(text string, annotations []string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if proseShape.MatchString(text) {
		return false
	}
	for _, a := range annotations {
		if rest, ok := strings.CutPrefix(text, a); ok && strings.HasPrefix(rest, ":") {
			return false
		}
	}
	for _, shape := range codeShapes {
		if shape.MatchString(text) {
			return true
		}
	}
	return false
}

// Detect scans the raw source line by line and sets verdict.Found on
// the first code-shaped comment line. Nil or empty content leaves the
// verdict at its defaults.
func Detect(content []byte, verdict *Verdict) {
	if verdict == nil {
		return
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(trimmed, lineMarker)
		if !ok {
			continue
		}
		if ContainsCode(rest) {
			verdict.Found = true
			return
		}
	}
}

// Scan collects every code-shaped comment line with its line number.
// Returned items are in file order; the bitmap deduplicates and keeps
// the line set sorted.
func Scan(path string, content []byte, annotations []string) []Item {
	var items []Item
	lines := roaring.New()
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lineNum uint32
	for scanner.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(trimmed, lineMarker)
		if !ok {
			continue
		}
		if !containsCode(rest, annotations) {
			continue
		}
		if lines.Contains(lineNum) {
			continue
		}
		lines.Add(lineNum)
		items = append(items, Item{
			Line:      lineNum,
			Text:      strings.TrimSpace(rest),
			ContextID: analyzer.ContextID(path, lineNum, trimmed),
		})
	}
	return items
}

// Analyzer runs the detector over many files.
type Analyzer struct {
	annotations []string
	maxFileSize int64
	src         source.ContentSource
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithAnnotations overrides the markers that suppress flagging.
func WithAnnotations(annotations []string) Option {
	return func(a *Analyzer) {
		if len(annotations) > 0 {
			a.annotations = annotations
		}
	}
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithSource sets where file content is read from.
func WithSource(src source.ContentSource) Option {
	return func(a *Analyzer) {
		a.src = src
	}
}

// New creates a new commented-out-code analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		annotations: DefaultAnnotations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {}

// AnalyzeSource scans a single already-loaded source.
func (a *Analyzer) AnalyzeSource(path string, content []byte) *FileReport {
	report := &FileReport{File: path}
	items := Scan(path, content, a.annotations)
	if len(items) == 0 {
		return report
	}
	report.Verdict.Found = true
	report.Items = items
	lines := roaring.New()
	for _, it := range items {
		lines.Add(it.Line)
	}
	report.Lines = lines.ToArray()
	return report
}

// Analyze runs the detector over all files. This check never parses,
// so it uses the plain file worker pool.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	reports, errs := fileproc.ForEachFile(ctx, files, a.src, func(path string, content []byte) (*FileReport, error) {
		if tracker != nil {
			defer tracker.Tick(path)
		}
		if a.maxFileSize > 0 && int64(len(content)) > a.maxFileSize {
			return nil, nil
		}
		return a.AnalyzeSource(path, content), nil
	})

	analysisResult := &Analysis{}
	for _, r := range reports {
		if r == nil {
			continue
		}
		analysisResult.Files = append(analysisResult.Files, *r)
		analysisResult.Summary.TotalFiles++
		if r.Verdict.Found {
			analysisResult.Summary.FlaggedFiles++
		}
		analysisResult.Summary.FlaggedLines += len(r.Lines)
	}

	sort.Slice(analysisResult.Files, func(i, j int) bool {
		return analysisResult.Files[i].File < analysisResult.Files[j].File
	})

	if errs.HasErrors() {
		return analysisResult, errs
	}
	return analysisResult, nil
}
