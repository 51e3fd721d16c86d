// Package loadevent validates page-ready handler registration in
// JavaScript sources: that a load/DOMContentLoaded listener (or a
// window.onload assignment) exists, and that it receives a function
// reference rather than the result of calling one.
package loadevent

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scry-dev/scry/internal/fileproc"
	"github.com/scry-dev/scry/pkg/analyzer"
	"github.com/scry-dev/scry/pkg/parser"
	"github.com/scry-dev/scry/pkg/source"
)

// Compile-time check that Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// DefaultEvents are the event names recognized as page-ready signals.
var DefaultEvents = []string{"load", "DOMContentLoaded"}

// Detect walks the tree once and records findings into the supplied
// verdict. A nil tree is a valid input and leaves the verdict at its
// defaults. The verdict must not be shared across concurrent walks.
func Detect(tree *sitter.Tree, src []byte, verdict *Verdict) {
	DetectEvents(tree, src, DefaultEvents, verdict)
}

// DetectEvents is Detect with a caller-supplied set of event names.
func DetectEvents(tree *sitter.Tree, src []byte, events []string, verdict *Verdict) {
	if tree == nil || verdict == nil {
		return
	}

	eventSet := make(map[string]bool, len(events))
	for _, e := range events {
		eventSet[e] = true
	}

	in := parser.NewInspector()
	in.Register("member_expression", func(node *sitter.Node, lineage parser.Lineage) {
		matchMemberAccess(node, lineage, src, eventSet, verdict, nil)
	})
	in.InspectTree(tree)
}

// matchMemberAccess applies the registration rules to one member
// access. All field lookups are guarded: a node missing an expected
// child means "pattern does not match", never a failure.
func matchMemberAccess(node *sitter.Node, lineage parser.Lineage, src []byte, events map[string]bool, verdict *Verdict, onMatch func(*sitter.Node)) {
	object := node.ChildByFieldName("object")
	property := node.ChildByFieldName("property")
	if object == nil || property == nil {
		return
	}
	if object.Type() != "identifier" || parser.GetNodeText(object, src) != "window" {
		return
	}

	switch parser.GetNodeText(property, src) {
	case "addEventListener":
		call := parser.NearestAncestor(lineage, "call_expression")
		if call == nil {
			return
		}
		args := call.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() != 2 {
			return
		}
		if !isEventLiteral(args.NamedChild(0), src, events) {
			return
		}
		verdict.Registered = true
		if second := args.NamedChild(1); second != nil && second.Type() == "call_expression" {
			verdict.Misuse = true
		}
		if onMatch != nil {
			onMatch(node)
		}

	case "onload":
		assign := parser.NearestAncestor(lineage, "assignment_expression")
		if assign == nil {
			return
		}
		verdict.Registered = true
		if right := assign.ChildByFieldName("right"); right != nil && right.Type() == "call_expression" {
			verdict.Misuse = true
		}
		if onMatch != nil {
			onMatch(node)
		}
	}
}

// isEventLiteral reports whether the node is a string literal (or a
// substitution-free template literal) naming a recognized event.
func isEventLiteral(node *sitter.Node, src []byte, events map[string]bool) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "string":
		// fine
	case "template_string":
		for i := range int(node.NamedChildCount()) {
			if node.NamedChild(i).Type() == "template_substitution" {
				return false
			}
		}
	default:
		return false
	}
	return events[parser.UnquoteLiteral(parser.GetNodeText(node, src))]
}

// Analyzer runs the detector over many files.
type Analyzer struct {
	events      []string
	maxFileSize int64
	src         source.ContentSource
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithEvents overrides the recognized event names.
func WithEvents(events []string) Option {
	return func(a *Analyzer) {
		if len(events) > 0 {
			a.events = events
		}
	}
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithSource sets where file content is read from. Defaults to the
// local filesystem.
func WithSource(src source.ContentSource) Option {
	return func(a *Analyzer) {
		a.src = src
	}
}

// New creates a new load-event analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		events: DefaultEvents,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {}

// AnalyzeSource inspects a single already-loaded source.
func (a *Analyzer) AnalyzeSource(p *parser.Parser, path string, content []byte) (*FileReport, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		lang = parser.LangJavaScript
	}

	result, err := p.Parse(content, lang, path)
	if err != nil {
		return nil, err
	}

	report := &FileReport{File: path}

	eventSet := make(map[string]bool, len(a.events))
	for _, e := range a.events {
		eventSet[e] = true
	}

	in := parser.NewInspector()
	in.Register("member_expression", func(node *sitter.Node, lineage parser.Lineage) {
		matchMemberAccess(node, lineage, content, eventSet, &report.Verdict, func(matched *sitter.Node) {
			if report.Line == 0 {
				report.Line = matched.StartPoint().Row + 1
				report.ContextID = analyzer.ContextID(path, report.Line, parser.GetNodeText(matched, content))
			}
		})
	})
	in.InspectTree(result.Tree)

	return report, nil
}

// Analyze runs the detector over all files, skipping ones that exceed
// the size limit. Progress is tracked via analyzer.WithTracker.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	reports, errs := fileproc.MapFiles(ctx, files, a.src, func(p *parser.Parser, path string, content []byte) (*FileReport, error) {
		if tracker != nil {
			defer tracker.Tick(path)
		}
		if a.maxFileSize > 0 && int64(len(content)) > a.maxFileSize {
			return nil, nil
		}
		return a.AnalyzeSource(p, path, content)
	})

	analysisResult := &Analysis{}
	for _, r := range reports {
		if r == nil {
			continue
		}
		analysisResult.Files = append(analysisResult.Files, *r)
		analysisResult.Summary.TotalFiles++
		if r.Verdict.Registered {
			analysisResult.Summary.Registered++
		}
		if r.Verdict.Misuse {
			analysisResult.Summary.Misused++
		}
	}

	sort.Slice(analysisResult.Files, func(i, j int) bool {
		return analysisResult.Files[i].File < analysisResult.Files[j].File
	})

	if errs.HasErrors() {
		return analysisResult, errs
	}
	return analysisResult, nil
}
