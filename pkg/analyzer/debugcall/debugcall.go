// Package debugcall finds console.log calls inside a named function.
//
// A call matches when its nearest enclosing function_declaration or
// variable_declarator carries the target name. Nearest-enclosing is a
// deliberate simplification, not scope analysis: a console.log inside
// an inner named function attributes to the inner name only, and a
// declarator name shadows an outer declaration name.
package debugcall

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/scry-dev/scry/internal/fileproc"
	"github.com/scry-dev/scry/pkg/analyzer"
	"github.com/scry-dev/scry/pkg/parser"
	"github.com/scry-dev/scry/pkg/source"
)

var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// ownerKinds are the node kinds that can carry the name of the
// enclosing function: a declaration, or a declarator binding a
// function or arrow expression to a name.
var ownerKinds = []string{"function_declaration", "variable_declarator"}

// Detect walks the tree once and sets verdict.Found when a
// console.log call occurs within the function named target. A nil
// tree or empty target leaves the verdict at its defaults.
func Detect(tree *sitter.Tree, src []byte, target string, verdict *Verdict) {
	if tree == nil || verdict == nil || target == "" {
		return
	}

	in := parser.NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage parser.Lineage) {
		if enclosingName(node, lineage, src) == target {
			verdict.Found = true
		}
	})
	in.InspectTree(tree)
}

// enclosingName returns the name of the nearest enclosing named
// function of a console.log call, or "" when the call is not a
// console.log or has no named owner.
func enclosingName(node *sitter.Node, lineage parser.Lineage, src []byte) string {
	if !isConsoleLog(node, src) {
		return ""
	}
	owner := parser.NearestAncestorOf(lineage, ownerKinds...)
	if owner == nil {
		return ""
	}
	name := owner.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return parser.GetNodeText(name, src)
}

// isConsoleLog reports whether the call's callee is exactly the
// member access console.log.
func isConsoleLog(call *sitter.Node, src []byte) bool {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return false
	}
	object := callee.ChildByFieldName("object")
	property := callee.ChildByFieldName("property")
	if object == nil || property == nil {
		return false
	}
	return object.Type() == "identifier" &&
		parser.GetNodeText(object, src) == "console" &&
		parser.GetNodeText(property, src) == "log"
}

// Analyzer runs the detector over many files for one target name.
type Analyzer struct {
	target      string
	maxFileSize int64
	src         source.ContentSource
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

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

// New creates an analyzer looking for console.log inside target.
func New(target string, opts ...Option) *Analyzer {
	a := &Analyzer{target: target}
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

	report := &FileReport{File: path, Target: a.target}
	if a.target == "" {
		return report, nil
	}

	in := parser.NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage parser.Lineage) {
		if enclosingName(node, lineage, content) != a.target {
			return
		}
		report.Verdict.Found = true
		line := node.StartPoint().Row + 1
		report.Calls = append(report.Calls, Call{
			Line:      line,
			Function:  a.target,
			ContextID: analyzer.ContextID(path, line, parser.GetNodeText(node, content)),
		})
	})
	in.InspectTree(result.Tree)

	return report, nil
}

// Analyze runs the detector over all files.
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
		if r.Verdict.Found {
			analysisResult.Summary.Matched++
		}
		analysisResult.Summary.TotalCalls += len(r.Calls)
	}

	sort.Slice(analysisResult.Files, func(i, j int) bool {
		return analysisResult.Files[i].File < analysisResult.Files[j].File
	})

	if errs.HasErrors() {
		return analysisResult, errs
	}
	return analysisResult, nil
}
