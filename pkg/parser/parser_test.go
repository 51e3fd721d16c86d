package parser

import (
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"app.js", LangJavaScript},
		{"util.mjs", LangJavaScript},
		{"legacy.cjs", LangJavaScript},
		{"service.ts", LangTypeScript},
		{"component.tsx", LangTSX},
		{"widget.jsx", LangTSX},
		{"README.md", LangUnknown},
		{"main.go", LangUnknown},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte(`const x = 1;`), LangJavaScript, "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Tree == nil {
		t.Fatal("Parse returned nil tree")
	}
	if result.Tree.RootNode().Type() != "program" {
		t.Errorf("root type = %q, want %q", result.Tree.RootNode().Type(), "program")
	}
}

func TestParseUnsupportedLanguage(t *testing.T) {
	p := New()
	defer p.Close()

	if _, err := p.Parse([]byte(`x`), LangUnknown, "x.bin"); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestFindNodesByType(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte(`foo(); bar(); baz.qux();`)
	result, err := p.Parse(src, LangJavaScript, "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	calls := FindNodesByType(result.Tree.RootNode(), src, "call_expression")
	if len(calls) != 3 {
		t.Errorf("len(calls) = %d, want 3", len(calls))
	}
}

func TestGetNodeText(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte(`const answer = 42;`)
	result, err := p.Parse(src, LangJavaScript, "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	idents := FindNodesByType(result.Tree.RootNode(), src, "identifier")
	if len(idents) == 0 {
		t.Fatal("no identifiers found")
	}
	if got := GetNodeText(idents[0], src); got != "answer" {
		t.Errorf("GetNodeText = %q, want %q", got, "answer")
	}

	if got := GetNodeText(nil, src); got != "" {
		t.Errorf("GetNodeText(nil) = %q, want empty", got)
	}
	if got := GetNodeText(idents[0], src[:2]); got != "" {
		t.Errorf("GetNodeText with truncated source = %q, want empty", got)
	}
}

func TestUnquoteLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`'load'`, "load"},
		{`"DOMContentLoaded"`, "DOMContentLoaded"},
		{"`load`", "load"},
		{`load`, "load"},
		{`'`, "'"},
		{``, ""},
		{`'mismatched"`, `'mismatched"`},
	}

	for _, tt := range tests {
		if got := UnquoteLiteral(tt.in); got != tt.want {
			t.Errorf("UnquoteLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
