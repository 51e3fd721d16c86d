package parser

import (
	"reflect"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func parseJS(t *testing.T, src string) *ParseResult {
	t.Helper()
	p := New()
	t.Cleanup(p.Close)

	result, err := p.Parse([]byte(src), LangJavaScript, "test.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return result
}

func TestNearestAncestor(t *testing.T) {
	src := `function f() { if (x) { g(); } }`
	result := parseJS(t, src)

	var captured Lineage
	var capturedCopy []*sitter.Node

	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage Lineage) {
		captured = lineage
		capturedCopy = append([]*sitter.Node(nil), lineage...)
	})
	in.Inspect(result.Tree.RootNode())

	if captured == nil {
		t.Fatal("call_expression visitor never fired")
	}

	fn := NearestAncestor(capturedCopy, "function_declaration")
	if fn == nil {
		t.Fatal("NearestAncestor did not find enclosing function_declaration")
	}
	name := GetNodeText(fn.ChildByFieldName("name"), result.Source)
	if name != "f" {
		t.Errorf("enclosing function name = %q, want %q", name, "f")
	}

	// The lineage must also contain the if_statement between the call
	// and the function, and the nearest match wins over the root.
	if NearestAncestor(capturedCopy, "if_statement") == nil {
		t.Error("NearestAncestor did not find enclosing if_statement")
	}
	if NearestAncestor(capturedCopy, "program") == nil {
		t.Error("NearestAncestor did not find root program node")
	}
}

func TestNearestAncestorNotFound(t *testing.T) {
	src := `const x = 1;`
	result := parseJS(t, src)

	var lineage []*sitter.Node
	in := NewInspector()
	in.Register("identifier", func(node *sitter.Node, l Lineage) {
		if lineage == nil {
			lineage = append([]*sitter.Node(nil), l...)
		}
	})
	in.Inspect(result.Tree.RootNode())

	if got := NearestAncestor(lineage, "class_declaration"); got != nil {
		t.Errorf("NearestAncestor = %v, want nil for absent kind", got)
	}
	if got := NearestAncestor(lineage, ""); got != nil {
		t.Errorf("NearestAncestor with empty kind = %v, want nil", got)
	}
	if got := NearestAncestor(nil, "program"); got != nil {
		t.Errorf("NearestAncestor with empty lineage = %v, want nil", got)
	}
}

func TestNearestAncestorPicksClosest(t *testing.T) {
	// Two nested functions: the inner one must win.
	src := `function outer() { function inner() { call(); } }`
	result := parseJS(t, src)

	var lineage []*sitter.Node
	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, l Lineage) {
		lineage = append([]*sitter.Node(nil), l...)
	})
	in.Inspect(result.Tree.RootNode())

	fn := NearestAncestor(lineage, "function_declaration")
	if fn == nil {
		t.Fatal("no enclosing function found")
	}
	if name := GetNodeText(fn.ChildByFieldName("name"), result.Source); name != "inner" {
		t.Errorf("nearest enclosing function = %q, want %q", name, "inner")
	}
}

func TestNearestAncestorOf(t *testing.T) {
	src := `const handler = function() { go(); };`
	result := parseJS(t, src)

	var lineage []*sitter.Node
	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, l Lineage) {
		lineage = append([]*sitter.Node(nil), l...)
	})
	in.Inspect(result.Tree.RootNode())

	got := NearestAncestorOf(lineage, "function_declaration", "variable_declarator")
	if got == nil {
		t.Fatal("NearestAncestorOf found nothing")
	}
	if got.Type() != "variable_declarator" {
		t.Errorf("kind = %q, want variable_declarator", got.Type())
	}

	if NearestAncestorOf(lineage) != nil {
		t.Error("NearestAncestorOf with no kinds should return nil")
	}
}

func TestInspectorDeterministicOrder(t *testing.T) {
	src := `let a = b; let c = d; e(f, g);`
	result := parseJS(t, src)

	collect := func() []string {
		var names []string
		in := NewInspector()
		in.Register("identifier", func(node *sitter.Node, lineage Lineage) {
			names = append(names, GetNodeText(node, result.Source))
		})
		in.Inspect(result.Tree.RootNode())
		return names
	}

	first := collect()
	second := collect()

	if len(first) == 0 {
		t.Fatal("no identifiers visited")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("traversal not deterministic: %v vs %v", first, second)
	}

	// Pre-order over source means document order for leaf identifiers.
	want := []string{"a", "b", "c", "d", "e", "f", "g"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("visit order = %v, want %v", first, want)
	}
}

func TestInspectorLineageExcludesCurrent(t *testing.T) {
	src := `f();`
	result := parseJS(t, src)

	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage Lineage) {
		for _, anc := range lineage {
			if anc == node {
				t.Error("lineage contains the visited node itself")
			}
		}
		if len(lineage) == 0 {
			t.Fatal("lineage is empty for non-root node")
		}
		if lineage[0].Type() != "program" {
			t.Errorf("lineage head = %q, want program", lineage[0].Type())
		}
	})
	in.Inspect(result.Tree.RootNode())
}

func TestInspectorMultipleVisitorsPerKind(t *testing.T) {
	src := `f();`
	result := parseJS(t, src)

	var order []int
	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage Lineage) {
		order = append(order, 1)
	})
	in.Register("call_expression", func(node *sitter.Node, lineage Lineage) {
		order = append(order, 2)
	})
	in.Inspect(result.Tree.RootNode())

	if !reflect.DeepEqual(order, []int{1, 2}) {
		t.Errorf("visitor order = %v, want [1 2]", order)
	}
}

func TestInspectTreeNil(t *testing.T) {
	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage Lineage) {
		t.Error("visitor fired with absent tree")
	})
	in.InspectTree(nil) // must not panic
}

func TestInspectorUnregisteredKindsIgnored(t *testing.T) {
	src := `class A {}`
	result := parseJS(t, src)

	fired := false
	in := NewInspector()
	in.Register("call_expression", func(node *sitter.Node, lineage Lineage) {
		fired = true
	})
	in.Inspect(result.Tree.RootNode())

	if fired {
		t.Error("visitor fired for kind not present in the tree")
	}
}
