package fileproc

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/scry-dev/scry/pkg/parser"
)

func writeFiles(t *testing.T, contents map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range contents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func TestMapFiles(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.js": `foo();`,
		"b.js": `bar(); baz();`,
	})

	counts, errs := MapFiles(context.Background(), paths, nil, func(p *parser.Parser, path string, content []byte) (int, error) {
		result, err := p.Parse(content, parser.LangJavaScript, path)
		if err != nil {
			return 0, err
		}
		return len(parser.FindNodesByType(result.Tree.RootNode(), content, "call_expression")), nil
	})

	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}

	sort.Ints(counts)
	if len(counts) != 2 || counts[0] != 1 || counts[1] != 2 {
		t.Errorf("counts = %v, want [1 2]", counts)
	}
}

func TestMapFilesCollectsErrors(t *testing.T) {
	paths := writeFiles(t, map[string]string{"a.js": `ok();`})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.js"))

	results, errs := MapFiles(context.Background(), paths, nil, func(p *parser.Parser, path string, content []byte) (string, error) {
		return path, nil
	})

	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(results))
	}
	if !errs.HasErrors() {
		t.Error("expected an error for the missing file")
	}
}

func TestForEachFileEmpty(t *testing.T) {
	results, errs := ForEachFile(context.Background(), nil, nil, func(path string, content []byte) (int, error) {
		return 0, nil
	})
	if len(results) != 0 || errs.HasErrors() {
		t.Errorf("empty input should yield no results and no errors")
	}
}
