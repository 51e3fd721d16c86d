package debugcall

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scry-dev/scry/pkg/parser"
)

func detectSource(t *testing.T, code, target string) Verdict {
	t.Helper()
	p := parser.New()
	defer p.Close()

	result, err := p.Parse([]byte(code), parser.LangJavaScript, "test.js")
	require.NoError(t, err)

	var verdict Verdict
	Detect(result.Tree, []byte(code), target, &verdict)
	return verdict
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		target string
		found  bool
	}{
		{
			name:   "console.log in target declaration",
			code:   `function foo() { console.log('here'); }`,
			target: "foo",
			found:  true,
		},
		{
			name: "console.log in other function only",
			code: `
function foo() { return 1; }
function bar() { console.log('here'); }
`,
			target: "foo",
			found:  false,
		},
		{
			name:   "function expression bound to const",
			code:   `const handler = function() { console.log('x'); };`,
			target: "handler",
			found:  true,
		},
		{
			name:   "arrow function bound to let",
			code:   `let run = () => { console.log('x'); };`,
			target: "run",
			found:  true,
		},
		{
			name: "inner named function wins over outer",
			code: `
function outer() {
  function inner() { console.log('x'); }
}
`,
			target: "outer",
			found:  false,
		},
		{
			name: "inner named function matches inner target",
			code: `
function outer() {
  function inner() { console.log('x'); }
}
`,
			target: "inner",
			found:  true,
		},
		{
			name:   "console.warn does not count",
			code:   `function foo() { console.warn('x'); }`,
			target: "foo",
			found:  false,
		},
		{
			name:   "plain log call does not count",
			code:   `function foo() { log('x'); }`,
			target: "foo",
			found:  false,
		},
		{
			name:   "top-level console.log has no owner",
			code:   `console.log('x');`,
			target: "foo",
			found:  false,
		},
		{
			name:   "empty target",
			code:   `function foo() { console.log('x'); }`,
			target: "",
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := detectSource(t, tt.code, tt.target)
			assert.Equal(t, tt.found, verdict.Found)
		})
	}
}

func TestDetectNilTree(t *testing.T) {
	var verdict Verdict
	Detect(nil, nil, "foo", &verdict)
	assert.False(t, verdict.Found)
}

func TestDetectDeterministic(t *testing.T) {
	p := parser.New()
	defer p.Close()

	code := []byte(`function foo() { console.log('a'); console.log('b'); }`)
	result, err := p.Parse(code, parser.LangJavaScript, "test.js")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		var verdict Verdict
		Detect(result.Tree, code, "foo", &verdict)
		assert.True(t, verdict.Found)
	}
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	hit := filepath.Join(dir, "hit.js")
	miss := filepath.Join(dir, "miss.js")
	require.NoError(t, os.WriteFile(hit, []byte(`function foo() { console.log('x'); console.log('y'); }`), 0644))
	require.NoError(t, os.WriteFile(miss, []byte(`function bar() { console.log('x'); }`), 0644))

	a := New("foo")
	defer a.Close()

	analysis, err := a.Analyze(context.Background(), []string{hit, miss})
	require.NoError(t, err)
	require.Len(t, analysis.Files, 2)
	assert.Equal(t, 1, analysis.Summary.Matched)
	assert.Equal(t, 2, analysis.Summary.TotalCalls)

	assert.Equal(t, hit, analysis.Files[0].File)
	assert.True(t, analysis.Files[0].Verdict.Found)
	require.Len(t, analysis.Files[0].Calls, 2)
	assert.Equal(t, uint32(1), analysis.Files[0].Calls[0].Line)
	assert.NotEmpty(t, analysis.Files[0].Calls[0].ContextID)

	assert.False(t, analysis.Files[1].Verdict.Found)
}
