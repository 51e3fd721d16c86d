package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/pkg/analyzer/loadevent"
)

// TestGetPaths verifies path handling from CLI arguments.
func TestGetPaths(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no args defaults to current dir",
			args:     []string{},
			expected: []string{"."},
		},
		{
			name:     "single path",
			args:     []string{"/foo/bar"},
			expected: []string{"/foo/bar"},
		},
		{
			name:     "multiple paths",
			args:     []string{"/foo", "/bar"},
			expected: []string{"/foo", "/bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Action: func(c *cli.Context) error {
					result := getPaths(c)
					if len(result) != len(tt.expected) {
						t.Errorf("getPaths() = %v, want %v", result, tt.expected)
						return nil
					}
					for i := range result {
						if result[i] != tt.expected[i] {
							t.Errorf("getPaths()[%d] = %q, want %q", i, result[i], tt.expected[i])
						}
					}
					return nil
				},
			}
			if err := app.Run(append([]string{"scry"}, tt.args...)); err != nil {
				t.Fatalf("app.Run() error: %v", err)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestUnderAny(t *testing.T) {
	tests := []struct {
		path  string
		paths []string
		want  bool
	}{
		{"src/app.js", []string{"."}, true},
		{"src/app.js", []string{"src"}, true},
		{"src/app.js", []string{"./src"}, true},
		{"src/app.js", []string{"lib"}, false},
		{"srclib/app.js", []string{"src"}, false},
		{"app.js", []string{"app.js"}, true},
	}

	for _, tt := range tests {
		if got := underAny(tt.path, tt.paths); got != tt.want {
			t.Errorf("underAny(%q, %v) = %v, want %v", tt.path, tt.paths, got, tt.want)
		}
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	content, err := generateDefaultConfig()
	if err != nil {
		t.Fatalf("generateDefaultConfig() error: %v", err)
	}
	for _, want := range []string{"[checks.loadevent]", "DOMContentLoaded", "[cache]", "[output]"} {
		if !strings.Contains(content, want) {
			t.Errorf("default config missing %q", want)
		}
	}
}

func TestLoadEventTable(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	result := &loadevent.Analysis{
		Files: []loadevent.FileReport{
			{File: "a.js", Verdict: loadevent.Verdict{Registered: true}, Line: 3},
			{File: "b.js", Verdict: loadevent.Verdict{Registered: true, Misuse: true}, Line: 7},
		},
		Summary: loadevent.Summary{TotalFiles: 2, Registered: 2, Misused: 1},
	}

	table := loadEventTable(result)
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if got := table.Rows[0]; got[0] != "a.js" || got[1] != "yes" || got[2] != "no" || got[3] != "3" {
		t.Errorf("row 0 = %v", got)
	}
	if got := table.Rows[1]; got[2] != "yes" {
		t.Errorf("misuse cell = %q, want yes", got[2])
	}
	if !strings.Contains(strings.Join(table.Footer, " "), "Misused: 1") {
		t.Errorf("footer missing misuse count: %v", table.Footer)
	}
}

func TestBoolCell(t *testing.T) {
	if boolCell(true) != "yes" || boolCell(false) != "no" {
		t.Error("boolCell rendering wrong")
	}
}

func TestLineCell(t *testing.T) {
	if lineCell(0) != "-" {
		t.Errorf("lineCell(0) = %q", lineCell(0))
	}
	if lineCell(12) != "12" {
		t.Errorf("lineCell(12) = %q", lineCell(12))
	}
}
