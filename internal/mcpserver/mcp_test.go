package mcpserver

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/scry-dev/scry/internal/output"
)

func TestServerCreation(t *testing.T) {
	server := NewServer("1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
}

func TestServerCreationEmptyVersion(t *testing.T) {
	if NewServer("") == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"loadEvent":     describeLoadEvent,
		"debugCalls":    describeDebugCalls,
		"commentedCode": describeCommentedCode,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			if desc == "" {
				t.Errorf("%s description is empty", name)
			}
			for _, section := range []string{"USE WHEN:", "INTERPRETING RESULTS:", "METRICS RETURNED:"} {
				if !strings.Contains(desc, section) {
					t.Errorf("%s description missing %s section", name, section)
				}
			}
		})
	}
}

func TestParseFrontmatter(t *testing.T) {
	content := []byte("---\ndescription: does things\n---\n\nbody text\n")
	desc, body := parseFrontmatter(content)
	if desc != "does things" {
		t.Errorf("description = %q", desc)
	}
	if body != "body text\n" {
		t.Errorf("body = %q", body)
	}

	desc, body = parseFrontmatter([]byte("no frontmatter"))
	if desc != "" || body != "no frontmatter" {
		t.Errorf("plain content mishandled: %q %q", desc, body)
	}
}

func TestFormatOutput(t *testing.T) {
	data := map[string]int{"flagged": 2}

	jsonOut, err := formatOutput(data, output.FormatJSON)
	if err != nil {
		t.Fatalf("formatOutput(json) error: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal([]byte(jsonOut), &decoded); err != nil {
		t.Fatalf("json format did not produce valid JSON: %v\n%s", err, jsonOut)
	}
	if decoded["flagged"] != 2 {
		t.Errorf("decoded flagged = %d, want 2", decoded["flagged"])
	}

	mdOut, err := formatOutput(data, output.FormatMarkdown)
	if err != nil {
		t.Fatalf("formatOutput(markdown) error: %v", err)
	}
	if !strings.HasPrefix(mdOut, "```\n") || !strings.HasSuffix(mdOut, "\n```") {
		t.Errorf("markdown output not fenced: %q", mdOut)
	}

	toonOut, err := formatOutput(data, output.FormatTOON)
	if err != nil {
		t.Fatalf("formatOutput(toon) error: %v", err)
	}
	if !strings.Contains(toonOut, "flagged") {
		t.Errorf("toon output missing data: %q", toonOut)
	}
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "toon"},
		{"json", "json"},
		{"markdown", "markdown"},
		{"md", "markdown"},
		{"anything", "toon"},
	}
	for _, tt := range tests {
		got := getFormat(CheckInput{Format: tt.input})
		if string(got) != tt.expected {
			t.Errorf("getFormat(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
