package loadevent

// Verdict is the caller-owned record one inspection mutates. Flags
// start false and are only ever set to true during a walk; a detector
// never retracts a finding. Allocate a fresh Verdict per traversal.
type Verdict struct {
	// Registered reports that a page-ready handler registration was
	// found: window.addEventListener('load'|'DOMContentLoaded', ...)
	// or an assignment to window.onload.
	Registered bool `json:"registered" toon:"registered"`

	// Misuse reports that the registration passes the result of
	// calling the handler instead of a reference to it.
	Misuse bool `json:"misuse" toon:"misuse"`
}

// FileReport is the per-file result of the analyzer surface.
type FileReport struct {
	File      string  `json:"file" toon:"file"`
	Verdict   Verdict `json:"verdict" toon:"verdict"`
	Line      uint32  `json:"line,omitempty" toon:"line,omitempty"`
	ContextID string  `json:"context_id,omitempty" toon:"context_id,omitempty"`
}

// Summary aggregates results across files.
type Summary struct {
	TotalFiles int `json:"total_files" toon:"total_files"`
	Registered int `json:"registered" toon:"registered"`
	Misused    int `json:"misused" toon:"misused"`
}

// Analysis is the full result of analyzing a set of files.
type Analysis struct {
	Files   []FileReport `json:"files" toon:"files"`
	Summary Summary      `json:"summary" toon:"summary"`
}
