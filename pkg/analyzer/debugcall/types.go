package debugcall

// Verdict records whether a console.log call was found inside the
// target function. Caller-allocated, one per traversal; the flag only
// moves false -> true during a walk.
type Verdict struct {
	// Found reports a console.log call whose nearest enclosing named
	// function matches the target name.
	Found bool `json:"found" toon:"found"`
}

// Call is one matched console.log site.
type Call struct {
	Line      uint32 `json:"line" toon:"line"`
	Function  string `json:"function" toon:"function"`
	ContextID string `json:"context_id,omitempty" toon:"context_id,omitempty"`
}

// FileReport is the per-file result of the analyzer surface.
type FileReport struct {
	File    string  `json:"file" toon:"file"`
	Target  string  `json:"target" toon:"target"`
	Verdict Verdict `json:"verdict" toon:"verdict"`
	Calls   []Call  `json:"calls,omitempty" toon:"calls,omitempty"`
}

// Summary aggregates results across files.
type Summary struct {
	TotalFiles int `json:"total_files" toon:"total_files"`
	Matched    int `json:"matched" toon:"matched"`
	TotalCalls int `json:"total_calls" toon:"total_calls"`
}

// Analysis is the full result of analyzing a set of files.
type Analysis struct {
	Files   []FileReport `json:"files" toon:"files"`
	Summary Summary      `json:"summary" toon:"summary"`
}
