package commented

// Verdict records whether any line of commented-out code was found.
// Caller-allocated, one per scan; the flag only moves false -> true.
type Verdict struct {
	Found bool `json:"found" toon:"found"`
}

// Item is one flagged comment line.
type Item struct {
	Line      uint32 `json:"line" toon:"line"`
	Text      string `json:"text" toon:"text"`
	ContextID string `json:"context_id,omitempty" toon:"context_id,omitempty"`
}

// FileReport is the per-file result of the analyzer surface. Lines is
// always sorted ascending.
type FileReport struct {
	File    string   `json:"file" toon:"file"`
	Verdict Verdict  `json:"verdict" toon:"verdict"`
	Lines   []uint32 `json:"lines,omitempty" toon:"lines,omitempty"`
	Items   []Item   `json:"items,omitempty" toon:"items,omitempty"`
}

// Summary aggregates results across files.
type Summary struct {
	TotalFiles   int `json:"total_files" toon:"total_files"`
	FlaggedFiles int `json:"flagged_files" toon:"flagged_files"`
	FlaggedLines int `json:"flagged_lines" toon:"flagged_lines"`
}

// Analysis is the full result of analyzing a set of files.
type Analysis struct {
	Files   []FileReport `json:"files" toon:"files"`
	Summary Summary      `json:"summary" toon:"summary"`
}
