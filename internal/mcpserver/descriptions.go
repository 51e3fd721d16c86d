package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeLoadEvent() string {
	return `Verifies that JavaScript sources register a page-ready handler correctly.

USE WHEN:
- Checking that initialization code runs after the page loads
- Hunting bugs where a handler fires immediately instead of on load
- Reviewing generated or migrated front-end code

INTERPRETING RESULTS:
- registered=true: window.addEventListener('load'|'DOMContentLoaded', ...) or window.onload assignment found
- misuse=true: the registration passes the RESULT of calling the handler (e.g. init()) instead of a reference (init) - the handler runs at registration time, not on load
- registered=false: no page-ready registration in the file

METRICS RETURNED:
- Per-file: verdict (registered, misuse), first match line, stable context id
- Summary: total files, files with registration, files with misuse`
}

func describeDebugCalls() string {
	return `Finds console.log calls inside a specific named function.

USE WHEN:
- Confirming debug output was removed from a function before release
- Locating leftover instrumentation after a debugging session

INTERPRETING RESULTS:
- found=true: at least one console.log whose nearest enclosing named function (declaration or const/let binding) matches the target
- Attribution is nearest-enclosing: calls inside inner named functions belong to the inner name
- Only console.log counts; console.warn/error are not flagged

METRICS RETURNED:
- Per-file: verdict, list of matching call sites with line numbers and context ids
- Summary: total files, files with matches, total matching calls`
}

func describeCommentedCode() string {
	return `Flags // comment lines that look like disabled code rather than prose.

USE WHEN:
- Cleaning up a codebase before review
- Finding dead code hidden in comments after refactors

INTERPRETING RESULTS:
- A line is flagged when its comment text matches code shapes (leading keyword, assignment, call, trailing punctuation)
- Prose-shaped comments (capitalized sentences) and annotations (TODO:, FIXME:, NOTE:, HACK:) are never flagged
- Heuristic check: expect occasional false positives on terse lowercase prose

METRICS RETURNED:
- Per-file: verdict, sorted flagged line numbers, flagged text with context ids
- Summary: total files, flagged files, flagged lines`
}
