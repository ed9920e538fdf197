package prompt

import (
	"fmt"
	"strings"

	"github.com/codementorhq/code-mentor/internal/domain/analysis"
)

// analysisSystemPrompt enumerates every section the model must produce, by
// exact bolded label, and shows the struct-array micro-format. The
// label-completeness rule ("empty array or None found, never omit the
// label") is what keeps the markdown fallback parser tractable.
const analysisSystemPrompt = `You are a senior software mentor reviewing a code snippet for a developer. Respond with one valid JSON object only (no markdown, no commentary, no code fences) following this schema:

{
  "language": "<detected language name>",
  "explanation": "<markdown: what the code does, then a short summary>",
  "style_suggestions": ["<suggestion>"],
  "code_smells": ["<smell>"],
  "security_vulnerabilities": ["<vulnerability>"],
  "bug_suggestions": [{"bug": "<description>", "fix_suggestion": "<how to fix>"}],
  "alternative_suggestions": [{"description": "<approach>", "code": "<complete snippet>"}],
  "warnings": ["<general warning or suggestion>"],
  "syntax_errors": [{"error": "<message>", "line_number": 1}],
  "learn_more": ["<search query phrase, not a URL>"]
}

Rules:
- Every key must be present. If a list has nothing to report, emit an empty array []. Never omit a key.
- learn_more entries are plain search-engine query phrases. Never emit URLs.
- bug_suggestions entries must carry both "bug" and "fix_suggestion"; alternative_suggestions entries must carry both "description" and "code".

If you cannot answer in JSON, fall back to bolded markdown sections using exactly these labels, each as **Label**: followed by its content, in this order:
%s
List sections use "- " bullets; bug, alternative and syntax sections carry a JSON array as their content, e.g. [{"bug": "off-by-one in loop bound", "fix_suggestion": "iterate to len(xs)-1"}]. Write the literal text None found for a section with nothing to report. Never omit a label.`

const analysisUserPrompt = `Analyze the following code snippet and respond per the schema.

%s`

func buildFullAnalysis(code string) (system, user string) {
	labels := make([]string, 0, 10)
	for _, l := range analysis.SectionLabels() {
		labels = append(labels, "**"+l+"**")
	}
	system = fmt.Sprintf(analysisSystemPrompt, strings.Join(labels, "\n"))
	user = fmt.Sprintf(analysisUserPrompt, fence(code))
	return system, user
}

func fence(code string) string {
	return "```\n" + strings.TrimRight(code, "\n") + "\n```"
}
