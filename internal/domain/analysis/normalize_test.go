package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Normalize must return a schema-complete value for any payload.
func TestNormalizeTotality(t *testing.T) {
	payloads := []string{
		"",
		"just some prose about code",
		`{"language": 42}`,
		`{"warnings": "not an array"}`,
		`[1, 2, 3]`,
		`null`,
		"```json\n{broken",
		`{"language": "Go", "explanation": "fine"}`,
	}
	for _, p := range payloads {
		a := Normalize(p)
		assert.NotEmpty(t, a.Language, "payload %q", p)
		assert.NotNil(t, a.Warnings, "payload %q", p)
		assert.NotNil(t, a.StyleSuggestions, "payload %q", p)
		assert.NotNil(t, a.CodeSmells, "payload %q", p)
		assert.NotNil(t, a.SecurityVulnerabilities, "payload %q", p)
		assert.NotNil(t, a.BugSuggestions, "payload %q", p)
		assert.NotNil(t, a.AlternativeSuggestions, "payload %q", p)
		assert.NotNil(t, a.SyntaxErrors, "payload %q", p)
		assert.NotNil(t, a.LearnMore, "payload %q", p)
	}
}

func TestNormalizeWellFormedJSON(t *testing.T) {
	payload := `{
		"language": "Go",
		"explanation": "sums a slice",
		"warnings": ["shadowed variable"],
		"style_suggestions": ["use gofmt"],
		"code_smells": [],
		"security_vulnerabilities": [],
		"bug_suggestions": [{"bug": "nil map write", "fix_suggestion": "make the map first"}],
		"alternative_suggestions": [{"description": "use a range loop", "code": "for _, v := range xs {}"}],
		"syntax_errors": [{"error": "missing brace", "line_number": 3}],
		"learn_more": ["Go slices tutorial"]
	}`
	a := Normalize(payload)
	assert.Equal(t, "Go", a.Language)
	assert.Equal(t, "sums a slice", a.Explanation)
	assert.Equal(t, []string{"shadowed variable"}, a.Warnings)
	assert.Equal(t, []string{"use gofmt"}, a.StyleSuggestions)
	require.Len(t, a.BugSuggestions, 1)
	assert.Equal(t, "nil map write", a.BugSuggestions[0].Bug)
	require.Len(t, a.SyntaxErrors, 1)
	assert.Equal(t, 3, a.SyntaxErrors[0].LineNumber)
	require.Len(t, a.LearnMore, 1)
	assert.Equal(t, "Go slices tutorial", a.LearnMore[0].Phrase)
}

func TestNormalizeFencedJSON(t *testing.T) {
	payload := "```json\n{\"language\": \"Python\", \"explanation\": \"prints hello\"}\n```"
	a := Normalize(payload)
	assert.Equal(t, "Python", a.Language)
	assert.Equal(t, "prints hello", a.Explanation)
	assert.Empty(t, a.Warnings)
}

func TestNormalizeSingleLineFencedJSON(t *testing.T) {
	payload := "```python {\"language\": \"Python\", \"explanation\": \"prints hello\"}```"
	a := Normalize(payload)
	assert.Equal(t, "Python", a.Language)
	assert.Equal(t, "prints hello", a.Explanation)
}

// A JSON-encoded string holding the real object gets unwrapped one level.
func TestNormalizeDoubleEncodedJSON(t *testing.T) {
	payload := `"{\"language\": \"Rust\", \"explanation\": \"borrow checker demo\"}"`
	a := Normalize(payload)
	assert.Equal(t, "Rust", a.Language)
	assert.Equal(t, "borrow checker demo", a.Explanation)
}

// Incomplete struct-array entries are dropped; complete ones keep their
// relative order.
func TestNormalizeDropsIncompleteBugEntries(t *testing.T) {
	payload := `{
		"explanation": "x",
		"bug_suggestions": [
			{"bug": "first", "fix_suggestion": "fix first"},
			{"bug": "no fix present"},
			{"fix_suggestion": "no bug present"},
			{"bug": "second", "fix_suggestion": "fix second"},
			{"bug": "", "fix_suggestion": "blank bug"},
			{"bug": 7, "fix_suggestion": "wrong type"}
		]
	}`
	a := Normalize(payload)
	require.Len(t, a.BugSuggestions, 2)
	assert.Equal(t, "first", a.BugSuggestions[0].Bug)
	assert.Equal(t, "second", a.BugSuggestions[1].Bug)
}

func TestNormalizeWrongFieldTypes(t *testing.T) {
	payload := `{
		"language": ["not", "a", "string"],
		"explanation": "ok",
		"warnings": [1, "real warning", true],
		"bug_suggestions": "nope",
		"syntax_errors": [{"error": "bad token", "line_number": "three"}]
	}`
	a := Normalize(payload)
	assert.Equal(t, LanguageUnknown, a.Language)
	assert.Equal(t, []string{"real warning"}, a.Warnings)
	assert.Empty(t, a.BugSuggestions)
	require.Len(t, a.SyntaxErrors, 1)
	assert.Zero(t, a.SyntaxErrors[0].LineNumber)
}

// Prose with no labels and no JSON falls back to the raw payload plus
// exactly one parse-failure warning.
func TestNormalizeFallbackKeepsPayloadVerbatim(t *testing.T) {
	payload := "The code looks fine to me, nothing to report here."
	a := Normalize(payload)
	assert.Equal(t, payload, a.Explanation)
	require.Len(t, a.Warnings, 1)
	assert.Equal(t, ParseFailureWarning, a.Warnings[0])
	assert.Equal(t, LanguageUnknown, a.Language)
}

// The end-to-end fixture from the section-labeled path: two labels, no
// JSON, no parse-failure warning.
func TestNormalizeSectionLabels(t *testing.T) {
	payload := "**Detected Language**: Python\n**Comprehensive Analysis**: adds two numbers"
	a := Normalize(payload)
	assert.Equal(t, "Python", a.Language)
	assert.Equal(t, "adds two numbers", a.Explanation)
	assert.Empty(t, a.Warnings)
	assert.Empty(t, a.StyleSuggestions)
	assert.Empty(t, a.CodeSmells)
	assert.Empty(t, a.SecurityVulnerabilities)
	assert.Empty(t, a.BugSuggestions)
	assert.Empty(t, a.AlternativeSuggestions)
	assert.Empty(t, a.SyntaxErrors)
}

// Inline bold inside a section body is ordinary markdown, not a section
// boundary; the text after it must survive.
func TestNormalizeSectionKeepsInlineBold(t *testing.T) {
	payload := "**Detected Language**: Go\n**Comprehensive Analysis**: this function is **not** safe for concurrent use because it writes a shared map"
	a := Normalize(payload)
	assert.Equal(t, "Go", a.Language)
	assert.Equal(t, "this function is **not** safe for concurrent use because it writes a shared map", a.Explanation)
	assert.Empty(t, a.Warnings)
}

func TestNormalizeSectionBullets(t *testing.T) {
	payload := strings.Join([]string{
		"**Detected Language**: JavaScript",
		"**Comprehensive Analysis**: fetches a URL and logs the body",
		"**Style & Formatting Suggestions**:",
		"- prefer const over var",
		"- add semicolons consistently",
		"**Code Smell Detection**: None found",
		"**General Warnings & Suggestions**:",
		"- no error handling on fetch",
		`**Potential Bug Identification & Fix Suggestions**: [{"bug": "unhandled rejection", "fix_suggestion": "add .catch"}]`,
		"**Learn More Links**:",
		"- javascript fetch api tutorial",
	}, "\n")
	a := Normalize(payload)
	assert.Equal(t, "JavaScript", a.Language)
	assert.Equal(t, []string{"prefer const over var", "add semicolons consistently"}, a.StyleSuggestions)
	assert.Empty(t, a.CodeSmells)
	assert.Equal(t, []string{"no error handling on fetch"}, a.Warnings)
	require.Len(t, a.BugSuggestions, 1)
	assert.Equal(t, "unhandled rejection", a.BugSuggestions[0].Bug)
	require.Len(t, a.LearnMore, 1)
	assert.Equal(t, "javascript fetch api tutorial", a.LearnMore[0].Phrase)
}

// Struct-array sections whose inner JSON does not parse degrade: bug notes
// fold into warnings, syntax bullets keep their own field since only the
// message is required there.
func TestNormalizeSectionInnerJSONFallback(t *testing.T) {
	payload := strings.Join([]string{
		"**Comprehensive Analysis**: parses a config file",
		"**Potential Bug Identification & Fix Suggestions**:",
		"- off-by-one in line counter",
		"**Syntax Errors**:",
		"- unexpected indent near line 4",
	}, "\n")
	a := Normalize(payload)
	assert.Empty(t, a.BugSuggestions)
	assert.Equal(t, []string{"off-by-one in line counter"}, a.Warnings)
	require.Len(t, a.SyntaxErrors, 1)
	assert.Equal(t, "unexpected indent near line 4", a.SyntaxErrors[0].Error)
}

func TestNormalizeIdempotent(t *testing.T) {
	payload := `{"language": "Go", "explanation": "x", "warnings": ["w"]}`
	first := Normalize(payload)
	second := Normalize(payload)
	assert.Equal(t, first, second)
}
