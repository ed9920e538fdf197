package analysis

import (
	"encoding/json"
	"strings"
)

const (
	// ParseFailureWarning is the single warning attached when a completion
	// could not be mapped onto the schema at all.
	ParseFailureWarning = "The model response could not be parsed into the expected structure; showing the raw reply."

	missingExplanation = "No explanation was provided by the model."

	noneFound = "none found"
)

// Normalize converts one raw model completion into a CodeAnalysis.
// It is total: any input, including the empty string, yields a value
// satisfying the schema invariant. It never performs I/O.
//
// Order of attempts:
//  1. JSON object (after stripping a fenced-code wrapper, unwrapping a
//     JSON-encoded string if the model double-encoded its answer),
//  2. bolded-section markdown scan,
//  3. raw fallback: the payload verbatim as the explanation plus exactly
//     one parse-failure warning.
func Normalize(payload string) CodeAnalysis {
	text := stripFence(payload)

	if obj, ok := decodeObject(text); ok {
		return fromObject(obj)
	}
	if a, ok := fromSections(text); ok {
		return a
	}

	a := Empty()
	a.Explanation = payload
	a.Warnings = []string{ParseFailureWarning}
	return a
}

// decodeObject attempts a single JSON parse of the payload. A payload that
// decodes to a JSON string (the model quoting its own JSON) is unwrapped
// one level and retried.
func decodeObject(text string) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(stripFence(s)), &v); err != nil {
			return nil, false
		}
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// fromObject applies the field coercion rules: scalar fields keep non-empty
// strings or fall back to their documented default, string lists keep only
// string elements, struct lists keep only entries with every required
// sub-field present.
func fromObject(obj map[string]any) CodeAnalysis {
	a := Empty()
	a.Language = coerceString(obj["language"], LanguageUnknown)
	a.Explanation = coerceString(obj["explanation"], missingExplanation)
	a.Warnings = coerceStringList(obj["warnings"])
	a.StyleSuggestions = coerceStringList(obj["style_suggestions"])
	a.CodeSmells = coerceStringList(obj["code_smells"])
	a.SecurityVulnerabilities = coerceStringList(obj["security_vulnerabilities"])
	a.BugSuggestions = coerceBugList(obj["bug_suggestions"])
	a.AlternativeSuggestions = coerceAlternativeList(obj["alternative_suggestions"])
	a.SyntaxErrors = coerceSyntaxList(obj["syntax_errors"])
	a.LearnMore = DeriveSearchLinks(coerceStringList(obj["learn_more"]))
	return a
}

func coerceString(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, noneFound) {
		return fallback
	}
	return s
}

func coerceStringList(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, noneFound) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// entryField pulls a required string sub-field out of a struct-array entry.
func entryField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func coerceBugList(v any) []BugSuggestion {
	out := []BugSuggestion{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		bug, okBug := entryField(m, "bug")
		fix, okFix := entryField(m, "fix_suggestion")
		if !okBug || !okFix {
			continue
		}
		out = append(out, BugSuggestion{Bug: bug, FixSuggestion: fix})
	}
	return out
}

func coerceAlternativeList(v any) []AlternativeSuggestion {
	out := []AlternativeSuggestion{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		desc, okDesc := entryField(m, "description")
		code, okCode := entryField(m, "code")
		if !okDesc || !okCode {
			continue
		}
		out = append(out, AlternativeSuggestion{Description: desc, Code: code})
	}
	return out
}

func coerceSyntaxList(v any) []SyntaxError {
	out := []SyntaxError{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		msg, okMsg := entryField(m, "error")
		if !okMsg {
			continue
		}
		se := SyntaxError{Error: msg}
		if n, ok := m["line_number"].(float64); ok && n >= 1 {
			se.LineNumber = int(n)
		}
		out = append(out, se)
	}
	return out
}

// stripFence removes a single surrounding fenced code block, with or
// without a language tag, which models frequently wrap JSON answers in.
func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else if i := strings.IndexAny(t, "{["); i >= 0 {
		// single-line fence: drop the language tag, whatever it is,
		// e.g. "```python {...}```"
		t = t[i:]
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}
