package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Section labels shared between the prompt contract and the markdown
// fallback scanner. The prompt instructs the model to emit every label in
// bold; the scanner keys off the exact same strings, so the two cannot
// drift apart.
const (
	LabelDetectedLanguage = "Detected Language"
	LabelAnalysis         = "Comprehensive Analysis"
	LabelStyle            = "Style & Formatting Suggestions"
	LabelCodeSmells       = "Code Smell Detection"
	LabelSecurity         = "Security Vulnerability Checks"
	LabelBugs             = "Potential Bug Identification & Fix Suggestions"
	LabelAlternatives     = "Alternative Code Approaches"
	LabelWarnings         = "General Warnings & Suggestions"
	LabelSyntaxErrors     = "Syntax Errors"
	LabelLearnMore        = "Learn More Links"
)

// SectionLabels lists every label of the full-analysis contract, in the
// order the prompt asks for them.
func SectionLabels() []string {
	return []string{
		LabelDetectedLanguage,
		LabelAnalysis,
		LabelStyle,
		LabelCodeSmells,
		LabelSecurity,
		LabelBugs,
		LabelAlternatives,
		LabelWarnings,
		LabelSyntaxErrors,
		LabelLearnMore,
	}
}

// sectionHeader matches only the known labels, anchored at line start, so
// inline bold inside a section body never ends the section.
var sectionHeader = func() *regexp.Regexp {
	alts := make([]string, 0, 10)
	for _, l := range SectionLabels() {
		alts = append(alts, regexp.QuoteMeta(l))
	}
	return regexp.MustCompile(`(?mi)^\*\*(` + strings.Join(alts, "|") + `)\*\*:?[ \t]*`)
}()

// fromSections parses a prose completion that followed the bolded-label
// contract instead of returning JSON. It reports ok=false when not a single
// known label was found, in which case the caller applies the raw fallback.
func fromSections(text string) (CodeAnalysis, bool) {
	matches := sectionHeader.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return CodeAnalysis{}, false
	}

	a := Empty()
	found := 0
	for i, m := range matches {
		label := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])
		if applySection(&a, label, content) {
			found++
		}
	}
	if found == 0 {
		return CodeAnalysis{}, false
	}
	if a.Explanation == "" {
		a.Explanation = missingExplanation
	}
	return a, true
}

// applySection routes one labeled section into its schema field, applying
// the format each label carries: scalar, bullet list, or JSON struct array
// with a bullet fallback.
func applySection(a *CodeAnalysis, label, content string) bool {
	if emptySection(content) {
		content = ""
	}
	switch {
	case strings.EqualFold(label, LabelDetectedLanguage):
		if content != "" {
			a.Language = firstLine(content)
		}
	case strings.EqualFold(label, LabelAnalysis):
		a.Explanation = content
	case strings.EqualFold(label, LabelStyle):
		a.StyleSuggestions = splitBullets(content)
	case strings.EqualFold(label, LabelCodeSmells):
		a.CodeSmells = splitBullets(content)
	case strings.EqualFold(label, LabelSecurity):
		a.SecurityVulnerabilities = splitBullets(content)
	case strings.EqualFold(label, LabelWarnings):
		a.Warnings = splitBullets(content)
	case strings.EqualFold(label, LabelBugs):
		if items, ok := innerJSONArray(content); ok {
			a.BugSuggestions = coerceBugList(items)
		} else {
			// Unstructured bug notes are still worth surfacing, but the
			// bug/fix pairing is gone, so they degrade to warnings.
			a.Warnings = append(a.Warnings, splitBullets(content)...)
		}
	case strings.EqualFold(label, LabelAlternatives):
		if items, ok := innerJSONArray(content); ok {
			a.AlternativeSuggestions = coerceAlternativeList(items)
		} else {
			a.Warnings = append(a.Warnings, splitBullets(content)...)
		}
	case strings.EqualFold(label, LabelSyntaxErrors):
		if items, ok := innerJSONArray(content); ok {
			a.SyntaxErrors = coerceSyntaxList(items)
		} else {
			for _, b := range splitBullets(content) {
				a.SyntaxErrors = append(a.SyntaxErrors, SyntaxError{Error: b})
			}
		}
	case strings.EqualFold(label, LabelLearnMore):
		a.LearnMore = DeriveSearchLinks(splitBullets(content))
	default:
		return false
	}
	return true
}

func emptySection(content string) bool {
	t := strings.TrimSpace(content)
	return t == "" || t == "[]" || strings.EqualFold(t, noneFound)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// innerJSONArray recognizes the JSON-array-as-string micro-format inside a
// section body, tolerating a fenced wrapper around the array.
func innerJSONArray(content string) ([]any, bool) {
	t := stripFence(content)
	if !strings.HasPrefix(t, "[") || !strings.HasSuffix(t, "]") {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(t), &items); err != nil {
		return nil, false
	}
	return items, true
}

// splitBullets breaks list-style section content on leading bullet markers.
// Content without any markers is treated as one item per non-empty line.
func splitBullets(content string) []string {
	out := []string{}
	if content == "" {
		return out
	}
	lines := strings.Split(content, "\n")
	bulleted := []string{}
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if rest, ok := strings.CutPrefix(t, "- "); ok {
			bulleted = append(bulleted, strings.TrimSpace(rest))
		} else if rest, ok := strings.CutPrefix(t, "* "); ok {
			bulleted = append(bulleted, strings.TrimSpace(rest))
		}
	}
	if len(bulleted) > 0 {
		lines = bulleted
	}
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" || strings.EqualFold(t, noneFound) {
			continue
		}
		out = append(out, t)
	}
	return out
}
