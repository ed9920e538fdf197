package analysis

// LanguageUnknown is the sentinel used when the model did not report a language.
const LanguageUnknown = "Unknown"

// BugSuggestion pairs a suspected bug with a suggested fix.
// Both fields are required; incomplete entries never survive normalization.
type BugSuggestion struct {
	Bug           string `json:"bug"`
	FixSuggestion string `json:"fix_suggestion"`
}

// AlternativeSuggestion describes an alternative implementation approach.
type AlternativeSuggestion struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

// SyntaxError is a single reported syntax problem. LineNumber is optional;
// zero means the model did not give a usable line.
type SyntaxError struct {
	Error      string `json:"error"`
	LineNumber int    `json:"line_number,omitempty"`
}

// SearchLink is a learn-more entry. The URL is always derived locally from
// the phrase, never taken from the model.
type SearchLink struct {
	Phrase string `json:"phrase"`
	URL    string `json:"url"`
}

// CodeAnalysis is the normalized result of one full-analysis request.
// After normalization every slice field is non-nil.
type CodeAnalysis struct {
	Language                string                  `json:"language"`
	Explanation             string                  `json:"explanation"`
	Warnings                []string                `json:"warnings"`
	StyleSuggestions        []string                `json:"style_suggestions"`
	CodeSmells              []string                `json:"code_smells"`
	SecurityVulnerabilities []string                `json:"security_vulnerabilities"`
	BugSuggestions          []BugSuggestion         `json:"bug_suggestions"`
	AlternativeSuggestions  []AlternativeSuggestion `json:"alternative_suggestions"`
	SyntaxErrors            []SyntaxError           `json:"syntax_errors"`
	LearnMore               []SearchLink            `json:"learn_more"`
}

// Empty returns a CodeAnalysis with every slice field initialized so the
// invariant holds regardless of which normalization path filled it.
func Empty() CodeAnalysis {
	return CodeAnalysis{
		Language:                LanguageUnknown,
		Warnings:                []string{},
		StyleSuggestions:        []string{},
		CodeSmells:              []string{},
		SecurityVulnerabilities: []string{},
		BugSuggestions:          []BugSuggestion{},
		AlternativeSuggestions:  []AlternativeSuggestion{},
		SyntaxErrors:            []SyntaxError{},
		LearnMore:               []SearchLink{},
	}
}
