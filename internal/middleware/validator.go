package middleware

import (
	"fmt"
	"strings"
)

// Input validation limits. Oversized snippets would blow the provider's
// context window and its token bill; the cap is generous for a pasted
// snippet.
const (
	MaxSnippetBytes = 64 * 1024
	MaxMessageBytes = 8 * 1024
)

// ValidateSnippet checks a code snippet before a full-analysis request.
// Blank input is the caller's inline validation case, not a network error.
func ValidateSnippet(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("code snippet cannot be empty")
	}
	if len(code) > MaxSnippetBytes {
		return fmt.Errorf("code snippet too large (max %d bytes)", MaxSnippetBytes)
	}
	return nil
}

// ValidateMessage checks a chat question.
func ValidateMessage(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(text) > MaxMessageBytes {
		return fmt.Errorf("message too large (max %d bytes)", MaxMessageBytes)
	}
	return nil
}
