package ai

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure so callers can map it to behavior
// without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfigurationMissing: credential or identifier absent or an
	// obvious placeholder. Decided before any network call.
	KindConfigurationMissing
	// KindUnauthorized: provider rejected the credentials (401).
	KindUnauthorized
	// KindNotFound: the referenced model or resource does not exist (404).
	KindNotFound
	// KindRateLimited: throttled, overloaded, or unreachable (429, 5xx,
	// transport failure).
	KindRateLimited
	// KindMalformedUpstream: 2xx but an empty or unreadable payload.
	KindMalformedUpstream
)

func (k Kind) String() string {
	switch k {
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited_or_unavailable"
	case KindMalformedUpstream:
		return "malformed_upstream"
	default:
		return "unknown"
	}
}

// Error is a classified gateway failure. Message is safe to surface upward;
// credential values never appear in it.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error wrapping an optional cause.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ConfigurationMissing names the setting that is absent so the operator
// sees an actionable message.
func ConfigurationMissing(setting string) *Error {
	return &Error{
		Kind:    KindConfigurationMissing,
		Message: fmt.Sprintf("%s is not configured", setting),
	}
}

// KindOf extracts the classification from any error chain. Unclassified
// errors report KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
