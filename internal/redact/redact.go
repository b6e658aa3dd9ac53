// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. Errors from
// the LLM transport can embed the endpoint URL or the bearer token; this
// package prevents those from leaking into log output.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedURLPlaceholder        = "[REDACTED_URL]"
)

// Precompiled regex patterns
var (
	// Bearer tokens in Authorization headers or error text
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// Credentials and API keys
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|api[_-]?token|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)

	// Full URLs, which can reveal the serving endpoint and workspace host
	urlRegex = regexp.MustCompile(`https?://[^\s'"]+`)

	patterns = []*regexp.Regexp{
		bearerRegex, apiKeyRegex, passwordRegex, urlRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		bearerRegex:   RedactedCredentialPlaceholder,
		apiKeyRegex:   RedactedKeyPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		urlRegex:      RedactedURLPlaceholder,
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, patternPlaceholders[pattern])
	}
	return result
}

// Error redacts sensitive information from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
