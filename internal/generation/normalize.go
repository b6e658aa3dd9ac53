package generation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The LLM endpoint's output is adversarial from our side of the wire: the
// JSON we asked for may arrive wrapped in a provider envelope, re-encoded as
// a string with inconsistent escaping, surrounded by prose, or truncated
// mid-object. Normalize recovers a subject/body pair through an ordered
// cascade of extraction strategies, most precise first. A strategy that does
// not match falls through to the next one; only total exhaustion produces a
// failure Result. Normalize never panics and never returns an error.

// Strategy names reported to observers and logs.
const (
	StrategyNoContent    = "no_content"
	StrategyTextField    = "text_field"
	StrategyBraceScan    = "brace_scan"
	StrategyWholeContent = "whole_content"
	StrategyKeyValue     = "key_value"
	StrategyExhausted    = "exhausted"
)

// diagnosticPreviewLimit bounds how much of the offending content a failure
// diagnostic may carry.
const diagnosticPreviewLimit = 200

// rawEnvelope covers the closed set of known provider response shapes.
// Exactly one of the fields is populated in practice; anything else is
// treated as an opaque text blob.
type rawEnvelope struct {
	// OpenAI-style chat completion envelope.
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`

	// Databricks prediction envelope.
	Predictions []struct {
		Candidates []struct {
			Content json.RawMessage `json:"content"`
		} `json:"candidates"`
	} `json:"predictions"`

	// Direct content field.
	Content json.RawMessage `json:"content"`
}

// Quoted text-field patterns, all four quote combinations. The value must
// look like a JSON object. These are the highest-precision content-level
// patterns because they survive a provider double-encoding the payload.
var textFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)'text':\s*'(\{.*?\})'`),
	regexp.MustCompile(`(?s)"text":\s*"(\{.*?\})"`),
	regexp.MustCompile(`(?s)'text':\s*"(\{.*?\})"`),
	regexp.MustCompile(`(?s)"text":\s*'(\{.*?)'`),
}

// Loose brace-scan patterns, progressively less strict: non-greedy bounded,
// greedy unbounded, then without nested-brace exclusion.
var braceScanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\{[^{}]*"subject"[^{}]*"body"[^{}]*\}`),
	regexp.MustCompile(`(?s)\{.*?"subject".*?"body".*?\}`),
	regexp.MustCompile(`(?s)\{[^}]*"subject"[^}]*"body"[^}]*\}`),
}

// Independent key/value extraction for when no parseable object can be
// isolated at all.
var (
	subjectFieldPattern = regexp.MustCompile(`"subject":\s*"([^"]+)"`)
	bodyFieldPattern    = regexp.MustCompile(`"body":\s*"([^"]+)"`)
)

// Normalize recovers a subject/body Result from a raw LLM response payload.
// It accepts the response exactly as read off the wire and tolerates any
// malformed, nested, truncated, or non-JSON input.
func Normalize(raw []byte) Result {
	result, _ := NormalizeWithStrategy(raw)
	return result
}

// NormalizeWithStrategy is Normalize plus the name of the cascade strategy
// that settled the response, for observability.
func NormalizeWithStrategy(raw []byte) (Result, string) {
	content := extractContent(raw)
	if content == "" {
		return FailureResult("no content found in LLM response"), StrategyNoContent
	}

	strategies := []struct {
		name string
		fn   func(string) (Result, bool)
	}{
		{StrategyTextField, extractTextField},
		{StrategyBraceScan, extractBraceScan},
		{StrategyWholeContent, extractWholeContent},
		{StrategyKeyValue, extractKeyValue},
	}

	for _, s := range strategies {
		if result, ok := runStrategy(s.fn, content); ok {
			return result, s.name
		}
	}

	return FailureResult("could not extract email from LLM response; content: " + preview(content)), StrategyExhausted
}

// runStrategy isolates one strategy behind a recover boundary: a panic in
// pattern matching or parsing counts as "did not match", never as failure
// of the whole operation.
func runStrategy(fn func(string) (Result, bool), content string) (result Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			result, ok = Result{}, false
		}
	}()
	return fn(content)
}

// extractContent probes the known provider envelopes in order and returns
// the inner textual content. When no envelope matches, or the payload is not
// JSON at all, the whole payload is used as a last-resort text blob.
func extractContent(raw []byte) string {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return string(raw)
	}

	switch {
	case len(env.Choices) > 0:
		return decodeContent(env.Choices[0].Message.Content)
	case len(env.Predictions) > 0:
		if cands := env.Predictions[0].Candidates; len(cands) > 0 {
			return decodeContent(cands[0].Content)
		}
		return ""
	case env.Content != nil:
		return decodeContent(env.Content)
	default:
		return string(raw)
	}
}

// decodeContent turns a raw content value into one string. Providers emit
// the content either as a plain string or as a sequence of parts; parts are
// joined with single spaces.
func decodeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err == nil {
		joined := make([]string, 0, len(parts))
		for _, part := range parts {
			var ps string
			if err := json.Unmarshal(part, &ps); err == nil {
				joined = append(joined, ps)
			} else {
				joined = append(joined, string(part))
			}
		}
		return strings.Join(joined, " ")
	}

	return string(raw)
}

// extractTextField matches a text-keyed quoted JSON object, unescapes it and
// parses it. The body is unescaped a second time after JSON decoding; the
// transformation is idempotent on clean strings, so the extra pass only
// removes escapes a double-encoding provider left behind.
func extractTextField(content string) (Result, bool) {
	for _, pattern := range textFieldPatterns {
		match := pattern.FindStringSubmatch(content)
		if match == nil {
			continue
		}

		if result, ok := parseSubjectBody(unescape(match[1])); ok {
			return result, true
		}
	}
	return Result{}, false
}

// extractBraceScan tries every substring that loosely looks like a
// subject/body object until one parses.
func extractBraceScan(content string) (Result, bool) {
	for _, pattern := range braceScanPatterns {
		for _, match := range pattern.FindAllString(content, -1) {
			if result, ok := parseSubjectBody(match); ok {
				return result, true
			}
		}
	}
	return Result{}, false
}

// extractWholeContent parses the entire trimmed content as one JSON object.
func extractWholeContent(content string) (Result, bool) {
	return parseSubjectBody(strings.TrimSpace(content))
}

// extractKeyValue regex-extracts the two values independently, tolerating
// broken JSON syntax around otherwise well-formed key/value text. Both must
// be present.
func extractKeyValue(content string) (Result, bool) {
	subject := subjectFieldPattern.FindStringSubmatch(content)
	body := bodyFieldPattern.FindStringSubmatch(content)
	if subject == nil || body == nil {
		return Result{}, false
	}

	return SuccessResult(subject[1], unescape(body[1])), true
}

// parseSubjectBody attempts a strict JSON parse and requires both keys to be
// present with string values.
func parseSubjectBody(candidate string) (Result, bool) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return Result{}, false
	}

	subject, ok := parsed["subject"].(string)
	if !ok {
		return Result{}, false
	}

	body, ok := parsed["body"].(string)
	if !ok {
		return Result{}, false
	}

	return SuccessResult(subject, unescape(body)), true
}

// unescape replaces escaped newline, double-quote, single-quote and
// backslash sequences with their literal characters, in that order.
// Applying it to an already-clean string is a no-op.
func unescape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\'`, "'")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// preview bounds content excerpts embedded in diagnostics.
func preview(content string) string {
	if len(content) <= diagnosticPreviewLimit {
		return content
	}
	return content[:diagnosticPreviewLimit] + "..."
}
