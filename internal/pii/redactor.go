// Package pii strips likely sensitive data from text before it leaves the
// process. Email addresses are deliberately left intact: downstream analysis
// reasons about sender identity.
package pii

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// 顺序固定：先信用卡，再 SSN，再电话
var rules = []rule{
	{regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`), "[REDACTED_CREDIT_CARD]"},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[REDACTED_SSN]"},
	{regexp.MustCompile(`\b(?:\+?1[-.]?)?\s*\(?[0-9]{3}\)?[-. ]?[0-9]{3}[-. ]?[0-9]{4}\b`), "[REDACTED_PHONE]"},
}

// Redact replaces credit-card, SSN and phone shaped sequences with fixed
// placeholder tokens. Idempotent: the placeholders themselves match none of
// the patterns.
func Redact(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
