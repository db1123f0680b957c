package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactCreditCard(t *testing.T) {
	out := Redact("My card is 4111 1111 1111 1111, please charge it.")
	assert.Contains(t, out, "[REDACTED_CREDIT_CARD]")
	assert.NotContains(t, out, "4111")
}

func TestRedactSSN(t *testing.T) {
	out := Redact("SSN: 123-45-6789")
	assert.Equal(t, "SSN: [REDACTED_SSN]", out)
}

func TestRedactPhone(t *testing.T) {
	out := Redact("Call me at (555) 123-4567 tomorrow.")
	assert.Contains(t, out, "[REDACTED_PHONE]")
	assert.NotContains(t, out, "123-4567")
}

func TestRedactKeepsEmailAddresses(t *testing.T) {
	out := Redact("Reach me at alice@example.com anytime.")
	assert.Contains(t, out, "alice@example.com")
}

func TestRedactIdempotent(t *testing.T) {
	in := "card 4111111111111111 ssn 123-45-6789 phone 555-123-4567"
	once := Redact(in)
	twice := Redact(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(once, "[REDACTED_SSN]"))
}

func TestRedactEmpty(t *testing.T) {
	assert.Equal(t, "", Redact(""))
}
