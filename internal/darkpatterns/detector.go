// Package darkpatterns flags manipulative email tactics with deterministic
// regex rules. It never calls the network, so detection results survive any
// model-provider failure.
package darkpatterns

import (
	"regexp"
	"strings"
)

// Severity levels, ordered by distinct pattern count.
const (
	SeverityNone   = "none"
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Pattern identifiers stored alongside the email.
const (
	PatternFakeUrgency       = "fake_urgency"
	PatternExcessiveCaps     = "excessive_caps"
	PatternExclamation       = "excessive_exclamation"
	PatternShortenedLinks    = "shortened_links"
	PatternPrizeScam         = "prize_scam"
	PatternPressureTactics   = "pressure_tactics"
	PatternHiddenUnsubscribe = "hidden_unsubscribe"
)

// Result is the full detection outcome for one email.
type Result struct {
	HasPatterns bool     `json:"has_dark_patterns"`
	Patterns    []string `json:"patterns_found"`
	Severity    string   `json:"severity"`
	Warnings    []string `json:"warnings"`
}

var (
	urgencyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(urgent|immediately|asap|act now|limited time|expires|hurry|last chance)\b`),
		regexp.MustCompile(`(?i)\bonly \d+ (left|remaining)\b`),
		regexp.MustCompile(`(?i)\b(don't miss out|final (notice|warning))\b`),
	}
	capsRe        = regexp.MustCompile(`[A-Z]{5,}`)
	shortenerRe   = regexp.MustCompile(`(?i)(bit\.ly|tinyurl|t\.co|goo\.gl)`)
	prizeRes      = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(you'?ve? won|congratulations|winner|prize|claim|free)\b`),
		regexp.MustCompile(`(?i)\b(click here to claim|verify your account)\b`),
	}
	pressureRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\byour account will be (closed|suspended|deleted)\b`),
		regexp.MustCompile(`(?i)\b(verify (now|immediately)|confirm your identity)\b`),
		regexp.MustCompile(`(?i)\bunusual activity detected\b`),
	}
)

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Detect runs every rule against the subject and body. Each pattern counts
// once toward severity no matter how often it matches.
func Detect(subject, body string) Result {
	var found []string
	var warnings []string
	combined := subject + " " + body

	if matchAny(urgencyRes, combined) {
		found = append(found, PatternFakeUrgency)
		warnings = append(warnings, "Contains artificial urgency language")
	}
	if capsRe.MatchString(subject) {
		found = append(found, PatternExcessiveCaps)
		warnings = append(warnings, "Excessive capitalization in subject")
	}
	if strings.Count(subject, "!") >= 3 || strings.Count(body, "!") >= 5 {
		found = append(found, PatternExclamation)
		warnings = append(warnings, "Excessive exclamation marks")
	}
	if shortenerRe.MatchString(body) {
		found = append(found, PatternShortenedLinks)
		warnings = append(warnings, "Contains shortened/suspicious links")
	}
	if matchAny(prizeRes, combined) {
		found = append(found, PatternPrizeScam)
		warnings = append(warnings, "Suspicious prize/winner language")
	}
	if matchAny(pressureRes, body) {
		found = append(found, PatternPressureTactics)
		warnings = append(warnings, "Uses pressure/fear tactics")
	}
	// unsubscribe 链接埋在最后 10% 才算隐藏
	if pos := strings.LastIndex(strings.ToLower(body), "unsubscribe"); pos >= 0 {
		if float64(pos) > float64(len(body))*0.9 {
			found = append(found, PatternHiddenUnsubscribe)
			warnings = append(warnings, "Unsubscribe link buried at bottom")
		}
	}

	return Result{
		HasPatterns: len(found) > 0,
		Patterns:    found,
		Severity:    severityFor(len(found)),
		Warnings:    warnings,
	}
}

func severityFor(count int) string {
	switch {
	case count >= 3:
		return SeverityHigh
	case count == 2:
		return SeverityMedium
	case count == 1:
		return SeverityLow
	default:
		return SeverityNone
	}
}
