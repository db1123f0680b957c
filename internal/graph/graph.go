// Package graph builds an in-memory relationship view over the mailbox.
// The graph is advisory context, not authoritative state: it is rebuilt from
// a full scan on every request and never persisted.
package graph

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"mailmind/internal/model"
	"mailmind/internal/repository"
)

// Priority tiers derived purely from interaction count.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityVIP    = "vip"
)

// ContactNode aggregates everything known about one sender address.
type ContactNode struct {
	Email            string     `json:"email"`
	Name             string     `json:"name,omitempty"`
	Company          string     `json:"company,omitempty"`
	InteractionCount int        `json:"interaction_count"`
	LastInteraction  *time.Time `json:"last_interaction,omitempty"`
	SentimentHistory []string   `json:"-"`
	Topics           []string   `json:"topics"`
	PriorityLevel    string     `json:"priority_level"`
}

// AvgSentiment is the majority vote over the sentiment history. Ties favor
// neutral.
func (n *ContactNode) AvgSentiment() string {
	positive, negative := 0, 0
	for _, s := range n.SentimentHistory {
		switch s {
		case "positive":
			positive++
		case "negative":
			negative++
		}
	}
	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	default:
		return "neutral"
	}
}

// 固定的主题关键词表，全图共用
var topicKeywords = map[string][]string{
	"meeting":   {"meeting", "call", "sync", "standup", "review"},
	"project":   {"project", "sprint", "milestone", "deadline", "delivery"},
	"report":    {"report", "analysis", "summary", "metrics", "data"},
	"sales":     {"deal", "proposal", "quote", "contract", "client"},
	"support":   {"issue", "problem", "help", "support", "ticket"},
	"finance":   {"invoice", "payment", "budget", "expense", "billing"},
	"hiring":    {"interview", "candidate", "resume", "offer", "job"},
	"marketing": {"campaign", "launch", "press", "announcement", "event"},
}

// topicOrder keeps topic extraction deterministic across runs.
var topicOrder = []string{"meeting", "project", "report", "sales", "support", "finance", "hiring", "marketing"}

var freemailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

var senderRe = regexp.MustCompile(`^([^<]+)\s*<([^>]+)>$`)

// ExtractTopics returns the deduplicated topic tags that match the text, in
// stable order.
func ExtractTopics(subject, body string) []string {
	text := strings.ToLower(subject + " " + body)
	var topics []string
	for _, topic := range topicOrder {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(text, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}

// ParseSender splits a "Name <addr>" sender into display name, bare address
// and a company guess from a non-freemail domain.
func ParseSender(sender string) (name, addr, company string) {
	addr = sender
	if m := senderRe.FindStringSubmatch(sender); m != nil {
		name = strings.TrimSpace(m[1])
		addr = m[2]
	}
	if at := strings.Index(addr, "@"); at >= 0 {
		domain := addr[at+1:]
		if !freemailDomains[domain] {
			if dot := strings.Index(domain, "."); dot > 0 {
				company = strings.ToUpper(domain[:1]) + domain[1:dot]
			}
		}
	}
	return name, addr, company
}

// Builder rebuilds the contact graph from the email store on each request.
type Builder struct {
	emails *repository.EmailRepository
}

func NewBuilder(emails *repository.EmailRepository) *Builder {
	return &Builder{emails: emails}
}

// BuildContext returns the relationship summary for the given sender,
// rebuilt from a full mailbox scan. Empty string when the sender has no
// prior history.
func (b *Builder) BuildContext(ctx context.Context, sender string) (string, error) {
	emails, err := b.emails.ListAll(ctx)
	if err != nil {
		return "", err
	}
	contacts := build(emails)
	return ContextText(contacts[sender]), nil
}

// Contacts returns every known contact ordered by interaction count, most
// active first.
func (b *Builder) Contacts(ctx context.Context) ([]*ContactNode, error) {
	emails, err := b.emails.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byAddr := build(emails)
	nodes := make([]*ContactNode, 0, len(byAddr))
	for _, n := range byAddr {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].InteractionCount != nodes[j].InteractionCount {
			return nodes[i].InteractionCount > nodes[j].InteractionCount
		}
		return nodes[i].Email < nodes[j].Email
	})
	return nodes, nil
}

// build runs the full scan and aggregates per-sender nodes. Keyed by the
// sender string exactly as stored.
func build(emails []model.Email) map[string]*ContactNode {
	contacts := make(map[string]*ContactNode)
	for i := range emails {
		e := &emails[i]
		if e.Sender == "" {
			continue
		}
		node, ok := contacts[e.Sender]
		if !ok {
			name, _, company := ParseSender(e.Sender)
			node = &ContactNode{
				Email:         e.Sender,
				Name:          name,
				Company:       company,
				PriorityLevel: PriorityNormal,
			}
			contacts[e.Sender] = node
		}

		node.InteractionCount++
		sentiment := e.Sentiment
		if sentiment == "" {
			sentiment = "neutral"
		}
		node.SentimentHistory = append(node.SentimentHistory, sentiment)

		ts := e.ReceivedAt
		if node.LastInteraction == nil || ts.After(*node.LastInteraction) {
			node.LastInteraction = &ts
		}
		for _, topic := range ExtractTopics(e.Subject, e.Body) {
			if !contains(node.Topics, topic) {
				node.Topics = append(node.Topics, topic)
			}
		}

		switch {
		case node.InteractionCount >= 10:
			node.PriorityLevel = PriorityVIP
		case node.InteractionCount >= 5:
			node.PriorityLevel = PriorityHigh
		}
	}
	return contacts
}

// ContextText renders the short multi-line summary injected into reply
// prompts. Empty string when the sender has no prior history.
func ContextText(node *ContactNode) string {
	if node == nil || node.InteractionCount == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Sender Context:\n")
	fmt.Fprintf(&b, "- Name: %s\n", valueOr(node.Name, "Unknown"))
	fmt.Fprintf(&b, "- Company: %s\n", valueOr(node.Company, "Unknown"))
	fmt.Fprintf(&b, "- Previous interactions: %d\n", node.InteractionCount)
	fmt.Fprintf(&b, "- Relationship sentiment: %s\n", node.AvgSentiment())
	fmt.Fprintf(&b, "- Priority level: %s", node.PriorityLevel)
	if len(node.Topics) > 0 {
		topics := node.Topics
		if len(topics) > 5 {
			topics = topics[:5]
		}
		fmt.Fprintf(&b, "\n- Common topics: %s", strings.Join(topics, ", "))
	}
	return b.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
