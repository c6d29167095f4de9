package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// suggestionRule maps a keyword set to a canned action list. The table has its
// own ordering and keyword sets, separate from the topic classification table:
// it covers extra buckets (self-help, admin, testing) that have no data topic.
type suggestionRule struct {
	keywords    []string
	suggestions []string
}

const maxSuggestions = 5

var suggestionRules = []suggestionRule{
	{
		keywords: []string{"hold", "freeze", "account", "unlock"},
		suggestions: []string{
			"Check account verification status in dashboard",
			"Review recent transaction patterns for anomalies",
			"Prepare KYC documents for review",
			"Contact support with merchant ID and transaction details",
			"Check compliance status and pending requirements",
		},
	},
	{
		keywords: []string{"kyc", "verification", "document", "pan", "address"},
		suggestions: []string{
			"Upload required documents in merchant portal",
			"Check KYC status in account dashboard",
			"Review document requirements checklist",
			"Contact KYC team for specific guidance",
			"Schedule a verification call if needed",
		},
	},
	{
		keywords: []string{"payout", "settlement", "payment", "delay"},
		suggestions: []string{
			"Check payout schedule in merchant portal",
			"Verify bank account details and status",
			"Review transaction volume and limits",
			"Contact settlement team with merchant ID",
			"Check for any compliance holds",
		},
	},
	{
		keywords: []string{"limit", "threshold", "transaction", "increase"},
		suggestions: []string{
			"Review current usage in dashboard",
			"Submit limit increase request with business proof",
			"Check compliance requirements for higher limits",
			"Contact account manager for expedited processing",
			"Monitor transaction patterns for approval",
		},
	},
	{
		keywords: []string{"ticket", "support", "escalate", "create"},
		suggestions: []string{
			"Create ticket with detailed issue description",
			"Attach relevant screenshots and documents",
			"Check ticket status in support portal",
			"Escalate to manager if urgent",
			"Follow up within 24-48 hours",
		},
	},
	{
		keywords: []string{"guide", "step", "how", "explain", "walk"},
		suggestions: []string{
			"Follow the step-by-step guide provided",
			"Check our knowledge base for detailed instructions",
			"Watch tutorial videos in merchant portal",
			"Contact support if steps don't work",
			"Save the guide for future reference",
		},
	},
	{
		keywords: []string{"alert", "notification", "email", "whatsapp", "preference"},
		suggestions: []string{
			"Update notification preferences in account settings",
			"Test notification delivery",
			"Review notification history",
			"Set up multiple contact methods",
			"Configure alert frequency and timing",
		},
	},
	{
		keywords: []string{"dashboard", "trend", "analysis", "performance", "summary"},
		suggestions: []string{
			"Review dashboard analytics regularly",
			"Export reports for detailed analysis",
			"Set up automated reporting",
			"Compare performance with previous periods",
			"Share insights with your team",
		},
	},
	{
		keywords: []string{"admin", "list", "bulk", "manager"},
		suggestions: []string{
			"Use admin portal for bulk operations",
			"Generate reports for management review",
			"Set up automated compliance checks",
			"Configure team access permissions",
			"Monitor system-wide metrics",
		},
	},
	{
		keywords: []string{"test", "debug", "simulate", "dry-run"},
		suggestions: []string{
			"Run tests in sandbox environment",
			"Check system logs for errors",
			"Verify API integrations",
			"Test all workflows thoroughly",
			"Document any issues found",
		},
	},
}

var fallbackSuggestions = []string{
	"Review account dashboard for current status",
	"Check system status page for any issues",
	"Contact technical support for assistance",
	"Schedule a consultation call",
	"Review our knowledge base for solutions",
}

// suggestionsFor returns the first matching rule's action list, capped at
// maxSuggestions. First match wins; no scoring across rules.
func suggestionsFor(text string) []string {
	lower := strings.ToLower(text)

	suggestions := fallbackSuggestions
	for _, rule := range suggestionRules {
		matched := false
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if matched {
			suggestions = rule.suggestions
			break
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return append([]string(nil), suggestions...)
}

// defaultEscalationKeywords is deliberately broad; common words like "error"
// and "problem" match a large fraction of real queries. The list is
// replaceable through the routing rules file so it can be tuned without code
// changes.
var defaultEscalationKeywords = []string{
	"urgent", "critical", "emergency", "blocked", "frozen",
	"legal", "compliance", "regulatory", "fraud", "security",
	"escalate", "manager", "immediate", "serious", "broken",
	"not working", "failed", "error", "issue", "problem",
}

// RoutingRules carries the tunable parts of query routing.
type RoutingRules struct {
	EscalationKeywords []string `yaml:"escalation_keywords"`
}

// LoadRoutingRules reads the optional YAML rules file. An empty path yields
// the compiled-in defaults.
func LoadRoutingRules(path string) (RoutingRules, error) {
	rules := RoutingRules{
		EscalationKeywords: append([]string(nil), defaultEscalationKeywords...),
	}

	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read routing rules: %w", err)
	}

	var loaded RoutingRules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return rules, fmt.Errorf("parse routing rules: %w", err)
	}

	if len(loaded.EscalationKeywords) > 0 {
		rules.EscalationKeywords = loaded.EscalationKeywords
	}

	return rules, nil
}

func escalationNeeded(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
