package domain

import "strings"

// TopicRule pairs a topic with the keywords that select it.
type TopicRule struct {
	Topic    Topic
	Keywords []string
}

// TopicRules is the single ordered classification table. It is evaluated
// top-to-bottom with first-match-wins semantics and is shared by the data
// store's projection routing and the query router's classification so the two
// cannot drift apart.
var TopicRules = []TopicRule{
	{TopicAccount, []string{"account", "hold", "freeze", "status", "unlock"}},
	{TopicKYC, []string{"kyc", "verification", "document", "pan", "address", "compliance"}},
	{TopicPayout, []string{"payout", "settlement", "payment", "delay"}},
	{TopicLimits, []string{"limit", "transaction", "threshold", "increase"}},
	{TopicTickets, []string{"ticket", "support", "escalate", "create"}},
	{TopicNotifications, []string{"alert", "notification", "email", "whatsapp", "preference"}},
	{TopicDashboard, []string{"dashboard", "trend", "analysis", "performance", "summary"}},
}

// ClassifyTopic maps free text to a topic by case-insensitive substring match
// against TopicRules. Falls back to TopicGeneral when nothing matches.
func ClassifyTopic(text string) Topic {
	lower := strings.ToLower(text)
	for _, rule := range TopicRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Topic
			}
		}
	}
	return TopicGeneral
}
