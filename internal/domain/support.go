package domain

import "time"

// SupportResponse is the composite result of answering a merchant query:
// prose, suggested next actions, an escalation signal and the data projection
// the answer was grounded on.
type SupportResponse struct {
	Response         string   `json:"response"`
	Suggestions      []string `json:"suggestions"`
	EscalationNeeded bool     `json:"escalation_needed"`
	ConversationID   int      `json:"conversation_id,omitempty"`
	Topic            Topic    `json:"topic"`
	MerchantData     any      `json:"merchant_data"`
	DemoMode         bool     `json:"demo_mode,omitempty"`
	ScenarioType     string   `json:"scenario_type,omitempty"`
}

type QueryAnalysis struct {
	Query     string    `json:"query"`
	Category  Topic     `json:"category"`
	Priority  string    `json:"priority"`
	Analysis  string    `json:"analysis"`
	Timestamp time.Time `json:"timestamp"`
}

type ConversationEntry struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
