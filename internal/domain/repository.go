package domain

import "context"

// Repository is the data store contract over the seven topic documents.
type Repository interface {
	// Projections
	MerchantInfo(ctx context.Context) MerchantDocument
	AccountStatus(ctx context.Context) AccountStatusView
	KYCStatus(ctx context.Context) KYCStatusView
	PayoutInfo(ctx context.Context) PayoutInfoView
	TransactionLimits(ctx context.Context) TransactionLimitsView
	SupportTickets(ctx context.Context) TicketSummaryView
	NotificationPreferences(ctx context.Context) NotificationPreferencesView
	DashboardInsights(ctx context.Context) DashboardInsightsView
	ProjectionFor(ctx context.Context, topic Topic) any
	Summary(ctx context.Context) DataSummary

	// Mutations
	CreateTicket(ctx context.Context, subject, description string, priority TicketPriority) (Ticket, error)
	UpdateTicketStatus(ctx context.Context, ticketID string, status TicketStatus) error
	AddKYCDocument(ctx context.Context, documentType, status string) (bool, error)
	AppendNotification(ctx context.Context, record NotificationRecord) error

	// Lifecycle
	Reload(ctx context.Context) error
	ListDocuments(ctx context.Context) ([]DocumentInfo, error)

	// Idempotency tracking for notification delivery
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}

// DocumentStore is the persistence contract: whole documents in, whole
// documents out. A missing document is reported as (nil, nil).
type DocumentStore interface {
	ReadDocument(name string) ([]byte, error)
	WriteDocument(name string, data []byte) error
	ListDocuments() ([]DocumentInfo, error)
}

// Generator produces prose from system instructions and a user prompt. Any
// error means "unavailable"; callers degrade to templated fallback text.
type Generator interface {
	Generate(ctx context.Context, systemInstructions, userPrompt string) (string, error)
}
