package domain

import "time"

type Topic string

const (
	TopicAccount       Topic = "account"
	TopicKYC           Topic = "kyc"
	TopicPayout        Topic = "payout"
	TopicLimits        Topic = "limits"
	TopicTickets       Topic = "tickets"
	TopicNotifications Topic = "notifications"
	TopicDashboard     Topic = "dashboard"
	TopicGeneral       Topic = "general"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusHold      AccountStatus = "hold"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

type Ticket struct {
	TicketID    string         `json:"ticket_id"`
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	CreatedDate time.Time      `json:"created_date"`
	LastUpdated time.Time      `json:"last_updated"`
	MerchantID  string         `json:"merchant_id"`
}

type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// MerchantDocument is the merchant profile record. MerchantID is immutable
// after creation.
type MerchantDocument struct {
	MerchantID       string        `json:"merchant_id"`
	BusinessName     string        `json:"business_name"`
	AccountStatus    AccountStatus `json:"account_status"`
	AccountType      string        `json:"account_type"`
	RegistrationDate string        `json:"registration_date"`
	LastActivity     string        `json:"last_activity"`
	ComplianceStatus string        `json:"compliance_status"`
	RiskScore        string        `json:"risk_score"`
	ContactInfo      ContactInfo   `json:"contact_info"`
}

type TicketDocument struct {
	MerchantID            string   `json:"merchant_id"`
	OpenTickets           int      `json:"open_tickets"`
	TotalTickets          int      `json:"total_tickets"`
	ResolvedTickets       int      `json:"resolved_tickets"`
	AverageResolutionTime string   `json:"average_resolution_time"`
	Tickets               []Ticket `json:"tickets"`
}

type KYCHistoryEntry struct {
	Date         string `json:"date"`
	Action       string `json:"action"`
	Status       string `json:"status"`
	DocumentType string `json:"document_type"`
}

// KYCDocument tracks verification state. A document type appears in at most
// one of PendingDocuments/UploadedDocuments, and VerificationProgress is
// always floor(100 * uploaded / (uploaded + pending)).
type KYCDocument struct {
	MerchantID           string            `json:"merchant_id"`
	KYCStatus            string            `json:"kyc_status"`
	KYCLevel             string            `json:"kyc_level"`
	VerificationProgress int               `json:"verification_progress"`
	PendingDocuments     []string          `json:"pending_documents"`
	UploadedDocuments    []string          `json:"uploaded_documents"`
	RejectedDocuments    []string          `json:"rejected_documents"`
	KYCHistory           []KYCHistoryEntry `json:"kyc_history"`
}

type PayoutRecord struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type BankAccount struct {
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bank_name"`
	Primary       bool   `json:"primary"`
}

type PayoutDocument struct {
	MerchantID     string         `json:"merchant_id"`
	PayoutSchedule string         `json:"payout_schedule"`
	LastPayout     string         `json:"last_payout"`
	NextSettlement string         `json:"next_settlement"`
	TotalPayouts   int            `json:"total_payouts"`
	PayoutAmount   float64        `json:"payout_amount"`
	PendingPayouts float64        `json:"pending_payouts"`
	PayoutHistory  []PayoutRecord `json:"payout_history"`
	BankAccounts   []BankAccount  `json:"bank_accounts"`
}

type LimitHistoryEntry struct {
	Date   string `json:"date"`
	Action string `json:"action"`
	Detail string `json:"detail"`
}

type TransactionRecord struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
}

// LimitsDocument is advisory: CurrentUsage exceeding a limit is not rejected
// at this layer.
type LimitsDocument struct {
	MerchantID         string              `json:"merchant_id"`
	TransactionLimit   float64             `json:"transaction_limit"`
	DailyLimit         float64             `json:"daily_limit"`
	MonthlyLimit       float64             `json:"monthly_limit"`
	CurrentUsage       float64             `json:"current_usage"`
	LimitUtilization   float64             `json:"limit_utilization"`
	TransactionCount   int                 `json:"transaction_count"`
	AverageTransaction float64             `json:"average_transaction"`
	LimitHistory       []LimitHistoryEntry `json:"limit_history"`
	RecentTransactions []TransactionRecord `json:"recent_transactions"`
}

type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsapp NotificationChannel = "whatsapp"
	ChannelSMS      NotificationChannel = "sms"
)

type NotificationRecord struct {
	ID      string              `json:"id"`
	Channel NotificationChannel `json:"channel"`
	Event   string              `json:"event"`
	Message string              `json:"message"`
	SentAt  time.Time           `json:"sent_at"`
}

type NotificationDocument struct {
	MerchantID            string               `json:"merchant_id"`
	EmailNotifications    map[string]bool      `json:"email_notifications"`
	WhatsappNotifications map[string]bool      `json:"whatsapp_notifications"`
	SMSNotifications      map[string]bool      `json:"sms_notifications"`
	NotificationHistory   []NotificationRecord `json:"notification_history"`
}

// WeeklyTrends holds parallel arrays; the four slices always have equal length.
type WeeklyTrends struct {
	Transactions []int    `json:"transactions"`
	Payouts      []int    `json:"payouts"`
	Tickets      []int    `json:"tickets"`
	Dates        []string `json:"dates"`
}

type PerformanceMetrics struct {
	Uptime                float64 `json:"uptime"`
	ResponseTime          string  `json:"response_time"`
	SuccessRate           float64 `json:"success_rate"`
	CustomerSatisfaction  float64 `json:"customer_satisfaction"`
	AverageResolutionTime string  `json:"average_resolution_time"`
}

type MonthlySummary struct {
	TotalTransactions      int     `json:"total_transactions"`
	TotalAmount            float64 `json:"total_amount"`
	SuccessfulTransactions int     `json:"successful_transactions"`
	FailedTransactions     int     `json:"failed_transactions"`
	TotalPayouts           int     `json:"total_payouts"`
	TotalTickets           int     `json:"total_tickets"`
	ResolvedTickets        int     `json:"resolved_tickets"`
}

type DashboardDocument struct {
	MerchantID         string             `json:"merchant_id"`
	WeeklyTrends       WeeklyTrends       `json:"weekly_trends"`
	IssueFrequency     map[string]int     `json:"issue_frequency"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	MonthlySummary     MonthlySummary     `json:"monthly_summary"`
}
