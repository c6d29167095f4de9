package domain

// Views are read-only projections of the topic documents. They are built from
// copies, so callers cannot reach back into store state through them.

type AccountStatusView struct {
	MerchantID       string        `json:"merchant_id"`
	AccountStatus    AccountStatus `json:"account_status"`
	ComplianceStatus string        `json:"compliance_status"`
	RiskScore        string        `json:"risk_score"`
	LastActivity     string        `json:"last_activity"`
}

// KYCStatusView excludes the KYC history log.
type KYCStatusView struct {
	MerchantID           string   `json:"merchant_id"`
	KYCStatus            string   `json:"kyc_status"`
	KYCLevel             string   `json:"kyc_level"`
	VerificationProgress int      `json:"verification_progress"`
	PendingDocuments     []string `json:"pending_documents"`
	UploadedDocuments    []string `json:"uploaded_documents"`
	RejectedDocuments    []string `json:"rejected_documents"`
}

type PayoutInfoView struct {
	MerchantID     string  `json:"merchant_id"`
	LastPayout     string  `json:"last_payout"`
	NextSettlement string  `json:"next_settlement"`
	PayoutSchedule string  `json:"payout_schedule"`
	TotalPayouts   int     `json:"total_payouts"`
	PayoutAmount   float64 `json:"payout_amount"`
	PendingPayouts float64 `json:"pending_payouts"`
}

type TransactionLimitsView struct {
	MerchantID       string  `json:"merchant_id"`
	TransactionLimit float64 `json:"transaction_limit"`
	DailyLimit       float64 `json:"daily_limit"`
	MonthlyLimit     float64 `json:"monthly_limit"`
	CurrentUsage     float64 `json:"current_usage"`
	LimitUtilization float64 `json:"limit_utilization"`
}

type TicketSummaryView struct {
	MerchantID            string   `json:"merchant_id"`
	OpenTickets           int      `json:"open_tickets"`
	TotalTickets          int      `json:"total_tickets"`
	ResolvedTickets       int      `json:"resolved_tickets"`
	AverageResolutionTime string   `json:"average_resolution_time"`
	Tickets               []Ticket `json:"tickets"`
}

// NotificationPreferencesView excludes the delivery history.
type NotificationPreferencesView struct {
	MerchantID            string          `json:"merchant_id"`
	EmailNotifications    map[string]bool `json:"email_notifications"`
	WhatsappNotifications map[string]bool `json:"whatsapp_notifications"`
	SMSNotifications      map[string]bool `json:"sms_notifications"`
}

// DashboardInsightsView excludes the monthly summary, which is only exposed
// through the full data summary.
type DashboardInsightsView struct {
	MerchantID         string             `json:"merchant_id"`
	WeeklyTrends       WeeklyTrends       `json:"weekly_trends"`
	IssueFrequency     map[string]int     `json:"issue_frequency"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
}

// MerchantRef is the fallback projection when no topic matches a query.
type MerchantRef struct {
	MerchantID string `json:"merchant_id"`
}

// DataSummary aggregates every projection for full-state introspection.
type DataSummary struct {
	MerchantInfo            MerchantDocument            `json:"merchant_info"`
	AccountStatus           AccountStatusView           `json:"account_status"`
	KYCStatus               KYCStatusView               `json:"kyc_status"`
	PayoutInfo              PayoutInfoView              `json:"payout_info"`
	TransactionLimits       TransactionLimitsView       `json:"transaction_limits"`
	SupportTickets          TicketSummaryView           `json:"support_tickets"`
	NotificationPreferences NotificationPreferencesView `json:"notification_preferences"`
	DashboardInsights       DashboardInsightsView       `json:"dashboard_insights"`
}

type DocumentInfo struct {
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}
