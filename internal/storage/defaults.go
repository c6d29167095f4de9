package storage

import "github.com/merchops/support-assistant/internal/domain"

const defaultMerchantID = "MERCH123456"

// Default documents substituted when a file is missing or malformed. A corrupt
// data directory must never prevent the service from starting.

func defaultMerchantDocument() domain.MerchantDocument {
	return domain.MerchantDocument{
		MerchantID:       defaultMerchantID,
		BusinessName:     "Default Business",
		AccountStatus:    domain.AccountStatusActive,
		AccountType:      "business",
		RegistrationDate: "2023-06-15",
		LastActivity:     "2024-01-15T10:30:00Z",
		ComplianceStatus: "pending",
		RiskScore:        "low",
		ContactInfo: domain.ContactInfo{
			Email:   "default@business.com",
			Phone:   "+91-0000000000",
			Address: "Default Address",
		},
	}
}

func defaultTicketDocument() domain.TicketDocument {
	return domain.TicketDocument{
		MerchantID:            defaultMerchantID,
		OpenTickets:           0,
		TotalTickets:          0,
		ResolvedTickets:       0,
		AverageResolutionTime: "24 hours",
		Tickets:               []domain.Ticket{},
	}
}

func defaultKYCDocument() domain.KYCDocument {
	return domain.KYCDocument{
		MerchantID:           defaultMerchantID,
		KYCStatus:            "pending",
		KYCLevel:             "basic",
		VerificationProgress: 0,
		PendingDocuments:     []string{},
		UploadedDocuments:    []string{},
		RejectedDocuments:    []string{},
		KYCHistory:           []domain.KYCHistoryEntry{},
	}
}

func defaultPayoutDocument() domain.PayoutDocument {
	return domain.PayoutDocument{
		MerchantID:     defaultMerchantID,
		PayoutSchedule: "T+2",
		LastPayout:     "2024-01-15",
		NextSettlement: "2024-01-17",
		TotalPayouts:   0,
		PayoutAmount:   0,
		PendingPayouts: 0,
		PayoutHistory:  []domain.PayoutRecord{},
		BankAccounts:   []domain.BankAccount{},
	}
}

func defaultLimitsDocument() domain.LimitsDocument {
	return domain.LimitsDocument{
		MerchantID:         defaultMerchantID,
		TransactionLimit:   50000,
		DailyLimit:         100000,
		MonthlyLimit:       2000000,
		CurrentUsage:       0,
		LimitUtilization:   0,
		TransactionCount:   0,
		AverageTransaction: 0,
		LimitHistory:       []domain.LimitHistoryEntry{},
		RecentTransactions: []domain.TransactionRecord{},
	}
}

func defaultNotificationDocument() domain.NotificationDocument {
	return domain.NotificationDocument{
		MerchantID: defaultMerchantID,
		EmailNotifications: map[string]bool{
			"kyc_updates":      true,
			"payout_alerts":    true,
			"account_changes":  true,
			"ticket_updates":   true,
			"daily_summary":    false,
			"marketing_emails": false,
		},
		WhatsappNotifications: map[string]bool{
			"kyc_updates":        false,
			"payout_alerts":      true,
			"account_changes":    true,
			"ticket_updates":     false,
			"transaction_alerts": true,
		},
		SMSNotifications: map[string]bool{
			"kyc_updates":      false,
			"payout_alerts":    true,
			"account_changes":  false,
			"ticket_updates":   false,
			"otp_verification": true,
		},
		NotificationHistory: []domain.NotificationRecord{},
	}
}

func defaultDashboardDocument() domain.DashboardDocument {
	return domain.DashboardDocument{
		MerchantID: defaultMerchantID,
		WeeklyTrends: domain.WeeklyTrends{
			Transactions: []int{0, 0, 0, 0, 0, 0, 0},
			Payouts:      []int{0, 0, 0, 0, 0, 0, 0},
			Tickets:      []int{0, 0, 0, 0, 0, 0, 0},
			Dates: []string{
				"2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12",
				"2024-01-13", "2024-01-14", "2024-01-15",
			},
		},
		IssueFrequency: map[string]int{
			"payout_delays":      0,
			"kyc_issues":         0,
			"technical_problems": 0,
			"limit_increases":    0,
			"account_holds":      0,
		},
		PerformanceMetrics: domain.PerformanceMetrics{
			Uptime:                99.8,
			ResponseTime:          "2.3s",
			SuccessRate:           98.5,
			CustomerSatisfaction:  4.2,
			AverageResolutionTime: "24 hours",
		},
		MonthlySummary: domain.MonthlySummary{},
	}
}
