package service

import (
	"fmt"
	"strings"

	"github.com/merchops/support-assistant/internal/domain"
)

// fallbackResponse builds the deterministic templated answer used whenever the
// generator is unconfigured or unreachable. It must never fail; unknown
// projection types degrade to the generic template.
func fallbackResponse(topic domain.Topic, query string, data any) string {
	switch view := data.(type) {
	case domain.AccountStatusView:
		return fmt.Sprintf(`I understand you're asking about your account. Here is the current state on record:

Merchant ID: %s
Account Status: %s
Compliance Status: %s
Risk Score: %s

Next steps:
1. Check your account verification status in the merchant portal
2. Review and complete any pending KYC documents
3. Contact support with your merchant ID if the status looks wrong
4. Review recent transaction patterns for anomalies

Expected timeline: 24-48 hours for a standard review.`,
			view.MerchantID, view.AccountStatus, view.ComplianceStatus, view.RiskScore)

	case domain.KYCStatusView:
		pending := strings.Join(view.PendingDocuments, ", ")
		if pending == "" {
			pending = "none"
		}
		return fmt.Sprintf(`Here is your current KYC verification state:

KYC Status: %s (level: %s)
Verification Progress: %d%%
Pending Documents: %s
Uploaded Documents: %d

Next steps:
1. Upload the remaining documents in the merchant portal
2. Verify document quality and clarity before submitting
3. Schedule a verification call if documents keep getting rejected

Timeline: 3-5 business days for document review.`,
			view.KYCStatus, view.KYCLevel, view.VerificationProgress, pending, len(view.UploadedDocuments))

	case domain.PayoutInfoView:
		return fmt.Sprintf(`Here is your current payout status:

Payout Schedule: %s
Last Payout: %s
Next Settlement: %s
Pending Amount: %.2f

Troubleshooting steps:
1. Verify bank account details are correct
2. Check transaction volume and limits
3. Contact the settlement team with your merchant ID
4. Check for any compliance holds

Expected resolution: 1-2 business days.`,
			view.PayoutSchedule, view.LastPayout, view.NextSettlement, view.PendingPayouts)

	case domain.TransactionLimitsView:
		return fmt.Sprintf(`Here are your current transaction limits:

Per-transaction Limit: %.2f
Daily Limit: %.2f
Monthly Limit: %.2f
Current Usage: %.2f (utilization %.1f%%)

To request a change, submit a limit increase request with business proof from the merchant portal.`,
			view.TransactionLimit, view.DailyLimit, view.MonthlyLimit, view.CurrentUsage, view.LimitUtilization)

	case domain.TicketSummaryView:
		return fmt.Sprintf(`Here is your support ticket overview:

Open Tickets: %d
Resolved Tickets: %d
Total Tickets: %d
Average Resolution Time: %s

You can create a new ticket with a detailed issue description, or check the status of an existing one in the support portal.`,
			view.OpenTickets, view.ResolvedTickets, view.TotalTickets, view.AverageResolutionTime)

	case domain.NotificationPreferencesView:
		return fmt.Sprintf(`Here are your notification preferences for merchant %s across email, WhatsApp and SMS. You can update them in account settings and test delivery after any change.`,
			view.MerchantID)

	case domain.DashboardInsightsView:
		return fmt.Sprintf(`Here is your dashboard overview for merchant %s: success rate %.1f%%, uptime %.1f%%, average resolution time %s. Review the weekly trends and issue frequency in the merchant portal for details.`,
			view.MerchantID, view.PerformanceMetrics.SuccessRate, view.PerformanceMetrics.Uptime,
			view.PerformanceMetrics.AverageResolutionTime)

	default:
		merchantID := ""
		if ref, ok := data.(domain.MerchantRef); ok {
			merchantID = ref.MerchantID
		}
		return fmt.Sprintf(`Thank you for your query: "%s"

I can help with account status and holds, KYC verification, payouts and settlements, transaction limits, support tickets, notification preferences and dashboard insights.

Merchant ID on record: %s

Try rephrasing your question with the area you need help with, or create a support ticket for anything specific.`,
			query, merchantID)
	}
}

// fallbackSummary synthesizes a conversation summary without the generator.
func fallbackSummary(entries []domain.ConversationEntry) string {
	topics := map[domain.Topic]int{}
	for _, e := range entries {
		topics[domain.ClassifyTopic(e.Query)]++
	}

	parts := make([]string, 0, len(topics))
	for _, rule := range domain.TopicRules {
		if n := topics[rule.Topic]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", rule.Topic, n))
		}
	}
	if n := topics[domain.TopicGeneral]; n > 0 {
		parts = append(parts, fmt.Sprintf("%s (%d)", domain.TopicGeneral, n))
	}

	return fmt.Sprintf("Handled %d support queries. Areas discussed: %s. Last query: %q.",
		len(entries), strings.Join(parts, ", "), entries[len(entries)-1].Query)
}
