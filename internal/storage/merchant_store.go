package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/pkg/logger"
)

const (
	docMerchant     = "merchant_data.json"
	docTickets      = "ticket_data.json"
	docKYC          = "kyc_data.json"
	docPayout       = "payout_data.json"
	docLimits       = "transaction_data.json"
	docNotification = "notification_data.json"
	docDashboard    = "dashboard_data.json"
)

// documents is the in-memory working set of the seven topic documents.
type documents struct {
	merchant     domain.MerchantDocument
	tickets      domain.TicketDocument
	kyc          domain.KYCDocument
	payout       domain.PayoutDocument
	limits       domain.LimitsDocument
	notification domain.NotificationDocument
	dashboard    domain.DashboardDocument
}

// MerchantStore owns the seven topic documents for the process lifetime. All
// reads return copies; all mutations are whole-document read-modify-persist
// under one exclusive lock, with the in-memory state updated only after the
// persist succeeds.
type MerchantStore struct {
	files           domain.DocumentStore
	logger          *logger.Logger
	mu              sync.RWMutex
	docs            documents
	ticketSeq       int
	processedEvents map[string]bool
}

func NewMerchantStore(files domain.DocumentStore, log *logger.Logger) *MerchantStore {
	s := &MerchantStore{
		files:           files,
		logger:          log,
		processedEvents: make(map[string]bool),
	}

	ctx := context.Background()
	docs, err := s.loadAll(ctx)
	if err != nil {
		// Degrade-to-default policy: an unreadable data directory must not
		// prevent startup.
		s.logger.Error(ctx, "Failed to load documents, continuing with defaults",
			"error", err,
		)
	}
	s.docs = docs
	s.ticketSeq = nextTicketSeq(docs.tickets.Tickets)

	return s
}

// loadDocument reads one document, substituting the default on absence or
// malformed content. Only unexpected I/O failures are reported as errors.
func loadDocument[T any](s *MerchantStore, ctx context.Context, name string, def T) (T, error) {
	data, err := s.files.ReadDocument(name)
	if err != nil {
		return def, err
	}
	if data == nil {
		s.logger.Warn(ctx, "Document not found, using defaults", "document", name)
		return def, nil
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn(ctx, "Document malformed, using defaults",
			"document", name,
			"error", err,
		)
		return def, nil
	}
	return doc, nil
}

func (s *MerchantStore) loadAll(ctx context.Context) (documents, error) {
	var docs documents
	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	var err error
	docs.merchant, err = loadDocument(s, ctx, docMerchant, defaultMerchantDocument())
	keep(err)
	docs.tickets, err = loadDocument(s, ctx, docTickets, defaultTicketDocument())
	keep(err)
	docs.kyc, err = loadDocument(s, ctx, docKYC, defaultKYCDocument())
	keep(err)
	docs.payout, err = loadDocument(s, ctx, docPayout, defaultPayoutDocument())
	keep(err)
	docs.limits, err = loadDocument(s, ctx, docLimits, defaultLimitsDocument())
	keep(err)
	docs.notification, err = loadDocument(s, ctx, docNotification, defaultNotificationDocument())
	keep(err)
	docs.dashboard, err = loadDocument(s, ctx, docDashboard, defaultDashboardDocument())
	keep(err)

	return docs, firstErr
}

// Reload re-reads all seven documents. Prior in-memory state is kept whenever
// an unexpected error occurs; missing or malformed files still fall back to
// defaults as at startup.
func (s *MerchantStore) Reload(ctx context.Context) error {
	docs, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "Reload failed, keeping current state", "error", err)
		return fmt.Errorf("reload documents: %w", err)
	}

	s.mu.Lock()
	s.docs = docs
	s.ticketSeq = nextTicketSeq(docs.tickets.Tickets)
	s.mu.Unlock()

	s.logger.Info(ctx, "Documents reloaded")
	return nil
}

func (s *MerchantStore) persist(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.files.WriteDocument(name, data)
}

// nextTicketSeq seeds the monotonic ticket counter from the highest numeric
// suffix already present, so ids stay collision-free across restarts.
func nextTicketSeq(tickets []domain.Ticket) int {
	seq := 100
	for _, t := range tickets {
		n, err := strconv.Atoi(strings.TrimPrefix(t.TicketID, "TKT"))
		if err == nil && n >= seq {
			seq = n + 1
		}
	}
	return seq
}

func (s *MerchantStore) MerchantInfo(ctx context.Context) domain.MerchantDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := s.docs.merchant
	return doc
}

func (s *MerchantStore) AccountStatus(ctx context.Context) domain.AccountStatusView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.AccountStatusView{
		MerchantID:       s.docs.merchant.MerchantID,
		AccountStatus:    s.docs.merchant.AccountStatus,
		ComplianceStatus: s.docs.merchant.ComplianceStatus,
		RiskScore:        s.docs.merchant.RiskScore,
		LastActivity:     s.docs.merchant.LastActivity,
	}
}

func (s *MerchantStore) KYCStatus(ctx context.Context) domain.KYCStatusView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.KYCStatusView{
		MerchantID:           s.docs.kyc.MerchantID,
		KYCStatus:            s.docs.kyc.KYCStatus,
		KYCLevel:             s.docs.kyc.KYCLevel,
		VerificationProgress: s.docs.kyc.VerificationProgress,
		PendingDocuments:     slices.Clone(s.docs.kyc.PendingDocuments),
		UploadedDocuments:    slices.Clone(s.docs.kyc.UploadedDocuments),
		RejectedDocuments:    slices.Clone(s.docs.kyc.RejectedDocuments),
	}
}

func (s *MerchantStore) PayoutInfo(ctx context.Context) domain.PayoutInfoView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.PayoutInfoView{
		MerchantID:     s.docs.payout.MerchantID,
		LastPayout:     s.docs.payout.LastPayout,
		NextSettlement: s.docs.payout.NextSettlement,
		PayoutSchedule: s.docs.payout.PayoutSchedule,
		TotalPayouts:   s.docs.payout.TotalPayouts,
		PayoutAmount:   s.docs.payout.PayoutAmount,
		PendingPayouts: s.docs.payout.PendingPayouts,
	}
}

func (s *MerchantStore) TransactionLimits(ctx context.Context) domain.TransactionLimitsView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.TransactionLimitsView{
		MerchantID:       s.docs.limits.MerchantID,
		TransactionLimit: s.docs.limits.TransactionLimit,
		DailyLimit:       s.docs.limits.DailyLimit,
		MonthlyLimit:     s.docs.limits.MonthlyLimit,
		CurrentUsage:     s.docs.limits.CurrentUsage,
		LimitUtilization: s.docs.limits.LimitUtilization,
	}
}

func (s *MerchantStore) SupportTickets(ctx context.Context) domain.TicketSummaryView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.TicketSummaryView{
		MerchantID:            s.docs.tickets.MerchantID,
		OpenTickets:           s.docs.tickets.OpenTickets,
		TotalTickets:          s.docs.tickets.TotalTickets,
		ResolvedTickets:       s.docs.tickets.ResolvedTickets,
		AverageResolutionTime: s.docs.tickets.AverageResolutionTime,
		Tickets:               slices.Clone(s.docs.tickets.Tickets),
	}
}

func (s *MerchantStore) NotificationPreferences(ctx context.Context) domain.NotificationPreferencesView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.NotificationPreferencesView{
		MerchantID:            s.docs.notification.MerchantID,
		EmailNotifications:    maps.Clone(s.docs.notification.EmailNotifications),
		WhatsappNotifications: maps.Clone(s.docs.notification.WhatsappNotifications),
		SMSNotifications:      maps.Clone(s.docs.notification.SMSNotifications),
	}
}

func (s *MerchantStore) DashboardInsights(ctx context.Context) domain.DashboardInsightsView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trends := s.docs.dashboard.WeeklyTrends
	return domain.DashboardInsightsView{
		MerchantID: s.docs.dashboard.MerchantID,
		WeeklyTrends: domain.WeeklyTrends{
			Transactions: slices.Clone(trends.Transactions),
			Payouts:      slices.Clone(trends.Payouts),
			Tickets:      slices.Clone(trends.Tickets),
			Dates:        slices.Clone(trends.Dates),
		},
		IssueFrequency:     maps.Clone(s.docs.dashboard.IssueFrequency),
		PerformanceMetrics: s.docs.dashboard.PerformanceMetrics,
	}
}

// ProjectionFor returns the read-only view for a topic. TopicGeneral falls
// back to the bare merchant reference.
func (s *MerchantStore) ProjectionFor(ctx context.Context, topic domain.Topic) any {
	switch topic {
	case domain.TopicAccount:
		return s.AccountStatus(ctx)
	case domain.TopicKYC:
		return s.KYCStatus(ctx)
	case domain.TopicPayout:
		return s.PayoutInfo(ctx)
	case domain.TopicLimits:
		return s.TransactionLimits(ctx)
	case domain.TopicTickets:
		return s.SupportTickets(ctx)
	case domain.TopicNotifications:
		return s.NotificationPreferences(ctx)
	case domain.TopicDashboard:
		return s.DashboardInsights(ctx)
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return domain.MerchantRef{MerchantID: s.docs.merchant.MerchantID}
	}
}

func (s *MerchantStore) Summary(ctx context.Context) domain.DataSummary {
	return domain.DataSummary{
		MerchantInfo:            s.MerchantInfo(ctx),
		AccountStatus:           s.AccountStatus(ctx),
		KYCStatus:               s.KYCStatus(ctx),
		PayoutInfo:              s.PayoutInfo(ctx),
		TransactionLimits:       s.TransactionLimits(ctx),
		SupportTickets:          s.SupportTickets(ctx),
		NotificationPreferences: s.NotificationPreferences(ctx),
		DashboardInsights:       s.DashboardInsights(ctx),
	}
}

func (s *MerchantStore) CreateTicket(ctx context.Context, subject, description string, priority domain.TicketPriority) (domain.Ticket, error) {
	if strings.TrimSpace(subject) == "" {
		return domain.Ticket{}, fmt.Errorf("%w: subject is required", domain.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return domain.Ticket{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return domain.Ticket{}, fmt.Errorf("%w: priority must be low, medium or high", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	ticket := domain.Ticket{
		TicketID:    fmt.Sprintf("TKT%03d", s.ticketSeq),
		Subject:     subject,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatedDate: now,
		LastUpdated: now,
		MerchantID:  s.docs.merchant.MerchantID,
	}

	updated := s.docs.tickets
	updated.Tickets = append(slices.Clone(updated.Tickets), ticket)
	updated.OpenTickets++
	updated.TotalTickets++

	if err := s.persist(docTickets, updated); err != nil {
		s.logger.Error(ctx, "Failed to persist ticket document", "error", err)
		return domain.Ticket{}, err
	}

	s.docs.tickets = updated
	s.ticketSeq++

	s.logger.Info(logger.WithTicketID(ctx, ticket.TicketID), "Ticket created",
		"priority", priority,
	)

	return ticket, nil
}

func (s *MerchantStore) UpdateTicketStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status must be open, in_progress, resolved or closed", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.docs.tickets
	updated.Tickets = slices.Clone(updated.Tickets)

	idx := slices.IndexFunc(updated.Tickets, func(t domain.Ticket) bool {
		return t.TicketID == ticketID
	})
	if idx < 0 {
		return domain.ErrTicketNotFound
	}

	prev := updated.Tickets[idx].Status
	updated.Tickets[idx].Status = status
	updated.Tickets[idx].LastUpdated = time.Now()

	if status == domain.TicketStatusResolved && prev != domain.TicketStatusResolved {
		updated.OpenTickets = max(0, updated.OpenTickets-1)
		updated.ResolvedTickets++
	}

	if err := s.persist(docTickets, updated); err != nil {
		s.logger.Error(ctx, "Failed to persist ticket document", "error", err)
		return err
	}

	s.docs.tickets = updated

	s.logger.Info(logger.WithTicketID(ctx, ticketID), "Ticket status updated",
		"status", status,
	)

	return nil
}

// AddKYCDocument records an uploaded document type. Returns false without
// mutating anything when the type is already uploaded.
func (s *MerchantStore) AddKYCDocument(ctx context.Context, documentType, status string) (bool, error) {
	if strings.TrimSpace(documentType) == "" {
		return false, fmt.Errorf("%w: document type is required", domain.ErrValidation)
	}
	if status == "" {
		status = "pending"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.docs.kyc.UploadedDocuments, documentType) {
		return false, nil
	}

	updated := s.docs.kyc
	updated.UploadedDocuments = append(slices.Clone(updated.UploadedDocuments), documentType)

	// A document type lives in exactly one of pending/uploaded.
	updated.PendingDocuments = slices.DeleteFunc(slices.Clone(updated.PendingDocuments), func(d string) bool {
		return d == documentType
	})

	updated.KYCHistory = append(slices.Clone(updated.KYCHistory), domain.KYCHistoryEntry{
		Date:         time.Now().Format("2006-01-02"),
		Action:       "Document uploaded: " + documentType,
		Status:       status,
		DocumentType: documentType,
	})

	total := len(updated.PendingDocuments) + len(updated.UploadedDocuments)
	if total > 0 {
		updated.VerificationProgress = len(updated.UploadedDocuments) * 100 / total
	} else {
		updated.VerificationProgress = 0
	}

	if err := s.persist(docKYC, updated); err != nil {
		s.logger.Error(ctx, "Failed to persist KYC document", "error", err)
		return false, err
	}

	s.docs.kyc = updated

	s.logger.Info(ctx, "KYC document added",
		"document_type", documentType,
		"verification_progress", updated.VerificationProgress,
	)

	return true, nil
}

func (s *MerchantStore) AppendNotification(ctx context.Context, record domain.NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.docs.notification
	updated.NotificationHistory = append(slices.Clone(updated.NotificationHistory), record)

	if err := s.persist(docNotification, updated); err != nil {
		s.logger.Error(ctx, "Failed to persist notification document", "error", err)
		return err
	}

	s.docs.notification = updated
	return nil
}

func (s *MerchantStore) ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error) {
	return s.files.ListDocuments()
}

func (s *MerchantStore) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.processedEvents[eventID], nil
}

func (s *MerchantStore) MarkEventProcessed(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processedEvents[eventID] = true

	return nil
}
