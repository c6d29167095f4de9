package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/internal/eventbus"
	"github.com/merchops/support-assistant/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is a hand-rolled repository double. Mutations record their inputs;
// projections return the configured values.
type fakeRepo struct {
	projection any
	summary    domain.DataSummary

	ticket    domain.Ticket
	ticketErr error
	updateErr error
	kycAdded  bool
	kycErr    error

	createdSubjects []string
	updatedTickets  []string
	addedDocuments  []string
}

func (f *fakeRepo) MerchantInfo(ctx context.Context) domain.MerchantDocument {
	return domain.MerchantDocument{}
}

func (f *fakeRepo) AccountStatus(ctx context.Context) domain.AccountStatusView {
	return domain.AccountStatusView{}
}

func (f *fakeRepo) KYCStatus(ctx context.Context) domain.KYCStatusView {
	return domain.KYCStatusView{}
}

func (f *fakeRepo) PayoutInfo(ctx context.Context) domain.PayoutInfoView {
	return domain.PayoutInfoView{}
}

func (f *fakeRepo) TransactionLimits(ctx context.Context) domain.TransactionLimitsView {
	return domain.TransactionLimitsView{}
}

func (f *fakeRepo) SupportTickets(ctx context.Context) domain.TicketSummaryView {
	return domain.TicketSummaryView{}
}

func (f *fakeRepo) NotificationPreferences(ctx context.Context) domain.NotificationPreferencesView {
	return domain.NotificationPreferencesView{}
}

func (f *fakeRepo) DashboardInsights(ctx context.Context) domain.DashboardInsightsView {
	return domain.DashboardInsightsView{}
}

func (f *fakeRepo) ProjectionFor(ctx context.Context, topic domain.Topic) any {
	return f.projection
}

func (f *fakeRepo) Summary(ctx context.Context) domain.DataSummary {
	return f.summary
}

func (f *fakeRepo) CreateTicket(ctx context.Context, subject, description string, priority domain.TicketPriority) (domain.Ticket, error) {
	if f.ticketErr != nil {
		return domain.Ticket{}, f.ticketErr
	}
	f.createdSubjects = append(f.createdSubjects, subject)
	return f.ticket, nil
}

func (f *fakeRepo) UpdateTicketStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedTickets = append(f.updatedTickets, ticketID)
	return nil
}

func (f *fakeRepo) AddKYCDocument(ctx context.Context, documentType, status string) (bool, error) {
	if f.kycErr != nil {
		return false, f.kycErr
	}
	if f.kycAdded {
		f.addedDocuments = append(f.addedDocuments, documentType)
	}
	return f.kycAdded, nil
}

func (f *fakeRepo) AppendNotification(ctx context.Context, record domain.NotificationRecord) error {
	return nil
}

func (f *fakeRepo) Reload(ctx context.Context) error {
	return nil
}

func (f *fakeRepo) ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error) {
	return nil, nil
}

func (f *fakeRepo) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) MarkEventProcessed(ctx context.Context, eventID string) error {
	return nil
}

type fakeGenerator struct {
	text       string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, systemInstructions, userPrompt string) (string, error) {
	g.calls++
	g.lastSystem = systemInstructions
	g.lastPrompt = userPrompt
	return g.text, g.err
}

type fakeBus struct {
	published []eventbus.Event
}

func (b *fakeBus) Publish(ctx context.Context, event eventbus.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(eventType eventbus.EventType, consumer eventbus.Consumer) error {
	return nil
}

func (b *fakeBus) Start(ctx context.Context) error {
	return nil
}

func (b *fakeBus) Shutdown(ctx context.Context) error {
	return nil
}

func newTestService(repo domain.Repository, gen domain.Generator, bus eventbus.EventBus, historySize int) SupportService {
	rules, _ := LoadRoutingRules("")
	return NewSupportService(repo, gen, bus, rules, historySize, logger.NewNop())
}

func TestNewSupportService(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	assert.NotNil(t, svc)
	assert.Implements(t, (*SupportService)(nil), svc)
}

func TestRespond_EmptyQuery(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	_, err := svc.Respond(context.Background(), "   ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRespond_DemoMode(t *testing.T) {
	repo := &fakeRepo{projection: domain.AccountStatusView{
		MerchantID:       "MERCH123456",
		AccountStatus:    domain.AccountStatusHold,
		ComplianceStatus: "under_review",
		RiskScore:        "high",
	}}
	svc := newTestService(repo, nil, nil, 10)

	resp, err := svc.Respond(context.Background(), "Why is my account on hold?", "")
	require.NoError(t, err)

	assert.Equal(t, domain.TopicAccount, resp.Topic)
	assert.True(t, resp.DemoMode)
	assert.False(t, resp.EscalationNeeded)
	assert.Equal(t, 1, resp.ConversationID)
	assert.Contains(t, resp.Response, "MERCH123456")
	assert.Equal(t, repo.projection, resp.MerchantData)
	assert.Len(t, resp.Suggestions, 5)
	assert.Contains(t, resp.Suggestions, "Check account verification status in dashboard")
}

func TestRespond_EscalationKeyword(t *testing.T) {
	repo := &fakeRepo{projection: domain.PayoutInfoView{MerchantID: "MERCH123456"}}
	svc := newTestService(repo, nil, nil, 10)

	resp, err := svc.Respond(context.Background(), "This is urgent, my payout failed", "")
	require.NoError(t, err)

	assert.Equal(t, domain.TopicPayout, resp.Topic)
	assert.True(t, resp.EscalationNeeded)
}

func TestRespond_GeneratorSuccess(t *testing.T) {
	gen := &fakeGenerator{text: "Your payout is scheduled for tomorrow."}
	repo := &fakeRepo{projection: domain.PayoutInfoView{MerchantID: "MERCH123456"}}
	svc := newTestService(repo, gen, nil, 10)

	resp, err := svc.Respond(context.Background(), "Where is my payout?", "")
	require.NoError(t, err)

	assert.Equal(t, "Your payout is scheduled for tomorrow.", resp.Response)
	assert.False(t, resp.DemoMode)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.lastPrompt, "Where is my payout?")
	assert.Contains(t, gen.lastPrompt, "MERCH123456")
}

func TestRespond_GeneratorFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	repo := &fakeRepo{projection: domain.PayoutInfoView{
		MerchantID:     "MERCH123456",
		PayoutSchedule: "T+2",
	}}
	svc := newTestService(repo, gen, nil, 10)

	resp, err := svc.Respond(context.Background(), "Where is my payout?", "")
	require.NoError(t, err)

	assert.True(t, resp.DemoMode)
	assert.Contains(t, resp.Response, "T+2")
}

func TestRespond_PriorContextReachesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	svc := newTestService(&fakeRepo{projection: domain.MerchantRef{}}, gen, nil, 10)

	_, err := svc.Respond(context.Background(), "anything else?", "user asked about payouts earlier")
	require.NoError(t, err)

	assert.Contains(t, gen.lastPrompt, "user asked about payouts earlier")
}

func TestRespond_ConversationIDIncrements(t *testing.T) {
	svc := newTestService(&fakeRepo{projection: domain.MerchantRef{}}, nil, nil, 10)
	ctx := context.Background()

	first, err := svc.Respond(ctx, "hello", "")
	require.NoError(t, err)
	second, err := svc.Respond(ctx, "hello again", "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ConversationID)
	assert.Equal(t, 2, second.ConversationID)
}

func TestScenario_KnownKey(t *testing.T) {
	gen := &fakeGenerator{text: "Account hold walkthrough."}
	repo := &fakeRepo{projection: domain.AccountStatusView{MerchantID: "MERCH123456"}}
	svc := newTestService(repo, gen, nil, 10)

	resp, err := svc.Scenario(context.Background(), "account_hold", "My account is frozen")
	require.NoError(t, err)

	assert.Equal(t, "account_hold", resp.ScenarioType)
	assert.Equal(t, "Account hold walkthrough.", resp.Response)
	assert.False(t, resp.DemoMode)
	assert.Contains(t, gen.lastPrompt, "My account is frozen")
}

func TestScenario_UnknownKeyFallsBackToRespond(t *testing.T) {
	svc := newTestService(&fakeRepo{projection: domain.MerchantRef{MerchantID: "MERCH123456"}}, nil, nil, 10)

	resp, err := svc.Scenario(context.Background(), "made_up_scenario", "random question")
	require.NoError(t, err)

	assert.Empty(t, resp.ScenarioType)
	assert.Equal(t, 1, resp.ConversationID)
	assert.NotEmpty(t, resp.Response)
}

func TestScenario_EmptyQuery(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	_, err := svc.Scenario(context.Background(), "account_hold", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestScenario_DemoMode(t *testing.T) {
	repo := &fakeRepo{projection: domain.KYCStatusView{MerchantID: "MERCH123456", KYCStatus: "pending"}}
	svc := newTestService(repo, nil, nil, 10)

	resp, err := svc.Scenario(context.Background(), "kyc_compliance", "kyc verification help")
	require.NoError(t, err)

	assert.True(t, resp.DemoMode)
	assert.Equal(t, "kyc_compliance", resp.ScenarioType)
	assert.Contains(t, resp.Response, "pending")
}

func TestAnalyze_Heuristics(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	analysis, err := svc.Analyze(context.Background(), "This is urgent, my payout failed")
	require.NoError(t, err)

	assert.Equal(t, domain.TopicPayout, analysis.Category)
	assert.Equal(t, "high", analysis.Priority)
	assert.Contains(t, analysis.Analysis, "payout")
	assert.False(t, analysis.Timestamp.IsZero())
}

func TestAnalyze_MediumPriorityWithoutEscalation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	analysis, err := svc.Analyze(context.Background(), "how do I change notification preferences")
	require.NoError(t, err)

	assert.Equal(t, domain.TopicNotifications, analysis.Category)
	assert.Equal(t, "medium", analysis.Priority)
}

func TestAnalyze_UsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "Category: payout. High priority."}
	svc := newTestService(&fakeRepo{}, gen, nil, 10)

	analysis, err := svc.Analyze(context.Background(), "payout is stuck")
	require.NoError(t, err)

	assert.Equal(t, "Category: payout. High priority.", analysis.Analysis)
}

func TestAnalyze_EmptyQuery(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	_, err := svc.Analyze(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConversationSummary_NoHistory(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, 10)

	summary, err := svc.ConversationSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No conversation history available.", summary)
}

func TestConversationSummary_Fallback(t *testing.T) {
	svc := newTestService(&fakeRepo{projection: domain.MerchantRef{}}, nil, nil, 10)
	ctx := context.Background()

	_, err := svc.Respond(ctx, "why is my account on hold", "")
	require.NoError(t, err)
	_, err = svc.Respond(ctx, "payout is late", "")
	require.NoError(t, err)

	summary, err := svc.ConversationSummary(ctx)
	require.NoError(t, err)

	assert.Contains(t, summary, "Handled 2 support queries")
	assert.Contains(t, summary, "account (1)")
	assert.Contains(t, summary, "payout (1)")
}

func TestConversationSummary_UsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "Merchant asked about payouts."}
	svc := newTestService(&fakeRepo{projection: domain.MerchantRef{}}, gen, nil, 10)
	ctx := context.Background()

	_, err := svc.Respond(ctx, "payout is late", "")
	require.NoError(t, err)

	summary, err := svc.ConversationSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Merchant asked about payouts.", summary)
}

func TestConversationLogBounded(t *testing.T) {
	svc := newTestService(&fakeRepo{projection: domain.MerchantRef{}}, nil, nil, 2)
	ctx := context.Background()

	for _, q := range []string{"account question", "payout question", "kyc question"} {
		_, err := svc.Respond(ctx, q, "")
		require.NoError(t, err)
	}

	resp, err := svc.Respond(ctx, "ticket question", "")
	require.NoError(t, err)

	// The id keeps counting past the retained window.
	assert.Equal(t, 4, resp.ConversationID)

	summary, err := svc.ConversationSummary(ctx)
	require.NoError(t, err)
	assert.Contains(t, summary, "Handled 2 support queries")
	assert.NotContains(t, summary, "account")
}

func TestCreateTicket_PublishesNotification(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeRepo{ticket: domain.Ticket{TicketID: "TKT100", Subject: "Payout delayed"}}
	svc := newTestService(repo, nil, bus, 10)

	ticket, err := svc.CreateTicket(context.Background(), "Payout delayed", "missing settlement", domain.TicketPriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, "TKT100", ticket.TicketID)

	require.Len(t, bus.published, 1)
	event := bus.published[0]
	assert.Equal(t, eventbus.EventTypeNotification, event.Type)
	assert.NotEmpty(t, event.ID)

	payload, ok := event.Payload.(eventbus.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, "ticket_updates", payload.EventKind)
	assert.Contains(t, payload.Message, "TKT100")
}

func TestCreateTicket_NoNotificationOnError(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeRepo{ticketErr: domain.ErrValidation}
	svc := newTestService(repo, nil, bus, 10)

	_, err := svc.CreateTicket(context.Background(), "", "", domain.TicketPriorityLow)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, bus.published)
}

func TestUpdateTicketStatus_PublishesNotification(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeRepo{}
	svc := newTestService(repo, nil, bus, 10)

	err := svc.UpdateTicketStatus(context.Background(), "TKT100", domain.TicketStatusResolved)
	require.NoError(t, err)

	assert.Equal(t, []string{"TKT100"}, repo.updatedTickets)
	require.Len(t, bus.published, 1)

	payload, ok := bus.published[0].Payload.(eventbus.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, "ticket_updates", payload.EventKind)
	assert.Contains(t, payload.Message, "resolved")
}

func TestUpdateTicketStatus_PropagatesNotFound(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeRepo{updateErr: domain.ErrTicketNotFound}
	svc := newTestService(repo, nil, bus, 10)

	err := svc.UpdateTicketStatus(context.Background(), "TKT999", domain.TicketStatusClosed)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
	assert.Empty(t, bus.published)
}

func TestAddKYCDocument_PublishesNotification(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeRepo{kycAdded: true}
	svc := newTestService(repo, nil, bus, 10)

	added, err := svc.AddKYCDocument(context.Background(), "pan_card", "pending")
	require.NoError(t, err)
	assert.True(t, added)

	require.Len(t, bus.published, 1)
	payload, ok := bus.published[0].Payload.(eventbus.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, "kyc_updates", payload.EventKind)
	assert.Contains(t, payload.Message, "pan_card")
}

func TestAddKYCDocument_DuplicateSkipsNotification(t *testing.T) {
	bus := &fakeBus{}
	repo := &fakeRepo{kycAdded: false}
	svc := newTestService(repo, nil, bus, 10)

	added, err := svc.AddKYCDocument(context.Background(), "pan_card", "pending")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, bus.published)
}

func TestMutations_NilBus(t *testing.T) {
	repo := &fakeRepo{ticket: domain.Ticket{TicketID: "TKT100"}}
	svc := newTestService(repo, nil, nil, 10)

	_, err := svc.CreateTicket(context.Background(), "subject", "description", domain.TicketPriorityLow)
	require.NoError(t, err)
}

func TestFallbackResponse_CoversEveryProjection(t *testing.T) {
	projections := []any{
		domain.AccountStatusView{MerchantID: "MERCH123456"},
		domain.KYCStatusView{MerchantID: "MERCH123456"},
		domain.PayoutInfoView{MerchantID: "MERCH123456"},
		domain.TransactionLimitsView{MerchantID: "MERCH123456"},
		domain.TicketSummaryView{MerchantID: "MERCH123456"},
		domain.NotificationPreferencesView{MerchantID: "MERCH123456"},
		domain.DashboardInsightsView{MerchantID: "MERCH123456"},
		domain.MerchantRef{MerchantID: "MERCH123456"},
	}

	for _, projection := range projections {
		text := fallbackResponse(domain.TopicGeneral, "help", projection)
		assert.NotEmpty(t, text)
		assert.False(t, strings.Contains(text, "%!"), "template mismatch in %q", text)
	}
}
