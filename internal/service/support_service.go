package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/internal/eventbus"
	"github.com/merchops/support-assistant/pkg/logger"
)

const noHistoryMessage = "No conversation history available."

type SupportService interface {
	Respond(ctx context.Context, query, priorContext string) (domain.SupportResponse, error)
	Scenario(ctx context.Context, scenarioType, query string) (domain.SupportResponse, error)
	Analyze(ctx context.Context, query string) (domain.QueryAnalysis, error)
	ConversationSummary(ctx context.Context) (string, error)

	CreateTicket(ctx context.Context, subject, description string, priority domain.TicketPriority) (domain.Ticket, error)
	UpdateTicketStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error
	AddKYCDocument(ctx context.Context, documentType, status string) (bool, error)
}

type supportService struct {
	repo               domain.Repository
	generator          domain.Generator // nil means demo mode
	bus                eventbus.EventBus
	logger             *logger.Logger
	escalationKeywords []string
	history            *conversationLog
}

func NewSupportService(
	repo domain.Repository,
	gen domain.Generator,
	bus eventbus.EventBus,
	rules RoutingRules,
	historySize int,
	log *logger.Logger,
) SupportService {
	return &supportService{
		repo:               repo,
		generator:          gen,
		bus:                bus,
		logger:             log,
		escalationKeywords: rules.EscalationKeywords,
		history:            newConversationLog(historySize),
	}
}

func (s *supportService) Respond(ctx context.Context, query, priorContext string) (domain.SupportResponse, error) {
	if strings.TrimSpace(query) == "" {
		return domain.SupportResponse{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	topic := domain.ClassifyTopic(query)
	data := s.repo.ProjectionFor(ctx, topic)

	s.logger.Debug(ctx, "Query classified", "topic", topic)

	text, demo := s.generateAnswer(ctx, query, priorContext, topic, data)

	conversationID := s.history.append(domain.ConversationEntry{
		Query:     query,
		Response:  text,
		Timestamp: time.Now(),
	})

	return domain.SupportResponse{
		Response:         text,
		Suggestions:      suggestionsFor(query),
		EscalationNeeded: escalationNeeded(query, s.escalationKeywords),
		ConversationID:   conversationID,
		Topic:            topic,
		MerchantData:     data,
		DemoMode:         demo,
	}, nil
}

// generateAnswer asks the configured generator for prose, falling back to the
// deterministic template on any failure. Generator errors never propagate to
// the caller.
func (s *supportService) generateAnswer(ctx context.Context, query, priorContext string, topic domain.Topic, data any) (string, bool) {
	if s.generator == nil {
		return fallbackResponse(topic, query, data), true
	}

	contextSection := ""
	if priorContext != "" {
		contextSection = fmt.Sprintf("Previous conversation context:\n%s\n\n", priorContext)
	}
	dataSection := fmt.Sprintf("Relevant merchant data:\n%s\n\n", marshalData(data))

	prompt := fmt.Sprintf(responsePrompt, contextSection, dataSection, query)

	text, err := s.generator.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Warn(ctx, "Generator unavailable, using fallback response",
			"topic", topic,
			"error", err,
		)
		return fallbackResponse(topic, query, data), true
	}

	return text, false
}

func (s *supportService) Scenario(ctx context.Context, scenarioType, query string) (domain.SupportResponse, error) {
	if strings.TrimSpace(query) == "" {
		return domain.SupportResponse{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	template, ok := scenarioPrompts[scenarioType]
	if !ok {
		// Unrecognized scenario keys fall back to the regular respond path.
		return s.Respond(ctx, query, "")
	}

	topic := domain.ClassifyTopic(query)
	data := s.repo.ProjectionFor(ctx, topic)

	text := ""
	demo := false
	if s.generator != nil {
		generated, err := s.generator.Generate(ctx, systemPrompt, fmt.Sprintf(template, query, marshalData(data)))
		if err != nil {
			s.logger.Warn(ctx, "Generator unavailable for scenario, using fallback",
				"scenario_type", scenarioType,
				"error", err,
			)
		} else {
			text = generated
		}
	}
	if text == "" {
		text = fallbackResponse(topic, query, data)
		demo = true
	}

	return domain.SupportResponse{
		Response:         text,
		Suggestions:      suggestionsFor(query),
		EscalationNeeded: escalationNeeded(query, s.escalationKeywords),
		Topic:            topic,
		MerchantData:     data,
		DemoMode:         demo,
		ScenarioType:     scenarioType,
	}, nil
}

func (s *supportService) Analyze(ctx context.Context, query string) (domain.QueryAnalysis, error) {
	if strings.TrimSpace(query) == "" {
		return domain.QueryAnalysis{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	topic := domain.ClassifyTopic(query)
	escalate := escalationNeeded(query, s.escalationKeywords)

	priority := "medium"
	if escalate {
		priority = "high"
	}

	analysis := ""
	if s.generator != nil {
		text, err := s.generator.Generate(ctx, systemPrompt, fmt.Sprintf(analysisPrompt, query))
		if err != nil {
			s.logger.Warn(ctx, "Generator unavailable for analysis, using heuristics",
				"error", err,
			)
		} else {
			analysis = text
		}
	}
	if analysis == "" {
		analysis = fmt.Sprintf("Category: %s. Priority: %s. Escalation recommended: %t.", topic, priority, escalate)
	}

	return domain.QueryAnalysis{
		Query:     query,
		Category:  topic,
		Priority:  priority,
		Analysis:  analysis,
		Timestamp: time.Now(),
	}, nil
}

func (s *supportService) ConversationSummary(ctx context.Context) (string, error) {
	entries := s.history.snapshot()
	if len(entries) == 0 {
		return noHistoryMessage, nil
	}

	if s.generator != nil {
		text, err := s.generator.Generate(ctx, summarySystemPrompt, fmt.Sprintf(summaryPrompt, marshalData(entries)))
		if err == nil {
			return text, nil
		}
		s.logger.Warn(ctx, "Generator unavailable for summary, using fallback",
			"error", err,
		)
	}

	return fallbackSummary(entries), nil
}

func (s *supportService) CreateTicket(ctx context.Context, subject, description string, priority domain.TicketPriority) (domain.Ticket, error) {
	ticket, err := s.repo.CreateTicket(ctx, subject, description, priority)
	if err != nil {
		return domain.Ticket{}, err
	}

	s.publishNotification(ctx, "ticket_updates",
		fmt.Sprintf("Ticket %s created: %s", ticket.TicketID, ticket.Subject))

	return ticket, nil
}

func (s *supportService) UpdateTicketStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	if err := s.repo.UpdateTicketStatus(ctx, ticketID, status); err != nil {
		return err
	}

	s.publishNotification(ctx, "ticket_updates",
		fmt.Sprintf("Ticket %s status updated to %s", ticketID, status))

	return nil
}

func (s *supportService) AddKYCDocument(ctx context.Context, documentType, status string) (bool, error) {
	added, err := s.repo.AddKYCDocument(ctx, documentType, status)
	if err != nil || !added {
		return added, err
	}

	s.publishNotification(ctx, "kyc_updates",
		fmt.Sprintf("Document uploaded: %s", documentType))

	return true, nil
}

func (s *supportService) publishNotification(ctx context.Context, eventKind, message string) {
	if s.bus == nil {
		return
	}

	event := eventbus.Event{
		ID:   uuid.New().String(),
		Type: eventbus.EventTypeNotification,
		Payload: eventbus.NotificationEvent{
			EventKind: eventKind,
			Message:   message,
		},
		Timestamp: time.Now(),
	}

	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish notification event",
			"event_kind", eventKind,
			"error", err,
		)
	}
}

func marshalData(data any) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// conversationLog is a bounded ring of past exchanges. The id assigned to an
// entry counts every exchange in the process lifetime, not just the retained
// window.
type conversationLog struct {
	mu      sync.Mutex
	entries []domain.ConversationEntry
	size    int
	total   int
}

func newConversationLog(size int) *conversationLog {
	if size < 1 {
		size = 1
	}
	return &conversationLog{size: size}
}

func (c *conversationLog) append(entry domain.ConversationEntry) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entry)
	if len(c.entries) > c.size {
		c.entries = c.entries[1:]
	}
	c.total++
	return c.total
}

func (c *conversationLog) snapshot() []domain.ConversationEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]domain.ConversationEntry(nil), c.entries...)
}
