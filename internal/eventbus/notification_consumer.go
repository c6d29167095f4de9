package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/pkg/logger"
)

// NotificationConsumer fans a notification event out to every channel whose
// preferences enable the event kind, recording one delivery per channel in the
// notification history.
type NotificationConsumer struct {
	repo        domain.Repository
	logger      *logger.Logger
	workerCount int
}

func NewNotificationConsumer(repo domain.Repository, log *logger.Logger, workerCount int) *NotificationConsumer {
	return &NotificationConsumer{
		repo:        repo,
		logger:      log,
		workerCount: workerCount,
	}
}

func (nc *NotificationConsumer) Consume(ctx context.Context, event Event) error {
	processed, err := nc.repo.IsEventProcessed(ctx, event.ID)
	if err != nil {
		nc.logger.Error(ctx, "Failed to check event processed status",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	if processed {
		nc.logger.Debug(ctx, "Event already processed, skipping",
			"event_id", event.ID,
		)
		return nil
	}

	payload, ok := event.Payload.(NotificationEvent)
	if !ok {
		nc.logger.Error(ctx, "Invalid payload type for notification event",
			"event_id", event.ID,
		)
		return fmt.Errorf("invalid payload type")
	}

	prefs := nc.repo.NotificationPreferences(ctx)
	channels := map[domain.NotificationChannel]map[string]bool{
		domain.ChannelEmail:    prefs.EmailNotifications,
		domain.ChannelWhatsapp: prefs.WhatsappNotifications,
		domain.ChannelSMS:      prefs.SMSNotifications,
	}

	delivered := 0
	for channel, flags := range channels {
		if !flags[payload.EventKind] {
			continue
		}

		record := domain.NotificationRecord{
			ID:      fmt.Sprintf("%s-%s", event.ID, channel),
			Channel: channel,
			Event:   payload.EventKind,
			Message: payload.Message,
			SentAt:  time.Now(),
		}

		if err := nc.repo.AppendNotification(ctx, record); err != nil {
			nc.logger.Error(ctx, "Failed to append notification record",
				"event_id", event.ID,
				"channel", channel,
				"error", err,
			)
			return err
		}
		delivered++
	}

	if err := nc.repo.MarkEventProcessed(ctx, event.ID); err != nil {
		nc.logger.Error(ctx, "Failed to mark event as processed",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	nc.logger.Debug(ctx, "Notification event processed",
		"event_id", event.ID,
		"event_kind", payload.EventKind,
		"deliveries", delivered,
	)

	return nil
}

func (nc *NotificationConsumer) GetWorkerCount() int {
	return nc.workerCount
}
