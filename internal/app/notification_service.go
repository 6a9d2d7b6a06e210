// internal/app/notification_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"subscription_notifier/internal/domain/messaging"
	"subscription_notifier/internal/domain/reminder"

	"github.com/sirupsen/logrus"
)

// SendGuard deduplicates reminder sends across process instances. Acquire
// returns true when this instance won the (day, offset, client) slot and
// should send; false when another instance already has.
type SendGuard interface {
	Acquire(ctx context.Context, day time.Time, offset int, clientID int64) (bool, error)
}

// DeliveryFailure records one failed send within a run.
type DeliveryFailure struct {
	ClientID int64
	Phone    string
	Err      error
}

// DispatchSummary is the outcome of one reminder run. It lets callers
// distinguish "nothing was due" (Matched == 0) from "provider disabled"
// (Skipped) — a store failure never produces a summary at all.
type DispatchSummary struct {
	Matched      int
	Sent         int
	Deduplicated int
	Skipped      bool // provider unconfigured, no attempts made
	Failures     []DeliveryFailure
}

// NotificationService runs the expiration-reminder batch: evaluate which
// clients are due, then send one message per (client, offset) match.
type NotificationService struct {
	evaluator *reminder.Evaluator
	provider  messaging.Provider
	guard     SendGuard // nil means no cross-instance dedup
	offsets   reminder.Offsets
	logger    *logrus.Logger
}

func NewNotificationService(
	evaluator *reminder.Evaluator,
	provider messaging.Provider,
	guard SendGuard,
	offsets reminder.Offsets,
	logger *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		evaluator: evaluator,
		provider:  provider,
		guard:     guard,
		offsets:   offsets,
		logger:    logger,
	}
}

// RunDaily evaluates reminders for the given day and dispatches them. A
// failure delivering to one client is logged and recorded but never aborts
// the rest of the batch. The returned error is reserved for store failures;
// in that case no messages have been sent.
func (s *NotificationService) RunDaily(ctx context.Context, today time.Time) (*DispatchSummary, error) {
	matches, err := s.evaluator.Due(ctx, today, s.offsets)
	if err != nil {
		return nil, fmt.Errorf("evaluating due reminders: %w", err)
	}

	summary := &DispatchSummary{Matched: len(matches)}

	if !s.provider.Configured() {
		summary.Skipped = true
		s.logger.Warnf("Messaging provider is not configured; skipping %d reminder(s) for this run.", len(matches))
		return summary, nil
	}

	for _, m := range matches {
		if s.guard != nil {
			acquired, err := s.guard.Acquire(ctx, today, m.Offset, m.Client.ID)
			if err != nil {
				// Prefer a possible duplicate over a silently dropped reminder.
				s.logger.Errorf("Send guard failed for client %d (offset %d), sending anyway: %v", m.Client.ID, m.Offset, err)
			} else if !acquired {
				summary.Deduplicated++
				s.logger.Infof("Reminder for client %d (offset %d) already claimed by another instance.", m.Client.ID, m.Offset)
				continue
			}
		}

		body := formatReminderMessage(m.Client.Name, m.Client.Service, m.Client.ExpirationDate)
		deliveryID, err := s.provider.Send(ctx, m.Client.Phone, body)
		if err != nil {
			summary.Failures = append(summary.Failures, DeliveryFailure{
				ClientID: m.Client.ID,
				Phone:    m.Client.Phone,
				Err:      err,
			})
			s.logger.Errorf("Failed to send reminder to %s (client %d, offset %d): %v", m.Client.Phone, m.Client.ID, m.Offset, err)
			continue
		}
		summary.Sent++
		s.logger.Infof("Reminder sent to client %d (offset %d), delivery id %s.", m.Client.ID, m.Offset, deliveryID)
	}

	s.logger.Infof("Reminder run complete: %d matched, %d sent, %d deduplicated, %d failed.",
		summary.Matched, summary.Sent, summary.Deduplicated, len(summary.Failures))
	return summary, nil
}

// formatReminderMessage renders the WhatsApp reminder text. The copy is the
// product's customer-facing Haitian Creole message; the date uses the
// dd/mm/yyyy form customers are used to.
func formatReminderMessage(name, service string, expDate time.Time) string {
	return fmt.Sprintf("Bonjou %s! 🎬\nAbònman ou pou *%s* ap ekspire %s. Tanpri renouvle. Mèsi!",
		name, service, expDate.Format("02/01/2006"))
}
