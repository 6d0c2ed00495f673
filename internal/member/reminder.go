package member

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/logger"
)

// ReminderNotifier queues the expiry reminder mail.
type ReminderNotifier interface {
	SendExpiryReminder(ctx context.Context, to, name string, validUntil time.Time) error
}

// ReminderWorker sends one reminder per member, on the day the
// subscription has exactly reminderLeadDays left. Running the sweep once
// a day keeps that property without tracking sent state.
type ReminderWorker struct {
	repo     Repository
	notifier ReminderNotifier
	interval time.Duration
}

const reminderLeadDays = 7

func NewReminderWorker(db *sqlx.DB, notifier ReminderNotifier) *ReminderWorker {
	return &ReminderWorker{
		repo:     NewRepository(db),
		notifier: notifier,
		interval: 24 * time.Hour,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	logger.Info("Expiry reminder worker started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry reminder worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ReminderWorker) sweep(ctx context.Context) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, reminderLeadDays)
	to := from.AddDate(0, 0, 1)

	members, err := w.repo.ListExpiring(ctx, from, to)
	if err != nil {
		logger.Errorf("Expiry sweep failed: %v", err)
		return
	}
	if len(members) == 0 {
		return
	}

	sent := 0
	for _, m := range members {
		if err := w.notifier.SendExpiryReminder(ctx, m.Email, m.FullName, m.SubscriptionEnd); err != nil {
			logger.Warnf("Failed to queue expiry reminder for member %d: %v", m.ID, err)
			continue
		}
		sent++
	}

	logger.Infof("Expiry sweep: %d member(s) expiring on %s, %d reminder(s) queued",
		len(members), from.Format("2006-01-02"), sent)
}
