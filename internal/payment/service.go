package payment

import (
	"context"
	"time"

	"github.com/ndt123-fs/Code-Gym/internal/logger"
	"github.com/ndt123-fs/Code-Gym/internal/metrics"
)

// Notifier queues the renewal receipt mail. Delivery is best-effort; a
// failure never fails the payment.
type Notifier interface {
	SendRenewalReceipt(ctx context.Context, to, name, planName string, amount int64, validUntil time.Time) error
}

type Service interface {
	RecordPlanPayment(ctx context.Context, memberID, planID int) (*RenewalResult, error)
	RecordAdjustment(ctx context.Context, memberID int, amount int64, note string) (*Payment, error)
	History(ctx context.Context, memberID int) ([]PaymentWithPlan, error)
	HistoryFiltered(ctx context.Context, filter HistoryFilter) ([]PaymentWithPlan, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *service) RecordPlanPayment(ctx context.Context, memberID, planID int) (*RenewalResult, error) {
	result, err := s.repo.RecordPlanPayment(ctx, memberID, planID)
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(string(KindPlanPayment), result.Payment.Amount)
	metrics.RecordRenewal()

	if s.notifier != nil {
		if err := s.notifier.SendRenewalReceipt(
			ctx,
			result.MemberEmail,
			result.MemberName,
			result.PlanName,
			result.Payment.Amount,
			result.SubscriptionEnd,
		); err != nil {
			logger.Warnf("Renewal receipt for member %d not queued: %v", memberID, err)
		}
	}

	return result, nil
}

func (s *service) RecordAdjustment(ctx context.Context, memberID int, amount int64, note string) (*Payment, error) {
	p, err := s.repo.RecordAdjustment(ctx, memberID, amount, note)
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(string(KindAdjustment), p.Amount)
	logger.Infof("Adjustment of %d recorded for member %d: %s", amount, memberID, note)

	return p, nil
}

func (s *service) History(ctx context.Context, memberID int) ([]PaymentWithPlan, error) {
	return s.repo.History(ctx, memberID)
}

func (s *service) HistoryFiltered(ctx context.Context, filter HistoryFilter) ([]PaymentWithPlan, error) {
	return s.repo.HistoryFiltered(ctx, filter)
}
