package member

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ndt123-fs/Code-Gym/internal/logger"
	"github.com/ndt123-fs/Code-Gym/internal/metrics"
	"github.com/ndt123-fs/Code-Gym/internal/payment"
)

var (
	ErrInvalidPhone     = errors.New("phone must be 9 to 11 digits")
	ErrInvalidBirthYear = errors.New("birth year is out of range")
	ErrInvalidChannel   = errors.New("unknown registration channel")
)

// Notifier queues the registration confirmation mail. Best effort, a
// failure is logged and the registration stands.
type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, to, name, planName string, amount int64, validUntil time.Time) error
}

// Renewer is the payment ledger entry point. Renewal goes through the
// ledger so an extension without a payment cannot happen.
type Renewer interface {
	RecordPlanPayment(ctx context.Context, memberID, planID int) (*payment.RenewalResult, error)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest, channel Channel) (*RegistrationResult, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	AssignTrainer(ctx context.Context, memberID, trainerID int) (*Member, error)
	Renew(ctx context.Context, memberID, planID int) (*payment.RenewalResult, error)
	Deactivate(ctx context.Context, memberID int) error
}

type service struct {
	repo     Repository
	renewer  Renewer
	notifier Notifier
}

func NewService(repo Repository, renewer Renewer, notifier Notifier) Service {
	return &service{
		repo:     repo,
		renewer:  renewer,
		notifier: notifier,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest, channel Channel) (*RegistrationResult, error) {
	if channel != ChannelOnline && channel != ChannelFrontDesk {
		return nil, ErrInvalidChannel
	}
	if !validPhone(req.Phone) {
		return nil, ErrInvalidPhone
	}
	if req.BirthYear < 1900 || req.BirthYear > time.Now().Year() {
		return nil, ErrInvalidBirthYear
	}

	m := &Member{
		FullName:  strings.TrimSpace(req.FullName),
		Gender:    strings.TrimSpace(req.Gender),
		BirthYear: req.BirthYear,
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Channel:   channel,
	}

	result, err := s.repo.Register(ctx, m, req.PlanID)
	if err != nil {
		return nil, err
	}

	metrics.RecordRegistration(string(channel))
	logger.Infof("Member %d registered via %s on plan %q", result.Member.ID, channel, result.PlanName)

	if s.notifier != nil {
		if err := s.notifier.SendRegistrationConfirmation(
			ctx,
			result.Member.Email,
			result.Member.FullName,
			result.PlanName,
			result.Amount,
			result.Member.SubscriptionEnd,
		); err != nil {
			logger.Warnf("Confirmation mail for member %d not queued: %v", result.Member.ID, err)
		}
	}

	return result, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

func (s *service) AssignTrainer(ctx context.Context, memberID, trainerID int) (*Member, error) {
	return s.repo.AssignTrainer(ctx, memberID, trainerID)
}

func (s *service) Renew(ctx context.Context, memberID, planID int) (*payment.RenewalResult, error) {
	return s.renewer.RecordPlanPayment(ctx, memberID, planID)
}

func (s *service) Deactivate(ctx context.Context, memberID int) error {
	if err := s.repo.Deactivate(ctx, memberID); err != nil {
		return err
	}
	logger.Infof("Member %d deactivated", memberID)
	return nil
}

func validPhone(phone string) bool {
	if len(phone) < 9 || len(phone) > 11 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
