package settings

import (
	"context"
	"errors"
	"strconv"

	"github.com/ndt123-fs/Code-Gym/internal/logger"
)

var ErrInvalidMaxTrainingDays = errors.New("max training days must be between 1 and 7")

type Service interface {
	MaxTrainingDays(ctx context.Context) int
	SetMaxTrainingDays(ctx context.Context, days int) error
	List(ctx context.Context) ([]Setting, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// MaxTrainingDays never fails: a missing or unreadable setting falls back
// to the default so plan creation keeps working.
func (s *service) MaxTrainingDays(ctx context.Context) int {
	raw, err := s.repo.Get(ctx, KeyMaxTrainingDays)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			logger.Warnf("Reading %s failed, using default %d: %v", KeyMaxTrainingDays, DefaultMaxTrainingDays, err)
		}
		return DefaultMaxTrainingDays
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 7 {
		logger.Warnf("Stored %s value %q is invalid, using default %d", KeyMaxTrainingDays, raw, DefaultMaxTrainingDays)
		return DefaultMaxTrainingDays
	}
	return days
}

func (s *service) SetMaxTrainingDays(ctx context.Context, days int) error {
	if days < 1 || days > 7 {
		return ErrInvalidMaxTrainingDays
	}
	return s.repo.Set(ctx, KeyMaxTrainingDays, strconv.Itoa(days))
}

func (s *service) List(ctx context.Context) ([]Setting, error) {
	return s.repo.List(ctx)
}
