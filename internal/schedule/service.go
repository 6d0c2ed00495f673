package schedule

import (
	"context"
	"errors"
	"strings"

	"github.com/ndt123-fs/Code-Gym/internal/metrics"
)

var (
	ErrNoItems             = errors.New("a training plan needs at least one item")
	ErrInvalidSetsReps     = errors.New("sets and reps must be positive")
	ErrTooManyTrainingDays = errors.New("plan covers more weekdays than allowed")
)

// DayCap yields the admin-configured weekly training day limit. Satisfied
// by the settings service.
type DayCap interface {
	MaxTrainingDays(ctx context.Context) int
}

type Service interface {
	Create(ctx context.Context, trainerID int, req CreatePlanRequest) (*TrainingPlan, error)
	GetByID(ctx context.Context, planID int) (*TrainingPlan, error)
	ListByMember(ctx context.Context, memberID int) ([]TrainingPlan, error)
	Update(ctx context.Context, planID int, req UpdatePlanRequest) (*TrainingPlan, error)
	DeleteItem(ctx context.Context, planID, itemID int) error
}

type service struct {
	repo   Repository
	dayCap DayCap
}

func NewService(repo Repository, dayCap DayCap) Service {
	return &service{
		repo:   repo,
		dayCap: dayCap,
	}
}

func (s *service) Create(ctx context.Context, trainerID int, req CreatePlanRequest) (*TrainingPlan, error) {
	items, err := s.validateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.Create(ctx, req.MemberID, trainerID, strings.TrimSpace(req.Notes), items)
	if err != nil {
		return nil, err
	}

	metrics.RecordTrainingPlanCreated()
	return plan, nil
}

func (s *service) GetByID(ctx context.Context, planID int) (*TrainingPlan, error) {
	return s.repo.GetByID(ctx, planID)
}

func (s *service) ListByMember(ctx context.Context, memberID int) ([]TrainingPlan, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) Update(ctx context.Context, planID int, req UpdatePlanRequest) (*TrainingPlan, error) {
	items, err := s.validateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, planID, strings.TrimSpace(req.Notes), items)
}

func (s *service) DeleteItem(ctx context.Context, planID, itemID int) error {
	return s.repo.DeleteItem(ctx, planID, itemID)
}

// validateItems normalizes the requested items and enforces the weekly
// training day cap across the whole plan.
func (s *service) validateItems(ctx context.Context, reqs []ItemRequest) ([]TrainingPlanItem, error) {
	if len(reqs) == 0 {
		return nil, ErrNoItems
	}

	distinct := map[string]bool{}
	items := make([]TrainingPlanItem, 0, len(reqs))
	for _, req := range reqs {
		if req.Sets < 1 || req.Reps < 1 {
			return nil, ErrInvalidSetsReps
		}

		weekdays, err := NormalizeWeekdays(req.Weekdays)
		if err != nil {
			return nil, err
		}
		for _, d := range SplitWeekdays(weekdays) {
			distinct[d] = true
		}

		items = append(items, TrainingPlanItem{
			ExerciseID: req.ExerciseID,
			Sets:       req.Sets,
			Reps:       req.Reps,
			Weekdays:   weekdays,
		})
	}

	if len(distinct) > s.dayCap.MaxTrainingDays(ctx) {
		return nil, ErrTooManyTrainingDays
	}
	return items, nil
}
