package plan

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidDuration = errors.New("duration must be 1, 3, 6 or 12 months")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrNameRequired    = errors.New("plan name is required")
)

type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
	ListAll(ctx context.Context) ([]Plan, error)
	Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error)
	UpdatePrice(ctx context.Context, id int, price int64) (*Plan, error)
	Deactivate(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Create(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if !IsValidDuration(req.DurationMonths) {
		return nil, ErrInvalidDuration
	}

	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	return s.repo.Create(ctx, name, req.DurationMonths, req.Price, strings.TrimSpace(req.Description))
}

func (s *service) GetByID(ctx context.Context, id int) (*Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActive(ctx context.Context) ([]Plan, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListAll(ctx context.Context) ([]Plan, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return s.repo.Update(ctx, id, name, strings.TrimSpace(req.Description))
}

// UpdatePrice changes the catalog price. Historical payments keep the price
// snapshot taken when they were recorded.
func (s *service) UpdatePrice(ctx context.Context, id int, price int64) (*Plan, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	return s.repo.UpdatePrice(ctx, id, price)
}

// Deactivate stops new registrations and renewals against the plan. Members
// already subscribed keep their current plan and subscription end untouched.
func (s *service) Deactivate(ctx context.Context, id int) error {
	return s.repo.Deactivate(ctx, id)
}
