package report

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidYear  = errors.New("year is out of range")
)

type Service interface {
	ActiveMemberCount(ctx context.Context, asOf time.Time) (*ActiveCount, error)
	MonthlyRevenue(ctx context.Context, year, month int) (*MonthRevenue, error)
	RevenueByMonth(ctx context.Context, year int) (*YearRevenue, error)
	ActiveByPlan(ctx context.Context) ([]PlanCount, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ActiveMemberCount(ctx context.Context, asOf time.Time) (*ActiveCount, error) {
	count, err := s.repo.ActiveMemberCount(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return &ActiveCount{
		AsOf:  asOf.Format("2006-01-02"),
		Count: count,
	}, nil
}

func (s *service) MonthlyRevenue(ctx context.Context, year, month int) (*MonthRevenue, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if year < 2000 || year > 9999 {
		return nil, ErrInvalidYear
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	total, err := s.repo.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &MonthRevenue{Month: month, Total: total}, nil
}

// RevenueByMonth always yields twelve entries; months without payments
// report zero.
func (s *service) RevenueByMonth(ctx context.Context, year int) (*YearRevenue, error) {
	if year < 2000 || year > 9999 {
		return nil, ErrInvalidYear
	}

	raw, err := s.repo.RevenueByMonth(ctx, year)
	if err != nil {
		return nil, err
	}

	result := &YearRevenue{Year: year, Months: make([]MonthRevenue, 12)}
	for i := range result.Months {
		result.Months[i].Month = i + 1
	}
	for _, m := range raw {
		if m.Month >= 1 && m.Month <= 12 {
			result.Months[m.Month-1].Total = m.Total
			result.Total += m.Total
		}
	}
	return result, nil
}

func (s *service) ActiveByPlan(ctx context.Context) ([]PlanCount, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.ActiveByPlan(ctx, today)
}
