package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSettingsRepo struct{ mock.Mock }

func (m *MockSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingsRepo) List(ctx context.Context) ([]Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Setting), args.Error(1)
}

func TestMaxTrainingDays(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		err    error
		want   int
	}{
		{name: "stored value", stored: "5", want: 5},
		{name: "missing falls back to default", err: ErrSettingNotFound, want: DefaultMaxTrainingDays},
		{name: "repo error falls back to default", err: errors.New("db down"), want: DefaultMaxTrainingDays},
		{name: "garbage falls back to default", stored: "every day", want: DefaultMaxTrainingDays},
		{name: "out of range falls back to default", stored: "9", want: DefaultMaxTrainingDays},
		{name: "zero falls back to default", stored: "0", want: DefaultMaxTrainingDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepo)
			repo.On("Get", mock.Anything, KeyMaxTrainingDays).Return(tt.stored, tt.err)

			svc := NewService(repo)
			assert.Equal(t, tt.want, svc.MaxTrainingDays(context.Background()))
		})
	}
}

func TestSetMaxTrainingDays(t *testing.T) {
	repo := new(MockSettingsRepo)
	repo.On("Set", mock.Anything, KeyMaxTrainingDays, "4").Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.SetMaxTrainingDays(context.Background(), 4))
	repo.AssertExpectations(t)
}

func TestSetMaxTrainingDays_OutOfRange(t *testing.T) {
	repo := new(MockSettingsRepo)
	svc := NewService(repo)

	assert.ErrorIs(t, svc.SetMaxTrainingDays(context.Background(), 0), ErrInvalidMaxTrainingDays)
	assert.ErrorIs(t, svc.SetMaxTrainingDays(context.Background(), 8), ErrInvalidMaxTrainingDays)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}
