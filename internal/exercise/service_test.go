package exercise

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockExerciseRepo struct{ mock.Mock }

func (m *MockExerciseRepo) Create(ctx context.Context, name, bodyPart, description string) (*Exercise, error) {
	args := m.Called(ctx, name, bodyPart, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Exercise), args.Error(1)
}

func (m *MockExerciseRepo) GetByID(ctx context.Context, id int) (*Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Exercise), args.Error(1)
}

func (m *MockExerciseRepo) List(ctx context.Context) ([]Exercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Exercise), args.Error(1)
}

func (m *MockExerciseRepo) Update(ctx context.Context, id int, name, bodyPart, description string) (*Exercise, error) {
	args := m.Called(ctx, id, name, bodyPart, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Exercise), args.Error(1)
}

func (m *MockExerciseRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExerciseRepo) InUse(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCreateExercise_TrimsName(t *testing.T) {
	repo := new(MockExerciseRepo)
	repo.On("Create", mock.Anything, "Deadlift", "back", "barbell").
		Return(&Exercise{ID: 1, Name: "Deadlift"}, nil)

	svc := NewService(repo)
	e, err := svc.Create(context.Background(), CreateExerciseRequest{Name: "  Deadlift ", BodyPart: " back", Description: " barbell "})
	assert.NoError(t, err)
	assert.Equal(t, "Deadlift", e.Name)
}

func TestCreateExercise_BlankName(t *testing.T) {
	repo := new(MockExerciseRepo)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateExerciseRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteExercise_BlockedWhileReferenced(t *testing.T) {
	repo := new(MockExerciseRepo)
	repo.On("InUse", mock.Anything, 3).Return(true, nil)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrExerciseInUse)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteExercise_Unreferenced(t *testing.T) {
	repo := new(MockExerciseRepo)
	repo.On("InUse", mock.Anything, 3).Return(false, nil)
	repo.On("Delete", mock.Anything, 3).Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), 3))
	repo.AssertExpectations(t)
}
