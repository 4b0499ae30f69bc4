package emailevent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
)

type mockEmailEventRepo struct {
	mock.Mock
	repository.EmailEventRepository
}

func (m *mockEmailEventRepo) ListByStatus(ctx context.Context, status string) ([]model.EmailEvent, error) {
	args := m.Called(ctx, status)
	events, _ := args.Get(0).([]model.EmailEvent)
	return events, args.Error(1)
}

func (m *mockEmailEventRepo) ListByTrigger(ctx context.Context, triggerMatched string) ([]model.EmailEvent, error) {
	args := m.Called(ctx, triggerMatched)
	events, _ := args.Get(0).([]model.EmailEvent)
	return events, args.Error(1)
}

func TestListByStatus(t *testing.T) {
	repo := new(mockEmailEventRepo)
	svc := NewService(repo, nil)

	repo.On("ListByStatus", mock.Anything, model.EmailStatusPending).Return([]model.EmailEvent{
		{ID: "evt-2", Status: model.EmailStatusPending},
		{ID: "evt-1", Status: model.EmailStatusPending},
	}, nil)

	events, err := svc.ListByStatus(context.Background(), model.EmailStatusPending)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	repo.AssertExpectations(t)
}

func TestListByTriggerUnknownIsEmpty(t *testing.T) {
	repo := new(mockEmailEventRepo)
	svc := NewService(repo, nil)

	repo.On("ListByTrigger", mock.Anything, "nothing-matches").Return([]model.EmailEvent{}, nil)

	events, err := svc.ListByTrigger(context.Background(), "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, events)
}
