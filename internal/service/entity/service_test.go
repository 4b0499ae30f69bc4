package entity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
)

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) Create(ctx context.Context, req *model.CreateContactGroupRequest) (*model.ContactGroup, error) {
	args := m.Called(ctx, req)
	group, _ := args.Get(0).(*model.ContactGroup)
	return group, args.Error(1)
}

func (m *mockGroupRepo) Get(ctx context.Context, id string) (*model.ContactGroup, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*model.ContactGroup)
	return group, args.Error(1)
}

func (m *mockGroupRepo) List(ctx context.Context, skip, limit int) ([]model.ContactGroup, error) {
	args := m.Called(ctx, skip, limit)
	groups, _ := args.Get(0).([]model.ContactGroup)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockGroupRepo) Search(ctx context.Context, f *model.ContactGroupFilter, skip, limit int) ([]model.ContactGroup, error) {
	args := m.Called(ctx, f, skip, limit)
	groups, _ := args.Get(0).([]model.ContactGroup)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) SearchCount(ctx context.Context, f *model.ContactGroupFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, id string, req *model.UpdateContactGroupRequest) (*model.ContactGroup, error) {
	args := m.Called(ctx, id, req)
	group, _ := args.Get(0).(*model.ContactGroup)
	return group, args.Error(1)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type recordedEvent struct {
	resource, action string
}

type fakeEmitter struct {
	events []recordedEvent
}

func (f *fakeEmitter) Emit(_ context.Context, resource, action string, _ interface{}) {
	f.events = append(f.events, recordedEvent{resource, action})
}

type groupService = Service[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter]

func newGroupService(repo *mockGroupRepo, events event.Emitter) *groupService {
	return NewService[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter](repo, "contact_group", events)
}

func TestCreateAppliesDefaultsAndEmits(t *testing.T) {
	repo := new(mockGroupRepo)
	events := &fakeEmitter{}
	svc := newGroupService(repo, events)

	req := &model.CreateContactGroupRequest{ID: "grp-1", Name: "Ops"}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.CreateContactGroupRequest) bool {
		return r.IsActive != nil && *r.IsActive && r.EmergencyLevel != nil && *r.EmergencyLevel == "medium"
	})).Return(&model.ContactGroup{ID: "grp-1", Name: "Ops", IsActive: true, EmergencyLevel: "medium"}, nil)

	group, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "grp-1", group.ID)
	assert.Equal(t, []recordedEvent{{"contact_group", "created"}}, events.events)
	repo.AssertExpectations(t)
}

func TestCreateRejectedDataIsValidationError(t *testing.T) {
	repo := new(mockGroupRepo)
	events := &fakeEmitter{}
	svc := newGroupService(repo, events)

	storeErr := fmt.Errorf("failed to create contact_groups: %w: %w", repository.ErrInvalidData, errors.New("not-null violation"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, storeErr)

	_, err := svc.Create(context.Background(), &model.CreateContactGroupRequest{ID: "grp-1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "not-null violation")
	assert.Empty(t, events.events)
}

func TestGetMissingIsNotFound(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := newGroupService(repo, nil)

	repo.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Contact group not found", err.Error())
}

func TestGetStoreFailureIsInternal(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := newGroupService(repo, nil)

	repo.On("Get", mock.Anything, "grp-1").Return(nil, errors.New("connection reset"))

	_, err := svc.Get(context.Background(), "grp-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
}

func TestListNormalizesPage(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := newGroupService(repo, nil)

	repo.On("List", mock.Anything, 0, 100).Return([]model.ContactGroup{{ID: "grp-1"}}, nil)
	repo.On("Count", mock.Anything).Return(101, nil)

	page, err := svc.List(context.Background(), model.PageRequest{Page: 0, PerPage: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PerPage)
	assert.Equal(t, 101, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestSearchPassesSameFilterToCount(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := newGroupService(repo, nil)

	filter := &model.ContactGroupFilter{Query: "ops"}
	repo.On("Search", mock.Anything, filter, 10, 10).Return([]model.ContactGroup{}, nil)
	repo.On("SearchCount", mock.Anything, filter).Return(10, nil)

	page, err := svc.Search(context.Background(), filter, model.PageRequest{Page: 2, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
	assert.NotNil(t, page.Items)
	repo.AssertExpectations(t)
}

func TestSearchNilFilter(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := newGroupService(repo, nil)

	repo.On("Search", mock.Anything, &model.ContactGroupFilter{}, 0, 10).Return([]model.ContactGroup{}, nil)
	repo.On("SearchCount", mock.Anything, &model.ContactGroupFilter{}).Return(0, nil)

	page, err := svc.Search(context.Background(), nil, model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
}

func TestUpdateValidatesBeforeStore(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := newGroupService(repo, nil)

	_, err := svc.Update(context.Background(), "grp-1", &model.UpdateContactGroupRequest{EmergencyLevel: model.Some("urgent")})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	repo := new(mockGroupRepo)
	events := &fakeEmitter{}
	svc := newGroupService(repo, events)

	repo.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, nil)

	_, err := svc.Update(context.Background(), "missing", &model.UpdateContactGroupRequest{})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, events.events)
}

func TestDelete(t *testing.T) {
	repo := new(mockGroupRepo)
	events := &fakeEmitter{}
	svc := newGroupService(repo, events)

	repo.On("Delete", mock.Anything, "grp-1").Return(true, nil).Once()
	repo.On("Delete", mock.Anything, "grp-1").Return(false, nil).Once()

	require.NoError(t, svc.Delete(context.Background(), "grp-1"))
	err := svc.Delete(context.Background(), "grp-1")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, []recordedEvent{{"contact_group", "deleted"}}, events.events)
}
