package trigger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	triggerService "github.com/jwalitptl/mailtocall-api/internal/service/trigger"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockTriggerService struct {
	mock.Mock
	triggerService.TriggerServicer
}

func (m *MockTriggerService) Get(ctx context.Context, id string) (*model.Trigger, error) {
	args := m.Called(ctx, id)
	trigger, _ := args.Get(0).(*model.Trigger)
	return trigger, args.Error(1)
}

func (m *MockTriggerService) GetByTriggerString(ctx context.Context, triggerString string) (*model.Trigger, error) {
	args := m.Called(ctx, triggerString)
	trigger, _ := args.Get(0).(*model.Trigger)
	return trigger, args.Error(1)
}

func serve(svc *MockTriggerService, target string) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetByTriggerString(t *testing.T) {
	svc := new(MockTriggerService)
	svc.On("GetByTriggerString", mock.Anything, "SERVER DOWN").
		Return(&model.Trigger{ID: "t-1", TriggerString: "SERVER DOWN", IsActive: true}, nil)

	w := serve(svc, "/api/v1/triggers/by-string/SERVER%20DOWN")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"trigger_string":"SERVER DOWN"`)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetByTriggerString_NotFound(t *testing.T) {
	svc := new(MockTriggerService)
	svc.On("GetByTriggerString", mock.Anything, "server down").Return(nil, apperrors.NotFound("Trigger"))

	w := serve(svc, "/api/v1/triggers/by-string/server%20down")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Trigger not found"}`, w.Body.String())
}

func TestGetByID(t *testing.T) {
	svc := new(MockTriggerService)
	svc.On("Get", mock.Anything, "t-1").Return(&model.Trigger{ID: "t-1"}, nil)

	w := serve(svc, "/api/v1/triggers/t-1")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
