package calllog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	callLogService "github.com/jwalitptl/mailtocall-api/internal/service/calllog"
	"github.com/jwalitptl/mailtocall-api/internal/service/export"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockCallLogService struct {
	mock.Mock
	callLogService.CallLogServicer
}

func (m *MockCallLogService) Get(ctx context.Context, id int64) (*model.CallLog, error) {
	args := m.Called(ctx, id)
	log, _ := args.Get(0).(*model.CallLog)
	return log, args.Error(1)
}

func (m *MockCallLogService) ListByEmailEvent(ctx context.Context, emailEventID string) ([]model.CallLog, error) {
	args := m.Called(ctx, emailEventID)
	logs, _ := args.Get(0).([]model.CallLog)
	return logs, args.Error(1)
}

func (m *MockCallLogService) ListByContact(ctx context.Context, contactID string) ([]model.CallLog, error) {
	args := m.Called(ctx, contactID)
	logs, _ := args.Get(0).([]model.CallLog)
	return logs, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportCallLogs(ctx context.Context, req model.ExportRequest, format string) (*export.File, error) {
	args := m.Called(ctx, req, format)
	file, _ := args.Get(0).(*export.File)
	return file, args.Error(1)
}

func newEngine(svc *MockCallLogService, exporter *MockExportService) *gin.Engine {
	r := gin.New()
	NewHandler(svc, exporter).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_GetParsesIntegerID(t *testing.T) {
	svc := new(MockCallLogService)
	svc.On("Get", mock.Anything, int64(42)).Return(&model.CallLog{ID: 42, AttemptNumber: 1}, nil)

	r := newEngine(svc, new(MockExportService))

	w := get(r, "/api/v1/call-logs/42")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/api/v1/call-logs/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id must be an integer")
	svc.AssertNumberOfCalls(t, "Get", 1)
}

func TestHandler_ListByEmailEvent(t *testing.T) {
	svc := new(MockCallLogService)
	svc.On("ListByEmailEvent", mock.Anything, "ev-1").Return([]model.CallLog{{ID: 1, AttemptNumber: 1}, {ID: 2, AttemptNumber: 2}}, nil)
	svc.On("ListByContact", mock.Anything, "c-none").Return([]model.CallLog{}, nil)

	r := newEngine(svc, new(MockExportService))

	w := get(r, "/api/v1/call-logs/by-email-event/ev-1")
	assert.Equal(t, http.StatusOK, w.Code)
	var logs []model.CallLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	assert.Len(t, logs, 2)

	w = get(r, "/api/v1/call-logs/by-contact/c-none")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestHandler_ExportCSV(t *testing.T) {
	exporter := new(MockExportService)
	req := model.ExportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}
	exporter.On("ExportCallLogs", mock.Anything, req, export.FormatCSV).Return(&export.File{
		Name:        "call_logs_export_20240203_040506.csv",
		ContentType: "text/csv",
		Data:        []byte("ID\n1\n"),
		Rows:        1,
	}, nil)

	w := get(newEngine(new(MockCallLogService), exporter), "/api/v1/call-logs/export/csv?start_date=2024-01-01&end_date=2024-01-31")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=call_logs_export_20240203_040506.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n1\n", w.Body.String())
}

func TestHandler_ExportExcelUsesXLSX(t *testing.T) {
	exporter := new(MockExportService)
	exporter.On("ExportCallLogs", mock.Anything, model.ExportRequest{}, export.FormatXLSX).Return(&export.File{
		Name:        "call_logs_export_20240203_040506.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}, nil)

	w := get(newEngine(new(MockCallLogService), exporter), "/api/v1/call-logs/export/excel")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	exporter.AssertExpectations(t)
}

func TestHandler_ExportErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad date", apperrors.Validation("invalid start_date, expected YYYY-MM-DD", nil), http.StatusBadRequest},
		{"empty", apperrors.NotFound("Call logs for export"), http.StatusNotFound},
		{"store", apperrors.Internal("failed to load call logs for export", errors.New("connection reset")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := new(MockExportService)
			exporter.On("ExportCallLogs", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := get(newEngine(new(MockCallLogService), exporter), "/api/v1/call-logs/export/csv")

			assert.Equal(t, tt.status, w.Code)
			assert.Empty(t, w.Header().Get("Content-Disposition"))
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}
