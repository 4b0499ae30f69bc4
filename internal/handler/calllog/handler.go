package calllog

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/entity"
	"github.com/jwalitptl/mailtocall-api/internal/model"
	callLogService "github.com/jwalitptl/mailtocall-api/internal/service/calllog"
	"github.com/jwalitptl/mailtocall-api/internal/service/export"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
)

type Handler struct {
	*entity.Handler[model.CallLog, int64, model.CreateCallLogRequest, model.UpdateCallLogRequest, model.CallLogFilter]
	service  callLogService.CallLogServicer
	exporter export.ExportServicer
}

func NewHandler(service callLogService.CallLogServicer, exporter export.ExportServicer) *Handler {
	return &Handler{
		Handler:  entity.NewHandler[model.CallLog, int64, model.CreateCallLogRequest, model.UpdateCallLogRequest, model.CallLogFilter](service, entity.Int64ID),
		service:  service,
		exporter: exporter,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/call-logs")
	h.Handler.RegisterRoutes(logs)
	logs.GET("/by-email-event/:email_event_id", h.ListByEmailEvent)
	logs.GET("/by-contact/:contact_id", h.ListByContact)
	logs.GET("/export/csv", h.export(export.FormatCSV))
	logs.GET("/export/excel", h.export(export.FormatXLSX))
}

// ListByEmailEvent returns every call attempt made for an email event.
func (h *Handler) ListByEmailEvent(c *gin.Context) {
	logs, err := h.service.ListByEmailEvent(c.Request.Context(), c.Param("email_event_id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) ListByContact(c *gin.Context) {
	logs, err := h.service.ListByContact(c.Request.Context(), c.Param("contact_id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) export(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.ExportRequest
		if !entity.BindQuery(c, &req) {
			return
		}

		file, err := h.exporter.ExportCallLogs(c.Request.Context(), req, format)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Name))
		c.Data(http.StatusOK, file.ContentType, file.Data)
	}
}
