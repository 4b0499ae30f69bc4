package emailevent

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/entity"
	"github.com/jwalitptl/mailtocall-api/internal/model"
	eventService "github.com/jwalitptl/mailtocall-api/internal/service/emailevent"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
)

type Handler struct {
	*entity.Handler[model.EmailEvent, string, model.CreateEmailEventRequest, model.UpdateEmailEventRequest, model.EmailEventFilter]
	service eventService.EmailEventServicer
}

func NewHandler(service eventService.EmailEventServicer) *Handler {
	return &Handler{
		Handler: entity.NewHandler[model.EmailEvent, string, model.CreateEmailEventRequest, model.UpdateEmailEventRequest, model.EmailEventFilter](service, entity.StringID),
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/email-events")
	h.Handler.RegisterRoutes(events)
	events.GET("/by-status/:status", h.ListByStatus)
	events.GET("/by-trigger/:trigger_matched", h.ListByTrigger)
}

func (h *Handler) ListByStatus(c *gin.Context) {
	events, err := h.service.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) ListByTrigger(c *gin.Context) {
	events, err := h.service.ListByTrigger(c.Request.Context(), c.Param("trigger_matched"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
