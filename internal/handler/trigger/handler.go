package trigger

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/entity"
	"github.com/jwalitptl/mailtocall-api/internal/model"
	triggerService "github.com/jwalitptl/mailtocall-api/internal/service/trigger"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
)

type Handler struct {
	*entity.Handler[model.Trigger, string, model.CreateTriggerRequest, model.UpdateTriggerRequest, model.TriggerFilter]
	service triggerService.TriggerServicer
}

func NewHandler(service triggerService.TriggerServicer) *Handler {
	return &Handler{
		Handler: entity.NewHandler[model.Trigger, string, model.CreateTriggerRequest, model.UpdateTriggerRequest, model.TriggerFilter](service, entity.StringID),
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	triggers := r.Group("/triggers")
	h.Handler.RegisterRoutes(triggers)
	triggers.GET("/by-string/:trigger_string", h.GetByTriggerString)
}

func (h *Handler) GetByTriggerString(c *gin.Context) {
	trigger, err := h.service.GetByTriggerString(c.Request.Context(), c.Param("trigger_string"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trigger)
}
