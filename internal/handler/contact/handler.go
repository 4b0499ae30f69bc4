package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/entity"
	"github.com/jwalitptl/mailtocall-api/internal/model"
	contactService "github.com/jwalitptl/mailtocall-api/internal/service/contact"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
)

type Handler struct {
	*entity.Handler[model.Contact, string, model.CreateContactRequest, model.UpdateContactRequest, model.ContactFilter]
	service contactService.ContactServicer
}

func NewHandler(service contactService.ContactServicer) *Handler {
	return &Handler{
		Handler: entity.NewHandler[model.Contact, string, model.CreateContactRequest, model.UpdateContactRequest, model.ContactFilter](service, entity.StringID),
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	h.Handler.RegisterRoutes(contacts)
	contacts.GET("/by-group/:group_id", h.ListByGroup)
}

// ListByGroup returns the active contacts that belong to a group.
func (h *Handler) ListByGroup(c *gin.Context) {
	contacts, err := h.service.ListByGroup(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
