package contactgroup

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/entity"
	"github.com/jwalitptl/mailtocall-api/internal/model"
	groupService "github.com/jwalitptl/mailtocall-api/internal/service/contactgroup"
)

type Handler struct {
	*entity.Handler[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter]
}

func NewHandler(service groupService.ContactGroupServicer) *Handler {
	return &Handler{
		Handler: entity.NewHandler[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter](service, entity.StringID),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.Handler.RegisterRoutes(r.Group("/contact-groups"))
}
