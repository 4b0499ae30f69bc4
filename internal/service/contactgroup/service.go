package contactgroup

import (
	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/entity"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
)

type ContactGroupServicer interface {
	entity.Servicer[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter]
}

type Service struct {
	*entity.Service[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter]
}

func NewService(repo repository.ContactGroupRepository, events event.Emitter) *Service {
	return &Service{
		Service: entity.NewService[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter](repo, "contact_group", events),
	}
}
