package contact

import (
	"context"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/entity"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
)

type ContactServicer interface {
	entity.Servicer[model.Contact, string, model.CreateContactRequest, model.UpdateContactRequest, model.ContactFilter]
	ListByGroup(ctx context.Context, groupID string) ([]model.Contact, error)
}

type Service struct {
	*entity.Service[model.Contact, string, model.CreateContactRequest, model.UpdateContactRequest, model.ContactFilter]
	repo repository.ContactRepository
}

func NewService(repo repository.ContactRepository, events event.Emitter) *Service {
	return &Service{
		Service: entity.NewService[model.Contact, string, model.CreateContactRequest, model.UpdateContactRequest, model.ContactFilter](repo, "contact", events),
		repo:    repo,
	}
}

// ListByGroup returns the active contacts of a group, most urgent first.
// An unknown group yields an empty list.
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]model.Contact, error) {
	contacts, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	return contacts, nil
}
