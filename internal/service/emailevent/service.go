package emailevent

import (
	"context"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/entity"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
)

type EmailEventServicer interface {
	entity.Servicer[model.EmailEvent, string, model.CreateEmailEventRequest, model.UpdateEmailEventRequest, model.EmailEventFilter]
	ListByStatus(ctx context.Context, status string) ([]model.EmailEvent, error)
	ListByTrigger(ctx context.Context, triggerMatched string) ([]model.EmailEvent, error)
}

type Service struct {
	*entity.Service[model.EmailEvent, string, model.CreateEmailEventRequest, model.UpdateEmailEventRequest, model.EmailEventFilter]
	repo repository.EmailEventRepository
}

func NewService(repo repository.EmailEventRepository, events event.Emitter) *Service {
	return &Service{
		Service: entity.NewService[model.EmailEvent, string, model.CreateEmailEventRequest, model.UpdateEmailEventRequest, model.EmailEventFilter](repo, "email_event", events),
		repo:    repo,
	}
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]model.EmailEvent, error) {
	events, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	return events, nil
}

func (s *Service) ListByTrigger(ctx context.Context, triggerMatched string) ([]model.EmailEvent, error) {
	events, err := s.repo.ListByTrigger(ctx, triggerMatched)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	return events, nil
}
