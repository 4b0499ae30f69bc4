package trigger

import (
	"context"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/entity"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
)

type TriggerServicer interface {
	entity.Servicer[model.Trigger, string, model.CreateTriggerRequest, model.UpdateTriggerRequest, model.TriggerFilter]
	GetByTriggerString(ctx context.Context, triggerString string) (*model.Trigger, error)
}

type Service struct {
	*entity.Service[model.Trigger, string, model.CreateTriggerRequest, model.UpdateTriggerRequest, model.TriggerFilter]
	repo repository.TriggerRepository
}

func NewService(repo repository.TriggerRepository, events event.Emitter) *Service {
	return &Service{
		Service: entity.NewService[model.Trigger, string, model.CreateTriggerRequest, model.UpdateTriggerRequest, model.TriggerFilter](repo, "trigger", events),
		repo:    repo,
	}
}

// GetByTriggerString resolves an active trigger. Inactive triggers are not found.
func (s *Service) GetByTriggerString(ctx context.Context, triggerString string) (*model.Trigger, error) {
	trigger, err := s.repo.GetByTriggerString(ctx, triggerString)
	if err != nil {
		return nil, s.StoreError("get", err)
	}
	if trigger == nil {
		return nil, s.NotFound()
	}
	return trigger, nil
}
