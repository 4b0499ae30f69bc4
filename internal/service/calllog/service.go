package calllog

import (
	"context"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/entity"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
)

type CallLogServicer interface {
	entity.Servicer[model.CallLog, int64, model.CreateCallLogRequest, model.UpdateCallLogRequest, model.CallLogFilter]
	ListByEmailEvent(ctx context.Context, emailEventID string) ([]model.CallLog, error)
	ListByContact(ctx context.Context, contactID string) ([]model.CallLog, error)
}

type Service struct {
	*entity.Service[model.CallLog, int64, model.CreateCallLogRequest, model.UpdateCallLogRequest, model.CallLogFilter]
	repo repository.CallLogRepository
}

func NewService(repo repository.CallLogRepository, events event.Emitter) *Service {
	return &Service{
		Service: entity.NewService[model.CallLog, int64, model.CreateCallLogRequest, model.UpdateCallLogRequest, model.CallLogFilter](repo, "call_log", events),
		repo:    repo,
	}
}

// ListByEmailEvent returns the call attempts for an email event in attempt order.
func (s *Service) ListByEmailEvent(ctx context.Context, emailEventID string) ([]model.CallLog, error) {
	logs, err := s.repo.ListByEmailEvent(ctx, emailEventID)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	return logs, nil
}

func (s *Service) ListByContact(ctx context.Context, contactID string) ([]model.CallLog, error) {
	logs, err := s.repo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	return logs, nil
}
