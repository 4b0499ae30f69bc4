package systemstats

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/entity"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

type SystemStatsServicer interface {
	entity.Servicer[model.SystemStats, int64, model.CreateSystemStatsRequest, model.UpdateSystemStatsRequest, model.SystemStatsFilter]
	ListByMetric(ctx context.Context, metricName string, page model.PageRequest) (*model.Page[model.SystemStats], error)
	LatestByMetric(ctx context.Context, metricName string) (*model.SystemStats, error)
	Purge(ctx context.Context, daysToKeep int) (int64, error)
	DashboardCount(ctx context.Context, name string) (int, error)
}

type Service struct {
	*entity.Service[model.SystemStats, int64, model.CreateSystemStatsRequest, model.UpdateSystemStatsRequest, model.SystemStatsFilter]
	repo    repository.SystemStatsRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.SystemStatsRepository, events event.Emitter, m *metrics.Metrics) *Service {
	return &Service{
		Service: entity.NewService[model.SystemStats, int64, model.CreateSystemStatsRequest, model.UpdateSystemStatsRequest, model.SystemStatsFilter](repo, "system_stats", events),
		repo:    repo,
		metrics: m,
	}
}

func (s *Service) ListByMetric(ctx context.Context, metricName string, page model.PageRequest) (*model.Page[model.SystemStats], error) {
	page = page.Normalize()

	items, err := s.repo.ListByMetric(ctx, metricName, page.Offset(), page.PerPage)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	total, err := s.repo.CountByMetric(ctx, metricName)
	if err != nil {
		return nil, s.StoreError("count", err)
	}

	return model.NewPage(items, total, page), nil
}

func (s *Service) LatestByMetric(ctx context.Context, metricName string) (*model.SystemStats, error) {
	stat, err := s.repo.LatestByMetric(ctx, metricName)
	if err != nil {
		return nil, s.StoreError("get", err)
	}
	if stat == nil {
		return nil, s.NotFound()
	}
	return stat, nil
}

// Purge removes stats recorded more than daysToKeep days ago.
func (s *Service) Purge(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 0 {
		return 0, apperrors.Validation("days_to_keep must not be negative", nil)
	}

	deleted, err := s.repo.PurgeOlderThan(ctx, daysToKeep)
	if err != nil {
		return 0, s.StoreError("purge", err)
	}

	s.metrics.ObservePurge(deleted)
	log.Info().
		Int("days_to_keep", daysToKeep).
		Int64("deleted", deleted).
		Msg("purged old system stats")

	if deleted > 0 {
		s.Emit(ctx, event.ActionPurged, map[string]interface{}{
			"days_to_keep": daysToKeep,
			"deleted":      deleted,
		})
	}
	return deleted, nil
}

// DashboardCount returns one of the totals named by the model.Count* keys.
func (s *Service) DashboardCount(ctx context.Context, name string) (int, error) {
	var (
		n   int
		err error
	)
	switch name {
	case model.CountActiveTriggers:
		n, err = s.repo.CountActiveTriggers(ctx)
	case model.CountContacts:
		n, err = s.repo.CountContacts(ctx)
	case model.CountContactGroups:
		n, err = s.repo.CountContactGroups(ctx)
	case model.CountDailyCalls:
		n, err = s.repo.CountCallsToday(ctx)
	default:
		return 0, apperrors.NotFound("Count " + name)
	}
	if err != nil {
		return 0, s.StoreError("count", err)
	}
	return n, nil
}
