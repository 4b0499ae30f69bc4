package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/internal/service/event"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
)

// Servicer is the behaviour shared by every entity service.
type Servicer[T any, K comparable, C any, U any, F any] interface {
	Create(ctx context.Context, req *C) (*T, error)
	Get(ctx context.Context, id K) (*T, error)
	List(ctx context.Context, page model.PageRequest) (*model.Page[T], error)
	Search(ctx context.Context, filter *F, page model.PageRequest) (*model.Page[T], error)
	Update(ctx context.Context, id K, req *U) (*T, error)
	Delete(ctx context.Context, id K) error
}

type defaulter interface {
	ApplyDefaults()
}

type validator interface {
	Validate() error
}

// Service implements Servicer on top of a repository. Resource names the
// entity in messages and event types, e.g. "contact_group".
type Service[T any, K comparable, C any, U any, F any] struct {
	repo     repository.Repository[T, K, C, U, F]
	resource string
	label    string
	events   event.Emitter
}

func NewService[T any, K comparable, C any, U any, F any](
	repo repository.Repository[T, K, C, U, F],
	resource string,
	events event.Emitter,
) *Service[T, K, C, U, F] {
	label := strings.ReplaceAll(resource, "_", " ")
	return &Service[T, K, C, U, F]{
		repo:     repo,
		resource: resource,
		label:    strings.ToUpper(label[:1]) + label[1:],
		events:   events,
	}
}

func (s *Service[T, K, C, U, F]) Create(ctx context.Context, req *C) (*T, error) {
	if d, ok := any(req).(defaulter); ok {
		d.ApplyDefaults()
	}

	record, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, s.StoreError("create", err)
	}

	s.Emit(ctx, event.ActionCreated, record)
	return record, nil
}

func (s *Service[T, K, C, U, F]) Get(ctx context.Context, id K) (*T, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.StoreError("get", err)
	}
	if record == nil {
		return nil, s.NotFound()
	}
	return record, nil
}

func (s *Service[T, K, C, U, F]) List(ctx context.Context, page model.PageRequest) (*model.Page[T], error) {
	page = page.Normalize()

	items, err := s.repo.List(ctx, page.Offset(), page.PerPage)
	if err != nil {
		return nil, s.StoreError("list", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, s.StoreError("count", err)
	}

	return model.NewPage(items, total, page), nil
}

// Search pages through the records matching filter. The window and the total
// are computed from the same filter value.
func (s *Service[T, K, C, U, F]) Search(ctx context.Context, filter *F, page model.PageRequest) (*model.Page[T], error) {
	if filter == nil {
		filter = new(F)
	}
	page = page.Normalize()

	items, err := s.repo.Search(ctx, filter, page.Offset(), page.PerPage)
	if err != nil {
		return nil, s.StoreError("search", err)
	}
	total, err := s.repo.SearchCount(ctx, filter)
	if err != nil {
		return nil, s.StoreError("count", err)
	}

	return model.NewPage(items, total, page), nil
}

func (s *Service[T, K, C, U, F]) Update(ctx context.Context, id K, req *U) (*T, error) {
	if v, ok := any(req).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, apperrors.Validation(err.Error(), nil)
		}
	}

	record, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, s.StoreError("update", err)
	}
	if record == nil {
		return nil, s.NotFound()
	}

	s.Emit(ctx, event.ActionUpdated, record)
	return record, nil
}

func (s *Service[T, K, C, U, F]) Delete(ctx context.Context, id K) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.StoreError("delete", err)
	}
	if !deleted {
		return s.NotFound()
	}

	s.Emit(ctx, event.ActionDeleted, map[string]interface{}{"id": id})
	return nil
}

// NotFound is the error returned for a missing record of this entity.
func (s *Service[T, K, C, U, F]) NotFound() error {
	return apperrors.NotFound(s.label)
}

// StoreError classifies a repository error. Rejected data becomes a
// validation error, anything else an internal one.
func (s *Service[T, K, C, U, F]) StoreError(op string, err error) error {
	if errors.Is(err, repository.ErrInvalidData) {
		return apperrors.Validation(fmt.Sprintf("invalid %s data", strings.ToLower(s.label)), err)
	}
	return apperrors.Internal(fmt.Sprintf("failed to %s %s", op, strings.ToLower(s.label)), err)
}

// Emit publishes a change event for this entity.
func (s *Service[T, K, C, U, F]) Emit(ctx context.Context, action string, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, s.resource, action, payload)
}
