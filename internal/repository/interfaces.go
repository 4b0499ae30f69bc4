package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/mailtocall-api/internal/model"
)

// ErrInvalidData marks a write the store rejected because of the data itself
// (constraint violations, malformed values).
var ErrInvalidData = errors.New("invalid data")

// Repository is the contract shared by every entity store. Get and Update
// return a nil record, not an error, when the key does not exist.
type Repository[T any, K comparable, C any, U any, F any] interface {
	Create(ctx context.Context, req *C) (*T, error)
	Get(ctx context.Context, id K) (*T, error)
	List(ctx context.Context, skip, limit int) ([]T, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, filter *F, skip, limit int) ([]T, error)
	SearchCount(ctx context.Context, filter *F) (int, error)
	Update(ctx context.Context, id K, req *U) (*T, error)
	Delete(ctx context.Context, id K) (bool, error)
}

// All repository interfaces in one file
type (
	ContactGroupRepository interface {
		Repository[model.ContactGroup, string, model.CreateContactGroupRequest, model.UpdateContactGroupRequest, model.ContactGroupFilter]
	}

	ContactRepository interface {
		Repository[model.Contact, string, model.CreateContactRequest, model.UpdateContactRequest, model.ContactFilter]
		ListByGroup(ctx context.Context, groupID string) ([]model.Contact, error)
	}

	TriggerRepository interface {
		Repository[model.Trigger, string, model.CreateTriggerRequest, model.UpdateTriggerRequest, model.TriggerFilter]
		GetByTriggerString(ctx context.Context, triggerString string) (*model.Trigger, error)
	}

	CallLogRepository interface {
		Repository[model.CallLog, int64, model.CreateCallLogRequest, model.UpdateCallLogRequest, model.CallLogFilter]
		ListByEmailEvent(ctx context.Context, emailEventID string) ([]model.CallLog, error)
		ListByContact(ctx context.Context, contactID string) ([]model.CallLog, error)
		// ListForExport returns rows created in [from, to). Zero bounds are open.
		ListForExport(ctx context.Context, from, to time.Time) ([]model.CallLogExportRow, error)
	}

	EmailEventRepository interface {
		Repository[model.EmailEvent, string, model.CreateEmailEventRequest, model.UpdateEmailEventRequest, model.EmailEventFilter]
		ListByStatus(ctx context.Context, status string) ([]model.EmailEvent, error)
		ListByTrigger(ctx context.Context, triggerMatched string) ([]model.EmailEvent, error)
	}

	SystemStatsRepository interface {
		Repository[model.SystemStats, int64, model.CreateSystemStatsRequest, model.UpdateSystemStatsRequest, model.SystemStatsFilter]
		ListByMetric(ctx context.Context, metricName string, skip, limit int) ([]model.SystemStats, error)
		CountByMetric(ctx context.Context, metricName string) (int, error)
		LatestByMetric(ctx context.Context, metricName string) (*model.SystemStats, error)
		PurgeOlderThan(ctx context.Context, days int) (int64, error)
		CountActiveTriggers(ctx context.Context) (int, error)
		CountContacts(ctx context.Context) (int, error)
		CountContactGroups(ctx context.Context) (int, error)
		CountCallsToday(ctx context.Context) (int, error)
	}
)
