package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

var emailEventsTable = table{
	name: "email_events",
	columns: []string{
		"id", "from_email", "subject", "body", "trigger_matched", "status", "received_at", "processed_at",
	},
	key:     "id",
	orderBy: "received_at DESC",
}

type emailEventRepository struct {
	crud[model.EmailEvent]
}

func NewEmailEventRepository(db *sqlx.DB, m *metrics.Metrics) repository.EmailEventRepository {
	return &emailEventRepository{newCRUD[model.EmailEvent](db, emailEventsTable, m)}
}

func (r *emailEventRepository) Create(ctx context.Context, req *model.CreateEmailEventRequest) (*model.EmailEvent, error) {
	vals := (&values{}).
		add("id", req.ID).
		add("from_email", req.FromEmail).
		add("subject", req.Subject).
		add("body", req.Body).
		add("trigger_matched", req.TriggerMatched).
		add("status", req.Status)
	return r.insert(ctx, vals)
}

func (r *emailEventRepository) Get(ctx context.Context, id string) (*model.EmailEvent, error) {
	return r.get(ctx, id)
}

func (r *emailEventRepository) List(ctx context.Context, skip, limit int) ([]model.EmailEvent, error) {
	return r.list(ctx, skip, limit)
}

func (r *emailEventRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *emailEventRepository) Search(ctx context.Context, f *model.EmailEventFilter, skip, limit int) ([]model.EmailEvent, error) {
	return r.search(ctx, emailEventConditions(f), skip, limit)
}

func (r *emailEventRepository) SearchCount(ctx context.Context, f *model.EmailEventFilter) (int, error) {
	return r.searchCount(ctx, emailEventConditions(f))
}

// Update writes the present fields. Moving an event to processed stamps
// processed_at the first time only.
func (r *emailEventRepository) Update(ctx context.Context, id string, req *model.UpdateEmailEventRequest) (*model.EmailEvent, error) {
	vals := &values{}
	present(vals, "from_email", req.FromEmail)
	present(vals, "subject", req.Subject)
	present(vals, "body", req.Body)
	present(vals, "trigger_matched", req.TriggerMatched)
	present(vals, "status", req.Status)
	if req.MarksProcessed() {
		vals.expr("processed_at = COALESCE(processed_at, CURRENT_TIMESTAMP)")
	}
	return r.update(ctx, id, vals)
}

func (r *emailEventRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

func (r *emailEventRepository) ListByStatus(ctx context.Context, status string) ([]model.EmailEvent, error) {
	conds := (&conditions{}).Where("status = %s", status)
	return r.selectWhere(ctx, conds, emailEventsTable.orderBy)
}

func (r *emailEventRepository) ListByTrigger(ctx context.Context, triggerMatched string) ([]model.EmailEvent, error) {
	conds := (&conditions{}).Where("trigger_matched = %s", triggerMatched)
	return r.selectWhere(ctx, conds, emailEventsTable.orderBy)
}

func emailEventConditions(f *model.EmailEventFilter) *conditions {
	c := &conditions{}
	if f == nil {
		return c
	}
	return c.
		Anywhere(f.Query, "from_email", "subject", "body").
		Contains("from_email", f.FromEmail).
		Contains("subject", f.Subject).
		Equal("status", f.Status).
		Equal("trigger_matched", f.TriggerMatched)
}
