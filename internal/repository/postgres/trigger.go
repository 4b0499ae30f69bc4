package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

var triggersTable = table{
	name: "triggers",
	columns: []string{
		"id", "name", "trigger_string", "description", "group_id", "is_active", "priority",
		"custom_message", "created_at", "updated_at",
	},
	key:       "id",
	orderBy:   "priority ASC, created_at DESC",
	updatedAt: true,
}

type triggerRepository struct {
	crud[model.Trigger]
}

func NewTriggerRepository(db *sqlx.DB, m *metrics.Metrics) repository.TriggerRepository {
	return &triggerRepository{newCRUD[model.Trigger](db, triggersTable, m)}
}

func (r *triggerRepository) Create(ctx context.Context, req *model.CreateTriggerRequest) (*model.Trigger, error) {
	vals := (&values{}).
		add("id", req.ID).
		add("name", req.Name).
		add("trigger_string", req.TriggerString).
		add("description", req.Description).
		add("group_id", req.GroupID).
		add("is_active", req.IsActive).
		add("priority", req.Priority).
		add("custom_message", req.CustomMessage)
	return r.insert(ctx, vals)
}

func (r *triggerRepository) Get(ctx context.Context, id string) (*model.Trigger, error) {
	return r.get(ctx, id)
}

func (r *triggerRepository) List(ctx context.Context, skip, limit int) ([]model.Trigger, error) {
	return r.list(ctx, skip, limit)
}

func (r *triggerRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *triggerRepository) Search(ctx context.Context, f *model.TriggerFilter, skip, limit int) ([]model.Trigger, error) {
	return r.search(ctx, triggerConditions(f), skip, limit)
}

func (r *triggerRepository) SearchCount(ctx context.Context, f *model.TriggerFilter) (int, error) {
	return r.searchCount(ctx, triggerConditions(f))
}

func (r *triggerRepository) Update(ctx context.Context, id string, req *model.UpdateTriggerRequest) (*model.Trigger, error) {
	vals := &values{}
	present(vals, "name", req.Name)
	present(vals, "trigger_string", req.TriggerString)
	present(vals, "description", req.Description)
	present(vals, "group_id", req.GroupID)
	present(vals, "is_active", req.IsActive)
	present(vals, "priority", req.Priority)
	present(vals, "custom_message", req.CustomMessage)
	return r.update(ctx, id, vals)
}

func (r *triggerRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

// GetByTriggerString looks up an active trigger by its exact string.
func (r *triggerRepository) GetByTriggerString(ctx context.Context, triggerString string) (*model.Trigger, error) {
	conds := (&conditions{}).
		Where("trigger_string = %s", triggerString).
		Flag("is_active", boolPtr(true))
	rows, err := r.search(ctx, conds, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func triggerConditions(f *model.TriggerFilter) *conditions {
	c := &conditions{}
	if f == nil {
		return c
	}
	c.Anywhere(f.Query, "name", "trigger_string", "description", "custom_message").
		Contains("name", f.Name).
		Contains("trigger_string", f.TriggerString).
		Contains("description", f.Description).
		Equal("group_id", f.GroupID).
		Flag("is_active", f.IsActive)
	atLeast(c, "priority", f.PriorityMin)
	atMost(c, "priority", f.PriorityMax)
	return c
}
