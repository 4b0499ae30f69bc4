package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

var contactGroupsTable = table{
	name:      "contact_groups",
	columns:   []string{"id", "name", "description", "is_active", "emergency_level", "created_at", "updated_at"},
	key:       "id",
	orderBy:   "created_at DESC",
	updatedAt: true,
}

type contactGroupRepository struct {
	crud[model.ContactGroup]
}

func NewContactGroupRepository(db *sqlx.DB, m *metrics.Metrics) repository.ContactGroupRepository {
	return &contactGroupRepository{newCRUD[model.ContactGroup](db, contactGroupsTable, m)}
}

func (r *contactGroupRepository) Create(ctx context.Context, req *model.CreateContactGroupRequest) (*model.ContactGroup, error) {
	vals := (&values{}).
		add("id", req.ID).
		add("name", req.Name).
		add("description", req.Description).
		add("is_active", req.IsActive).
		add("emergency_level", req.EmergencyLevel)
	return r.insert(ctx, vals)
}

func (r *contactGroupRepository) Get(ctx context.Context, id string) (*model.ContactGroup, error) {
	return r.get(ctx, id)
}

func (r *contactGroupRepository) List(ctx context.Context, skip, limit int) ([]model.ContactGroup, error) {
	return r.list(ctx, skip, limit)
}

func (r *contactGroupRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *contactGroupRepository) Search(ctx context.Context, f *model.ContactGroupFilter, skip, limit int) ([]model.ContactGroup, error) {
	return r.search(ctx, contactGroupConditions(f), skip, limit)
}

func (r *contactGroupRepository) SearchCount(ctx context.Context, f *model.ContactGroupFilter) (int, error) {
	return r.searchCount(ctx, contactGroupConditions(f))
}

func (r *contactGroupRepository) Update(ctx context.Context, id string, req *model.UpdateContactGroupRequest) (*model.ContactGroup, error) {
	vals := &values{}
	present(vals, "name", req.Name)
	present(vals, "description", req.Description)
	present(vals, "is_active", req.IsActive)
	present(vals, "emergency_level", req.EmergencyLevel)
	return r.update(ctx, id, vals)
}

func (r *contactGroupRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

func contactGroupConditions(f *model.ContactGroupFilter) *conditions {
	c := &conditions{}
	if f == nil {
		return c
	}
	return c.
		Anywhere(f.Query, "name", "description").
		Contains("name", f.Name).
		Contains("description", f.Description).
		EqualFold("emergency_level", f.EmergencyLevel).
		Flag("is_active", f.IsActive)
}
