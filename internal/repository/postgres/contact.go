package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

var contactsTable = table{
	name: "contacts",
	columns: []string{
		"id", "name", "phone_number", "priority", "is_active", "role", "department",
		"group_ids", "created_at", "updated_at",
	},
	key:       "id",
	orderBy:   "priority ASC, created_at DESC",
	updatedAt: true,
}

type contactRepository struct {
	crud[model.Contact]
}

func NewContactRepository(db *sqlx.DB, m *metrics.Metrics) repository.ContactRepository {
	return &contactRepository{newCRUD[model.Contact](db, contactsTable, m)}
}

func (r *contactRepository) Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	vals := (&values{}).
		add("id", req.ID).
		add("name", req.Name).
		add("phone_number", req.PhoneNumber).
		add("priority", req.Priority).
		add("is_active", req.IsActive).
		add("role", req.Role).
		add("department", req.Department).
		add("group_ids", req.GroupIDs)
	return r.insert(ctx, vals)
}

func (r *contactRepository) Get(ctx context.Context, id string) (*model.Contact, error) {
	return r.get(ctx, id)
}

func (r *contactRepository) List(ctx context.Context, skip, limit int) ([]model.Contact, error) {
	return r.list(ctx, skip, limit)
}

func (r *contactRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *contactRepository) Search(ctx context.Context, f *model.ContactFilter, skip, limit int) ([]model.Contact, error) {
	return r.search(ctx, contactConditions(f), skip, limit)
}

func (r *contactRepository) SearchCount(ctx context.Context, f *model.ContactFilter) (int, error) {
	return r.searchCount(ctx, contactConditions(f))
}

func (r *contactRepository) Update(ctx context.Context, id string, req *model.UpdateContactRequest) (*model.Contact, error) {
	vals := &values{}
	present(vals, "name", req.Name)
	present(vals, "phone_number", req.PhoneNumber)
	present(vals, "priority", req.Priority)
	present(vals, "is_active", req.IsActive)
	present(vals, "role", req.Role)
	present(vals, "department", req.Department)
	present(vals, "group_ids", req.GroupIDs)
	return r.update(ctx, id, vals)
}

func (r *contactRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

// ListByGroup returns the active members of a group, most urgent first.
func (r *contactRepository) ListByGroup(ctx context.Context, groupID string) ([]model.Contact, error) {
	conds := (&conditions{}).
		Where("%s = ANY(group_ids)", groupID).
		Flag("is_active", boolPtr(true))
	return r.selectWhere(ctx, conds, contactsTable.orderBy)
}

func contactConditions(f *model.ContactFilter) *conditions {
	c := &conditions{}
	if f == nil {
		return c
	}
	c.Anywhere(f.Query, "name", "phone_number", "role", "department").
		Contains("name", f.Name).
		Contains("phone_number", f.PhoneNumber).
		Contains("role", f.Role).
		Contains("department", f.Department).
		Flag("is_active", f.IsActive)
	if f.GroupID != "" {
		c.Where("%s = ANY(group_ids)", f.GroupID)
	}
	atLeast(c, "priority", f.PriorityMin)
	atMost(c, "priority", f.PriorityMax)
	return c
}

func boolPtr(b bool) *bool {
	return &b
}
