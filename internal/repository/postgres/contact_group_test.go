package postgres

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
)

const groupColumns = "id, name, description, is_active, emergency_level, created_at, updated_at"

func TestContactGroupCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	req := &model.CreateContactGroupRequest{ID: "grp-1", Name: "Ops"}
	req.ApplyDefaults()

	mock.ExpectQuery(q(`INSERT INTO contact_groups (id, name, description, is_active, emergency_level) VALUES ($1, $2, $3, $4, $5) RETURNING ` + groupColumns)).
		WithArgs("grp-1", "Ops", nil, true, "medium").
		WillReturnRows(addGroup(groupRows(), "grp-1", "Ops"))

	group, err := repo.Create(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "grp-1", group.ID)
	assert.Equal(t, "medium", group.EmergencyLevel)
	assert.True(t, group.IsActive)
	assert.False(t, group.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupCreateRejected(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	req := &model.CreateContactGroupRequest{ID: "grp-1", Name: "Ops"}
	req.ApplyDefaults()

	mock.ExpectQuery(`INSERT INTO contact_groups`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	group, err := repo.Create(t.Context(), req)
	assert.Nil(t, group)
	assert.True(t, errors.Is(err, repository.ErrInvalidData))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupGetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	mock.ExpectQuery(q(`SELECT ` + groupColumns + ` FROM contact_groups WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(groupRows())

	group, err := repo.Get(t.Context(), "missing")
	require.NoError(t, err)
	assert.Nil(t, group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupList(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	rows := addGroup(addGroup(groupRows(), "grp-2", "Night"), "grp-1", "Ops")
	mock.ExpectQuery(q(`SELECT ` + groupColumns + ` FROM contact_groups ORDER BY created_at DESC LIMIT $1 OFFSET $2`)).
		WithArgs(10, 20).
		WillReturnRows(rows)

	groups, err := repo.List(t.Context(), 20, 10)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "grp-2", groups[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupSearchAndCountUseSameFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	active := true
	filter := &model.ContactGroupFilter{Query: "ops", EmergencyLevel: "HIGH", IsActive: &active}
	where := ` WHERE (LOWER(name) LIKE LOWER($1) OR LOWER(description) LIKE LOWER($1)) AND LOWER(emergency_level) = LOWER($2) AND is_active = $3`

	mock.ExpectQuery(q(`SELECT ` + groupColumns + ` FROM contact_groups` + where + ` ORDER BY created_at DESC LIMIT $4 OFFSET $5`)).
		WithArgs("%ops%", "HIGH", true, 10, 0).
		WillReturnRows(addGroup(groupRows(), "grp-1", "Ops"))
	mock.ExpectQuery(q(`SELECT COUNT(*) FROM contact_groups` + where)).
		WithArgs("%ops%", "HIGH", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	groups, err := repo.Search(t.Context(), filter, 0, 10)
	require.NoError(t, err)
	total, err := repo.SearchCount(t.Context(), filter)
	require.NoError(t, err)

	assert.Len(t, groups, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupEmptyUpdateReadsCurrent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	mock.ExpectQuery(q(`SELECT ` + groupColumns + ` FROM contact_groups WHERE id = $1`)).
		WithArgs("grp-1").
		WillReturnRows(addGroup(groupRows(), "grp-1", "Ops"))

	group, err := repo.Update(t.Context(), "grp-1", &model.UpdateContactGroupRequest{})
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, "Ops", group.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupUpdateWritesPresentFields(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	req := &model.UpdateContactGroupRequest{
		Description:    model.Null[*string](),
		EmergencyLevel: model.Some("critical"),
	}

	mock.ExpectQuery(q(`UPDATE contact_groups SET description = $1, emergency_level = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3 RETURNING ` + groupColumns)).
		WithArgs(nil, "critical", "grp-1").
		WillReturnRows(addGroup(groupRows(), "grp-1", "Ops"))

	group, err := repo.Update(t.Context(), "grp-1", req)
	require.NoError(t, err)
	assert.NotNil(t, group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupUpdateMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	mock.ExpectQuery(`UPDATE contact_groups SET name = \$1`).
		WithArgs("New", "missing").
		WillReturnRows(groupRows())

	group, err := repo.Update(t.Context(), "missing", &model.UpdateContactGroupRequest{Name: model.Some("New")})
	require.NoError(t, err)
	assert.Nil(t, group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactGroupDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactGroupRepository(db, nil)

	mock.ExpectExec(q(`DELETE FROM contact_groups WHERE id = $1`)).
		WithArgs("grp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM contact_groups WHERE id = $1`)).
		WithArgs("grp-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(t.Context(), "grp-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(t.Context(), "grp-1")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
