package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

var callLogsTable = table{
	name: "call_logs",
	columns: []string{
		"id", "email_event_id", "contact_id", "phone_number", "call_sid", "status", "duration",
		"attempt_number", "error_message", "created_at", "updated_at",
	},
	key:       "id",
	orderBy:   "created_at DESC",
	updatedAt: true,
}

type callLogRepository struct {
	crud[model.CallLog]
}

func NewCallLogRepository(db *sqlx.DB, m *metrics.Metrics) repository.CallLogRepository {
	return &callLogRepository{newCRUD[model.CallLog](db, callLogsTable, m)}
}

func (r *callLogRepository) Create(ctx context.Context, req *model.CreateCallLogRequest) (*model.CallLog, error) {
	vals := (&values{}).
		add("email_event_id", req.EmailEventID).
		add("contact_id", req.ContactID).
		add("phone_number", req.PhoneNumber).
		add("call_sid", req.CallSID).
		add("status", req.Status).
		add("duration", req.Duration).
		add("attempt_number", req.AttemptNumber).
		add("error_message", req.ErrorMessage)
	return r.insert(ctx, vals)
}

func (r *callLogRepository) Get(ctx context.Context, id int64) (*model.CallLog, error) {
	return r.get(ctx, id)
}

func (r *callLogRepository) List(ctx context.Context, skip, limit int) ([]model.CallLog, error) {
	return r.list(ctx, skip, limit)
}

func (r *callLogRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *callLogRepository) Search(ctx context.Context, f *model.CallLogFilter, skip, limit int) ([]model.CallLog, error) {
	return r.search(ctx, callLogConditions(f), skip, limit)
}

func (r *callLogRepository) SearchCount(ctx context.Context, f *model.CallLogFilter) (int, error) {
	return r.searchCount(ctx, callLogConditions(f))
}

func (r *callLogRepository) Update(ctx context.Context, id int64, req *model.UpdateCallLogRequest) (*model.CallLog, error) {
	vals := &values{}
	present(vals, "email_event_id", req.EmailEventID)
	present(vals, "contact_id", req.ContactID)
	present(vals, "phone_number", req.PhoneNumber)
	present(vals, "call_sid", req.CallSID)
	present(vals, "status", req.Status)
	present(vals, "duration", req.Duration)
	present(vals, "attempt_number", req.AttemptNumber)
	present(vals, "error_message", req.ErrorMessage)
	return r.update(ctx, id, vals)
}

func (r *callLogRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

// ListByEmailEvent returns every attempt made for an email event in attempt order.
func (r *callLogRepository) ListByEmailEvent(ctx context.Context, emailEventID string) ([]model.CallLog, error) {
	conds := (&conditions{}).Equal("email_event_id", emailEventID)
	return r.selectWhere(ctx, conds, "attempt_number ASC, created_at ASC")
}

func (r *callLogRepository) ListByContact(ctx context.Context, contactID string) ([]model.CallLog, error) {
	conds := (&conditions{}).Equal("contact_id", contactID)
	return r.selectWhere(ctx, conds, callLogsTable.orderBy)
}

const exportQuery = `
	SELECT
		cl.id, cl.email_event_id, ee.from_email, ee.subject,
		cl.contact_id, c.name AS contact_name, cl.phone_number, cl.call_sid,
		cl.status, cl.duration, cl.attempt_number, cl.error_message,
		cl.created_at, cl.updated_at
	FROM call_logs cl
	LEFT JOIN email_events ee ON ee.id = cl.email_event_id
	LEFT JOIN contacts c ON c.id = cl.contact_id`

func (r *callLogRepository) ListForExport(ctx context.Context, from, to time.Time) ([]model.CallLogExportRow, error) {
	conds := &conditions{}
	if !from.IsZero() {
		conds.Where("cl.created_at >= %s", from)
	}
	if !to.IsZero() {
		conds.Where("cl.created_at < %s", to)
	}
	query := exportQuery + conds.where() + "\n\tORDER BY cl.created_at DESC"

	rows := []model.CallLogExportRow{}
	start := time.Now()
	err := r.db.SelectContext(ctx, &rows, query, conds.args...)
	r.metrics.ObserveQuery(callLogsTable.name, "export", start, err)
	if err != nil {
		return nil, r.wrap("export", err)
	}
	return rows, nil
}

func callLogConditions(f *model.CallLogFilter) *conditions {
	c := &conditions{}
	if f == nil {
		return c
	}
	c.Anywhere(f.Query, "phone_number", "call_sid", "status", "error_message").
		Contains("phone_number", f.PhoneNumber).
		Contains("call_sid", f.CallSID).
		Equal("status", f.Status).
		Equal("email_event_id", f.EmailEventID).
		Equal("contact_id", f.ContactID)
	atLeast(c, "attempt_number", f.AttemptMin)
	atMost(c, "attempt_number", f.AttemptMax)
	return c
}
