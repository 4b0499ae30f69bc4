package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

var systemStatsTable = table{
	name:    "system_stats",
	columns: []string{"id", "metric_name", "metric_value", "recorded_at"},
	key:     "id",
	orderBy: "recorded_at DESC",
}

type systemStatsRepository struct {
	crud[model.SystemStats]
}

func NewSystemStatsRepository(db *sqlx.DB, m *metrics.Metrics) repository.SystemStatsRepository {
	return &systemStatsRepository{newCRUD[model.SystemStats](db, systemStatsTable, m)}
}

func (r *systemStatsRepository) Create(ctx context.Context, req *model.CreateSystemStatsRequest) (*model.SystemStats, error) {
	vals := (&values{}).
		add("metric_name", req.MetricName).
		add("metric_value", req.MetricValue)
	return r.insert(ctx, vals)
}

func (r *systemStatsRepository) Get(ctx context.Context, id int64) (*model.SystemStats, error) {
	return r.get(ctx, id)
}

func (r *systemStatsRepository) List(ctx context.Context, skip, limit int) ([]model.SystemStats, error) {
	return r.list(ctx, skip, limit)
}

func (r *systemStatsRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

func (r *systemStatsRepository) Search(ctx context.Context, f *model.SystemStatsFilter, skip, limit int) ([]model.SystemStats, error) {
	return r.search(ctx, systemStatsConditions(f), skip, limit)
}

func (r *systemStatsRepository) SearchCount(ctx context.Context, f *model.SystemStatsFilter) (int, error) {
	return r.searchCount(ctx, systemStatsConditions(f))
}

func (r *systemStatsRepository) Update(ctx context.Context, id int64, req *model.UpdateSystemStatsRequest) (*model.SystemStats, error) {
	vals := &values{}
	present(vals, "metric_name", req.MetricName)
	present(vals, "metric_value", req.MetricValue)
	return r.update(ctx, id, vals)
}

func (r *systemStatsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

func (r *systemStatsRepository) ListByMetric(ctx context.Context, metricName string, skip, limit int) ([]model.SystemStats, error) {
	return r.search(ctx, metricConditions(metricName), skip, limit)
}

func (r *systemStatsRepository) CountByMetric(ctx context.Context, metricName string) (int, error) {
	return r.searchCount(ctx, metricConditions(metricName))
}

func (r *systemStatsRepository) LatestByMetric(ctx context.Context, metricName string) (*model.SystemStats, error) {
	rows, err := r.search(ctx, metricConditions(metricName), 0, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// PurgeOlderThan deletes stats recorded more than days days ago and returns
// the number of rows removed.
func (r *systemStatsRepository) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	const query = `DELETE FROM system_stats WHERE recorded_at < NOW() - make_interval(days => $1)`
	return r.exec(ctx, "purge", query, days)
}

func (r *systemStatsRepository) CountActiveTriggers(ctx context.Context) (int, error) {
	return r.scalar(ctx, "count_active_triggers", `SELECT COUNT(*) FROM triggers WHERE is_active = true`)
}

func (r *systemStatsRepository) CountContacts(ctx context.Context) (int, error) {
	return r.scalar(ctx, "count_contacts", `SELECT COUNT(*) FROM contacts`)
}

func (r *systemStatsRepository) CountContactGroups(ctx context.Context) (int, error) {
	return r.scalar(ctx, "count_contact_groups", `SELECT COUNT(*) FROM contact_groups`)
}

func (r *systemStatsRepository) CountCallsToday(ctx context.Context) (int, error) {
	return r.scalar(ctx, "count_calls_today", `SELECT COUNT(*) FROM call_logs WHERE DATE(created_at) = CURRENT_DATE`)
}

func metricConditions(metricName string) *conditions {
	return (&conditions{}).Where("metric_name = %s", metricName)
}

func systemStatsConditions(f *model.SystemStatsFilter) *conditions {
	c := &conditions{}
	if f == nil {
		return c
	}
	c.Anywhere(f.Query, "metric_name").
		Contains("metric_name", f.MetricName)
	atLeast(c, "recorded_at", f.RecordedFrom)
	atMost(c, "recorded_at", f.RecordedTo)
	return c
}
