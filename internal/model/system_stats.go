package model

import "time"

type SystemStats struct {
	ID          int64     `db:"id" json:"id"`
	MetricName  string    `db:"metric_name" json:"metric_name"`
	MetricValue JSON      `db:"metric_value" json:"metric_value"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}

type CreateSystemStatsRequest struct {
	MetricName  string `json:"metric_name" binding:"required,notblank"`
	MetricValue JSON   `json:"metric_value" binding:"required"`
}

func (r *CreateSystemStatsRequest) ApplyDefaults() {}

type UpdateSystemStatsRequest struct {
	MetricName  Optional[string] `json:"metric_name"`
	MetricValue Optional[JSON]   `json:"metric_value"`
}

type SystemStatsFilter struct {
	Query        string     `form:"q"`
	MetricName   string     `form:"metric_name"`
	RecordedFrom *time.Time `form:"recorded_from"`
	RecordedTo   *time.Time `form:"recorded_to"`
}

// Response keys of the /counts endpoints.
const (
	CountActiveTriggers = "total_active_triggers"
	CountContacts       = "total_contacts"
	CountContactGroups  = "total_contact_groups"
	CountDailyCalls     = "total_daily_calls"
)
