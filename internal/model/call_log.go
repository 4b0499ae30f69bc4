package model

import "time"

type CallLog struct {
	ID            int64     `db:"id" json:"id"`
	EmailEventID  string    `db:"email_event_id" json:"email_event_id"`
	ContactID     string    `db:"contact_id" json:"contact_id"`
	PhoneNumber   string    `db:"phone_number" json:"phone_number"`
	CallSID       *string   `db:"call_sid" json:"call_sid"`
	Status        string    `db:"status" json:"status"`
	Duration      *int      `db:"duration" json:"duration"`
	AttemptNumber int       `db:"attempt_number" json:"attempt_number"`
	ErrorMessage  *string   `db:"error_message" json:"error_message"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateCallLogRequest struct {
	EmailEventID  string  `json:"email_event_id" binding:"required"`
	ContactID     string  `json:"contact_id" binding:"required"`
	PhoneNumber   string  `json:"phone_number" binding:"required,notblank"`
	CallSID       *string `json:"call_sid"`
	Status        string  `json:"status" binding:"required,notblank"`
	Duration      *int    `json:"duration" binding:"omitempty,min=0"`
	AttemptNumber *int    `json:"attempt_number" binding:"omitempty,min=1"`
	ErrorMessage  *string `json:"error_message"`
}

func (r *CreateCallLogRequest) ApplyDefaults() {
	if r.AttemptNumber == nil {
		attempt := 1
		r.AttemptNumber = &attempt
	}
}

type UpdateCallLogRequest struct {
	EmailEventID  Optional[string]  `json:"email_event_id"`
	ContactID     Optional[string]  `json:"contact_id"`
	PhoneNumber   Optional[string]  `json:"phone_number"`
	CallSID       Optional[*string] `json:"call_sid"`
	Status        Optional[string]  `json:"status"`
	Duration      Optional[*int]    `json:"duration"`
	AttemptNumber Optional[int]     `json:"attempt_number"`
	ErrorMessage  Optional[*string] `json:"error_message"`
}

type CallLogFilter struct {
	Query        string `form:"q"`
	PhoneNumber  string `form:"phone_number"`
	CallSID      string `form:"call_sid"`
	Status       string `form:"status"`
	EmailEventID string `form:"email_event_id"`
	ContactID    string `form:"contact_id"`
	AttemptMin   *int   `form:"attempt_min"`
	AttemptMax   *int   `form:"attempt_max"`
}

// CallLogExportRow is one call log joined with its email event and contact.
// Joined columns are nil when the referenced row no longer exists.
type CallLogExportRow struct {
	ID            int64     `db:"id"`
	EmailEventID  string    `db:"email_event_id"`
	FromEmail     *string   `db:"from_email"`
	Subject       *string   `db:"subject"`
	ContactID     string    `db:"contact_id"`
	ContactName   *string   `db:"contact_name"`
	PhoneNumber   string    `db:"phone_number"`
	CallSID       *string   `db:"call_sid"`
	Status        string    `db:"status"`
	Duration      *int      `db:"duration"`
	AttemptNumber int       `db:"attempt_number"`
	ErrorMessage  *string   `db:"error_message"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ExportRequest carries the optional YYYY-MM-DD bounds of an export.
type ExportRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
