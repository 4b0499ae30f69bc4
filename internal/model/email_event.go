package model

import "time"

const (
	EmailStatusPending   = "pending"
	EmailStatusProcessed = "processed"
)

type EmailEvent struct {
	ID             string     `db:"id" json:"id"`
	FromEmail      string     `db:"from_email" json:"from_email"`
	Subject        *string    `db:"subject" json:"subject"`
	Body           *string    `db:"body" json:"body"`
	TriggerMatched *string    `db:"trigger_matched" json:"trigger_matched"`
	Status         string     `db:"status" json:"status"`
	ReceivedAt     time.Time  `db:"received_at" json:"received_at"`
	ProcessedAt    *time.Time `db:"processed_at" json:"processed_at"`
}

type CreateEmailEventRequest struct {
	ID             string  `json:"id" binding:"required,notblank"`
	FromEmail      string  `json:"from_email" binding:"required,notblank"`
	Subject        *string `json:"subject"`
	Body           *string `json:"body"`
	TriggerMatched *string `json:"trigger_matched"`
	Status         *string `json:"status"`
}

func (r *CreateEmailEventRequest) ApplyDefaults() {
	if r.Status == nil {
		status := EmailStatusPending
		r.Status = &status
	}
}

type UpdateEmailEventRequest struct {
	FromEmail      Optional[string]  `json:"from_email"`
	Subject        Optional[*string] `json:"subject"`
	Body           Optional[*string] `json:"body"`
	TriggerMatched Optional[*string] `json:"trigger_matched"`
	Status         Optional[string]  `json:"status"`
}

// MarksProcessed reports whether the update moves the event to processed.
func (r *UpdateEmailEventRequest) MarksProcessed() bool {
	return r.Status.Set && !r.Status.Null && r.Status.Value == EmailStatusProcessed
}

type EmailEventFilter struct {
	Query          string `form:"q"`
	FromEmail      string `form:"from_email"`
	Subject        string `form:"subject"`
	Status         string `form:"status"`
	TriggerMatched string `form:"trigger_matched"`
}
