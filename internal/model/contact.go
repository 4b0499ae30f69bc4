package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type Contact struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	PhoneNumber string         `db:"phone_number" json:"phone_number"`
	Priority    int            `db:"priority" json:"priority"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	Role        *string        `db:"role" json:"role"`
	Department  *string        `db:"department" json:"department"`
	GroupIDs    pq.StringArray `db:"group_ids" json:"group_ids"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateContactRequest struct {
	ID          string         `json:"id" binding:"required,notblank"`
	Name        string         `json:"name" binding:"required,notblank"`
	PhoneNumber string         `json:"phone_number" binding:"required,notblank"`
	Priority    *int           `json:"priority"`
	IsActive    *bool          `json:"is_active"`
	Role        *string        `json:"role"`
	Department  *string        `json:"department"`
	GroupIDs    pq.StringArray `json:"group_ids" binding:"required"`
}

func (r *CreateContactRequest) ApplyDefaults() {
	if r.Priority == nil {
		priority := 1
		r.Priority = &priority
	}
	if r.IsActive == nil {
		active := true
		r.IsActive = &active
	}
	if r.GroupIDs == nil {
		r.GroupIDs = pq.StringArray{}
	}
}

type UpdateContactRequest struct {
	Name        Optional[string]         `json:"name"`
	PhoneNumber Optional[string]         `json:"phone_number"`
	Priority    Optional[int]            `json:"priority"`
	IsActive    Optional[bool]           `json:"is_active"`
	Role        Optional[*string]        `json:"role"`
	Department  Optional[*string]        `json:"department"`
	GroupIDs    Optional[pq.StringArray] `json:"group_ids"`
}

func (r *UpdateContactRequest) Validate() error {
	if r.Name.Set && !r.Name.Null && strings.TrimSpace(r.Name.Value) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if r.PhoneNumber.Set && !r.PhoneNumber.Null && strings.TrimSpace(r.PhoneNumber.Value) == "" {
		return fmt.Errorf("phone_number must not be blank")
	}
	return nil
}

type ContactFilter struct {
	Query       string `form:"q"`
	Name        string `form:"name"`
	PhoneNumber string `form:"phone_number"`
	Role        string `form:"role"`
	Department  string `form:"department"`
	GroupID     string `form:"group_id"`
	IsActive    *bool  `form:"is_active"`
	PriorityMin *int   `form:"priority_min"`
	PriorityMax *int   `form:"priority_max"`
}
