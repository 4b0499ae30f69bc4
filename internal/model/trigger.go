package model

import (
	"fmt"
	"strings"
	"time"
)

type Trigger struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	TriggerString string    `db:"trigger_string" json:"trigger_string"`
	Description   *string   `db:"description" json:"description"`
	GroupID       *string   `db:"group_id" json:"group_id"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	Priority      int       `db:"priority" json:"priority"`
	CustomMessage *string   `db:"custom_message" json:"custom_message"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateTriggerRequest struct {
	ID            string  `json:"id" binding:"required,notblank"`
	Name          string  `json:"name" binding:"required,notblank"`
	TriggerString string  `json:"trigger_string" binding:"required"`
	Description   *string `json:"description"`
	GroupID       *string `json:"group_id"`
	IsActive      *bool   `json:"is_active"`
	Priority      *int    `json:"priority"`
	CustomMessage *string `json:"custom_message"`
}

func (r *CreateTriggerRequest) ApplyDefaults() {
	if r.IsActive == nil {
		active := true
		r.IsActive = &active
	}
	if r.Priority == nil {
		priority := 1
		r.Priority = &priority
	}
}

type UpdateTriggerRequest struct {
	Name          Optional[string]  `json:"name"`
	TriggerString Optional[string]  `json:"trigger_string"`
	Description   Optional[*string] `json:"description"`
	GroupID       Optional[*string] `json:"group_id"`
	IsActive      Optional[bool]    `json:"is_active"`
	Priority      Optional[int]     `json:"priority"`
	CustomMessage Optional[*string] `json:"custom_message"`
}

func (r *UpdateTriggerRequest) Validate() error {
	if r.Name.Set && !r.Name.Null && strings.TrimSpace(r.Name.Value) == "" {
		return fmt.Errorf("name must not be blank")
	}
	return nil
}

type TriggerFilter struct {
	Query         string `form:"q"`
	Name          string `form:"name"`
	TriggerString string `form:"trigger_string"`
	Description   string `form:"description"`
	GroupID       string `form:"group_id"`
	IsActive      *bool  `form:"is_active"`
	PriorityMin   *int   `form:"priority_min"`
	PriorityMax   *int   `form:"priority_max"`
}
