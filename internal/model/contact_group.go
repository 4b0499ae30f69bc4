package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	EmergencyLow      = "low"
	EmergencyMedium   = "medium"
	EmergencyHigh     = "high"
	EmergencyCritical = "critical"
)

// ValidEmergencyLevel reports whether level is one of the four known levels.
func ValidEmergencyLevel(level string) bool {
	switch level {
	case EmergencyLow, EmergencyMedium, EmergencyHigh, EmergencyCritical:
		return true
	}
	return false
}

type ContactGroup struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    *string   `db:"description" json:"description"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	EmergencyLevel string    `db:"emergency_level" json:"emergency_level"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateContactGroupRequest struct {
	ID             string  `json:"id" binding:"required,notblank"`
	Name           string  `json:"name" binding:"required,notblank"`
	Description    *string `json:"description"`
	IsActive       *bool   `json:"is_active"`
	EmergencyLevel *string `json:"emergency_level" binding:"omitempty,oneof=low medium high critical"`
}

func (r *CreateContactGroupRequest) ApplyDefaults() {
	if r.IsActive == nil {
		active := true
		r.IsActive = &active
	}
	if r.EmergencyLevel == nil {
		level := EmergencyMedium
		r.EmergencyLevel = &level
	}
}

type UpdateContactGroupRequest struct {
	Name           Optional[string]  `json:"name"`
	Description    Optional[*string] `json:"description"`
	IsActive       Optional[bool]    `json:"is_active"`
	EmergencyLevel Optional[string]  `json:"emergency_level"`
}

func (r *UpdateContactGroupRequest) Validate() error {
	if r.EmergencyLevel.Set && !r.EmergencyLevel.Null && !ValidEmergencyLevel(r.EmergencyLevel.Value) {
		return fmt.Errorf("emergency_level must be one of [low medium high critical]")
	}
	if r.Name.Set && !r.Name.Null && strings.TrimSpace(r.Name.Value) == "" {
		return fmt.Errorf("name must not be blank")
	}
	return nil
}

type ContactGroupFilter struct {
	Query          string `form:"q"`
	Name           string `form:"name"`
	Description    string `form:"description"`
	EmergencyLevel string `form:"emergency_level"`
	IsActive       *bool  `form:"is_active"`
}
