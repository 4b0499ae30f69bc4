package validator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupPayload struct {
	ID             string `json:"id" binding:"required,notblank"`
	Name           string `json:"name" binding:"required,notblank"`
	EmergencyLevel string `json:"emergency_level" binding:"omitempty,oneof=low medium high critical"`
}

func TestFormatErrorUsesJSONNames(t *testing.T) {
	Register()

	err := binding.Validator.ValidateStruct(&groupPayload{ID: "g-1", Name: "   ", EmergencyLevel: "urgent"})
	require.Error(t, err)

	msg := FormatError(err)
	assert.Contains(t, msg, "name must not be blank")
	assert.Contains(t, msg, "emergency_level must be one of [low medium high critical]")
}

func TestFormatErrorRequired(t *testing.T) {
	Register()

	err := binding.Validator.ValidateStruct(&groupPayload{Name: "Ops"})
	require.Error(t, err)
	assert.Equal(t, "id is required", FormatError(err))
}

func TestFormatErrorJSON(t *testing.T) {
	var p groupPayload
	err := json.Unmarshal([]byte(`{"name": 5}`), &p)
	require.Error(t, err)
	assert.Equal(t, "name must be of type string", FormatError(err))

	err = json.Unmarshal([]byte(`{"name":`), &p)
	require.Error(t, err)
	assert.Equal(t, "malformed JSON body", FormatError(err))

	assert.Equal(t, "other", FormatError(errors.New("other")))
}
