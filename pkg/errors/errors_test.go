package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", Validation("bad input", nil), http.StatusBadRequest},
		{"not found", NotFound("Contact"), http.StatusNotFound},
		{"unauthorized", Unauthorized("invalid token"), http.StatusUnauthorized},
		{"internal", Internal("export failed", fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Contact not found", NotFound("Contact").Error())
	assert.Equal(t, "export failed: boom", Internal("export failed", fmt.Errorf("boom")).Error())
}

func TestClassifyThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("Trigger"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))

	wrapped = fmt.Errorf("handler: %w", Validation("invalid date", nil))
	assert.True(t, IsValidation(wrapped))

	_, ok := As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
