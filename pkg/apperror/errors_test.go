package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Boleta")
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "Boleta not found", err.Error())
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("lines", "at least one line is required")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "lines", Message: "at least one line is required"}}, err.Errors)
}

func TestGetAppErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewBadRequestError("bad file"))
	got := GetAppError(wrapped)
	assert.Equal(t, http.StatusBadRequest, got.Code)
}

func TestGetAppErrorPlainError(t *testing.T) {
	cause := errors.New("boom")
	got := GetAppError(cause)
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "Internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("request in progress")
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Equal(t, "request in progress", err.Message)
}

func TestNewInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError("Failed to build workbook", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to build workbook", err.Message)
	assert.Contains(t, err.Error(), "disk full")
}
