// Package service holds the use cases behind the HTTP handlers. Services
// validate input, call the in-memory stores and translate absence into
// application errors.
package service

import (
	"strings"

	"github.com/sangkips/produce-store-api/pkg/apperror"
	"go.opentelemetry.io/otel"
)

const instrumentationName = "github.com/sangkips/produce-store-api/internal/application/service"

var tracer = otel.Tracer(instrumentationName)

// fieldErrors collects validation failures in field order
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.FieldError{Field: field, Message: message})
}

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}
