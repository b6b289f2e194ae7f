package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/produce-store-api/internal/application/service"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/request"
	"github.com/sangkips/produce-store-api/pkg/apperror"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report json names instead of Go field names
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSON decodes the body into obj. Validation failures become a 422 with
// one entry per field; malformed bodies become a 400.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperror.NewValidationError(fieldErrorsOf(verrs))
		}
		return apperror.NewBadRequestError("Invalid request body")
	}
	return nil
}

func fieldErrorsOf(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		out = append(out, apperror.FieldError{Field: field, Message: describe(field, fe)})
	}
	return out
}

// fieldPath drops the root type and embedded struct names from a namespace
// such as BoletaRequest.BoletaHeaderRequest.client or BoletaRequest.lines[0].quantity.
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	kept := parts[:0]
	for i, p := range parts {
		if i == 0 || p == "" {
			continue
		}
		if r := p[0]; r >= 'A' && r <= 'Z' {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	default:
		return field + " is invalid"
	}
}

// bindOptionalJSON binds only when the request carries a body
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return bindJSON(c, obj)
}

func parseDraftID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid draft ID")
	}
	return id, nil
}

// unitOf resolves a unit already checked by the oneof binding
func unitOf(s string) enum.Unit {
	u, _ := enum.ParseUnit(s)
	return u
}

func lineInput(req *request.BoletaLineRequest) *service.LineInput {
	return &service.LineInput{
		ProductID: strings.TrimSpace(req.ProductID),
		Quantity:  req.Quantity,
		Unit:      unitOf(req.Unit),
	}
}

// headerInput converts dates already checked by the datetime binding
func headerInput(req *request.BoletaHeaderRequest) *service.BoletaHeader {
	issue, _ := time.Parse(entity.DateLayout, req.IssueDate)
	transfer, _ := time.Parse(entity.DateLayout, req.TransferDate)
	return &service.BoletaHeader{
		Client:             req.Client,
		IdentityName:       req.IdentityName,
		TaxID:              req.TaxID,
		IssueDate:          issue,
		TransferDate:       transfer,
		TransportBrand:     req.TransportBrand,
		TransportPlate:     req.TransportPlate,
		RegistrationNumber: req.RegistrationNumber,
		DriverLicense:      req.DriverLicense,
	}
}
