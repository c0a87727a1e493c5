package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"

	"chopengine/internal/apierror"
	"chopengine/internal/ledger"
	"chopengine/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// envelope renders an error body in the shape the surface's clients expect:
// {"detail"} on /v1, {"error"} on the store API.
type envelope func(msg string) any

func engineEnvelope(msg string) any { return apierror.New(msg) }
func storeEnvelope(msg string) any  { return apierror.NewStore(msg) }

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	return bindWith(c, req, engineEnvelope)
}

func bindStore(c *gin.Context, req interface{}) bool {
	return bindWith(c, req, storeEnvelope)
}

func bindWith(c *gin.Context, req interface{}, env envelope) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, env("invalid JSON: "+err.Error()))
		return false
	}
	return validateStruct(c, req, env)
}

func validateStruct(c *gin.Context, req interface{}, env envelope) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		c.JSON(http.StatusBadRequest, env(err.Error()))
		return false
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fe.Tag()
	}
	if isStoreEnvelope(env) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

func isStoreEnvelope(env envelope) bool {
	_, ok := env("").(*apierror.StoreError)
	return ok
}

// respondError maps the error taxonomy onto HTTP statuses for /v1.
func respondError(c *gin.Context, err error) {
	writeError(c, err, engineEnvelope)
}

// respondStoreError does the same for /orders and /inventory.
func respondStoreError(c *gin.Context, err error) {
	writeError(c, err, storeEnvelope)
}

func writeError(c *gin.Context, err error, env envelope) {
	var (
		ve  *apierror.ValidationError
		sub *apierror.SubmissionError
		se  *apierror.ServerError
		ne  *apierror.NetworkError
		me  *apierror.MalformedResponseError
	)
	switch {
	case errors.As(err, &sub):
		status := http.StatusBadGateway
		if apierror.IsValidation(sub.Err) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, env(sub.Message))
	case errors.As(err, &ve):
		if isStoreEnvelope(env) {
			c.JSON(http.StatusUnprocessableEntity, env(ve.Error()))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, &apierror.ValidationErrors{
			Detail: ve.Error(),
			Fields: map[string]string{ve.Field: ve.Message},
		})
	case errors.Is(err, apierror.ErrNotFound), errors.Is(err, ledger.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, env(notFoundMessage(err)))
	case errors.As(err, &se):
		// 4xx from the remote store pass through; anything else is a bad gateway.
		status := http.StatusBadGateway
		if se.Status >= 400 && se.Status < 500 {
			status = se.Status
		}
		c.JSON(status, env(se.Message))
	case errors.As(err, &ne), errors.As(err, &me):
		c.JSON(http.StatusBadGateway, env(err.Error()))
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, env("internal server error"))
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, ledger.ErrEntryNotFound) {
		return ledger.ErrEntryNotFound.Error()
	}
	return "not found"
}
