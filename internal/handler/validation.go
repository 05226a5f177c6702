package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"arcadestore/internal/errors"
	"arcadestore/internal/model"
)

// bindAndValidate decodes the request body into req and schema-checks it.
// Failures produce a 400 enumerating each offending field; handlers never
// see an unvalidated payload.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: fieldErrors(err),
		})
	}
	return nil
}

// requireIDParam checks that the named path parameter is a well-formed
// 24-hex identifier before any storage lookup happens.
func requireIDParam(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if !model.IsValidID(id) {
		return "", echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid game id",
			Code:  "INVALID_ID",
			Details: []errors.FieldError{
				{Field: name, Message: "must be a 24-character hex string"},
			},
		})
	}
	return id, nil
}

// fieldErrors flattens validator errors into per-field path/message pairs.
func fieldErrors(err error) []errors.FieldError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []errors.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, errors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "objectid":
		return "must be a 24-character hex string"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// mapServiceError converts a domain error into the HTTP representation. The
// original error rides along as the internal cause so the central error
// handler can log faults that surface as a generic 500.
func mapServiceError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// unauthenticated mirrors the middleware's rejection for the fallback case
// where a secured handler finds no account on the context.
func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "invalid or missing token",
		Code:  "UNAUTHENTICATED",
	})
}
