package util

import (
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/arcadia-dao/timelock-admin/internal/api/httperrors"
	"github.com/arcadia-dao/timelock-admin/internal/types"
)

// BindAndValidateBody binds the request body to v and runs its swagger
// validation, translating failures into a 400 with per-field detail.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder, ok := c.Echo().Binder.(*echo.DefaultBinder)
	if !ok {
		return errors.New("echo default binder required")
	}

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(v)
}

// ValidateAndReturn validates v against its own swagger rules before writing
// it out, so a handler can never emit a malformed response silently.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(v runtime.Validatable) error {
	err := v.Validate(strfmt.Default)
	if err == nil {
		return nil
	}

	var details []*types.HTTPValidationErrorDetail

	var composite *openapierrors.CompositeError
	if errors.As(err, &composite) {
		details = flattenValidationErrors(composite)
	} else {
		var validation *openapierrors.Validation
		if errors.As(err, &validation) {
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String(validation.Name),
				In:    swag.String(validation.In),
				Error: swag.String(validation.Error()),
			})
		} else {
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String("body"),
				In:    swag.String("body"),
				Error: swag.String(err.Error()),
			})
		}
	}

	return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Payload validation failed", details)
}

func flattenValidationErrors(composite *openapierrors.CompositeError) []*types.HTTPValidationErrorDetail {
	var details []*types.HTTPValidationErrorDetail

	for _, e := range composite.Errors {
		var nested *openapierrors.CompositeError
		if errors.As(e, &nested) {
			details = append(details, flattenValidationErrors(nested)...)
			continue
		}

		var validation *openapierrors.Validation
		if errors.As(e, &validation) {
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String(validation.Name),
				In:    swag.String(validation.In),
				Error: swag.String(validation.Error()),
			})
			continue
		}

		details = append(details, &types.HTTPValidationErrorDetail{
			Key:   swag.String("body"),
			In:    swag.String("body"),
			Error: swag.String(e.Error()),
		})
	}

	return details
}
