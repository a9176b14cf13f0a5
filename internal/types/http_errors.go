package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorTypeGeneric is the default public error type.
const PublicHTTPErrorTypeGeneric = "generic"

// PublicHTTPError is the wire representation of an API error.
type PublicHTTPError struct {
	// HTTP status code
	// Required: true
	Code *int64 `json:"status"`

	// Short, human-readable description of the error
	// Required: true
	Title *string `json:"title"`

	// Type of the error
	// Required: true
	Type *string `json:"type"`

	// Additional machine-readable detail, if any
	Detail string `json:"detail,omitempty"`
}

func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field detail.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of failed payload fields
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.PublicHTTPError.Validate(formats); err != nil {
		res = append(res, err)
	}
	for i := range m.ValidationErrors {
		if m.ValidationErrors[i] == nil {
			continue
		}
		if err := m.ValidationErrors[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// HTTPValidationErrorDetail names one offending payload field.
type HTTPValidationErrorDetail struct {
	// Error describing field validation failure
	// Required: true
	Error *string `json:"error"`

	// Indicates how the invalid field was provided
	// Required: true
	In *string `json:"in"`

	// Key of the field failing validation
	// Required: true
	Key *string `json:"key"`
}

func (m *HTTPValidationErrorDetail) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("error", "body", m.Error); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("in", "body", m.In); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("key", "body", m.Key); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// NewValidationErrorDetail is a small helper for handler-side payload checks.
func NewValidationErrorDetail(key, in, err string) *HTTPValidationErrorDetail {
	return &HTTPValidationErrorDetail{
		Key:   swag.String(key),
		In:    swag.String(in),
		Error: swag.String(err),
	}
}
