package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// AuditListItem is one entry of the audit trail listing. S3-backed entries
// carry key/size/last_modified; local-file entries carry index/preview.
type AuditListItem struct {
	Key          string `json:"key,omitempty"`
	Size         int64  `json:"size,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	Index        *int64 `json:"index,omitempty"`
	Preview      string `json:"preview,omitempty"`
}

func (m *AuditListItem) Validate(_ strfmt.Registry) error {
	return nil
}

// AuditListResponse lists recent audit records.
type AuditListResponse struct {
	// Record origin: "s3" or "local"
	// Required: true
	Source *string `json:"source"`

	// Required: true
	Items []*AuditListItem `json:"items"`
}

func (m *AuditListResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("source", "body", m.Source); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("items", "body", m.Items); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// AuditEntryResponse returns one raw audit record.
type AuditEntryResponse struct {
	// Required: true
	Key *string `json:"key"`

	// Required: true
	Data *string `json:"data"`
}

func (m *AuditEntryResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("key", "body", m.Key); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("data", "body", m.Data); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
