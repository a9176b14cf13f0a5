package audit_test

import (
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/test"
	"github.com/arcadia-dao/timelock-admin/internal/types"
)

func TestGetEntry(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "unpause()",
		}
		encodeRes := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, encodeRes.Result().StatusCode)

		res := test.PerformRequest(t, s, "GET", "/api/v1/audit/entry?key=0", nil, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.AuditEntryResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "0", swag.StringValue(response.Key))
		assert.Contains(t, swag.StringValue(response.Data), "unpause()")
	})
}

func TestGetEntryMissingKey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/audit/entry", nil, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestGetEntryNotFound(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/audit/entry?key=42", nil, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}
