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

func TestGetListEmpty(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/audit/list", nil, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.AuditListResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "local", swag.StringValue(response.Source))
		assert.Empty(t, response.Items)
	})
}

func TestGetListAfterEncode(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
		}
		encodeRes := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, encodeRes.Result().StatusCode)

		res := test.PerformRequest(t, s, "GET", "/api/v1/audit/list", nil, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.AuditListResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "local", swag.StringValue(response.Source))
		require.Len(t, response.Items, 1)
		require.NotNil(t, response.Items[0].Index)
		assert.EqualValues(t, 0, *response.Items[0].Index)
		assert.Contains(t, response.Items[0].Preview, "pause()")
	})
}

func TestGetListRequiresAuth(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/audit/list", nil, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}
