package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/test"
)

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
		}
		encodeRes := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, encodeRes.Result().StatusCode)

		res := test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "timelock_encode_requests_total")
	})
}
