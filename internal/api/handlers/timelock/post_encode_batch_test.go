package timelock_test

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

func TestPostEncodeBatch(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"calls": []interface{}{
				map[string]interface{}{
					"signature": "pause()",
					"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				},
				map[string]interface{}{
					"signature": "transfer(address,uint256)",
					"args":      []interface{}{"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", "1"},
					"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				},
			},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode-batch", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TimelockEncodeBatchResponse
		test.ParseResponseAndValidate(t, res, &response)

		require.Len(t, response.Calls, 2)
		assert.Equal(t, "0xa9059cbb", swag.StringValue(response.Calls[1].Selector))
		assert.Len(t, swag.StringValue(response.OpID), 66)
		assert.Len(t, response.SaltUsed, 66)
	})
}

func TestPostEncodeBatchDiffersFromSingle(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		single := test.GenericPayload{
			"signature": "pause()",
			"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			"salt":      "0x22",
		}
		batch := test.GenericPayload{
			"calls": []interface{}{
				map[string]interface{}{
					"signature": "pause()",
					"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				},
			},
			"salt": "0x22",
		}

		resSingle := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", single, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, resSingle.Result().StatusCode)
		resBatch := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode-batch", batch, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, resBatch.Result().StatusCode)

		var singleResponse types.TimelockEncodeResponse
		test.ParseResponseAndValidate(t, resSingle, &singleResponse)
		var batchResponse types.TimelockEncodeBatchResponse
		test.ParseResponseAndValidate(t, resBatch, &batchResponse)

		assert.NotEqual(t, singleResponse.OpID, swag.StringValue(batchResponse.OpID))
	})
}

func TestPostEncodeBatchEmptyCalls(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"calls": []interface{}{},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode-batch", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostEncodeBatchBadCallKeyed(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"calls": []interface{}{
				map[string]interface{}{
					"signature": "pause()",
					"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				},
				map[string]interface{}{
					"signature": "transfer(address,uint256)",
					"args":      []interface{}{"broken", "1"},
					"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				},
			},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode-batch", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "calls[1]")
	})
}

func TestPostEncodeBatchSignOpID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"calls": []interface{}{
				map[string]interface{}{
					"signature": "pause()",
					"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				},
			},
			"sign_opid": true,
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode-batch", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TimelockEncodeBatchResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.NotEmpty(t, response.Signature)
		assert.Equal(t, "local:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", response.SignerKid)
	})
}
