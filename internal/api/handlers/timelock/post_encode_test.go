package timelock_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/test"
	"github.com/arcadia-dao/timelock-admin/internal/types"
)

func TestPostEncodeRequiresAuth(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}

func TestPostEncodeTransfer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "transfer(address,uint256)",
			"args":      []interface{}{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1000000000000000000"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TimelockEncodeResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "0xa9059cbb", swag.StringValue(response.Selector))
		assert.True(t, strings.HasPrefix(swag.StringValue(response.Data), "0xa9059cbb"))
		assert.Len(t, swag.StringValue(response.Data), 2+8+2*64)
		assert.Equal(t, []string{"address", "uint256"}, response.Types)
		assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", response.CoercedArgs[0])
		assert.Empty(t, response.OpID)
	})
}

func TestPostEncodeWithTargetComputesOpID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
			"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TimelockEncodeResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Len(t, response.OpID, 66)
		assert.Len(t, response.SaltUsed, 66)
		assert.Empty(t, response.Signature)

		// same request yields the same operation id
		res2 := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res2.Result().StatusCode)

		var response2 types.TimelockEncodeResponse
		test.ParseResponseAndValidate(t, res2, &response2)
		assert.Equal(t, response.OpID, response2.OpID)
	})
}

func TestPostEncodeSignOpID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
			"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			"sign_opid": true,
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TimelockEncodeResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.True(t, strings.HasPrefix(response.Signature, "0x"))
		assert.Len(t, response.Signature, 2+65*2)
		assert.Equal(t, "local:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", response.SignerKid)
	})
}

func TestPostEncodeMissingSignature(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"args": []interface{}{"1"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostEncodeMalformedSignature(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "transfer(address,uint256",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "signature")
	})
}

func TestPostEncodeBadArgument(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "transfer(address,uint256)",
			"args":      []interface{}{"not-an-address", "1"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "args[0]")
	})
}

func TestPostEncodeArityMismatch(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "transfer(address,uint256)",
			"args":      []interface{}{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045"},
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostEncodeInvalidTarget(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
			"target":    "0x1234",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "target")
	})
}

func TestPostEncodeInvalidValue(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
			"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			"value":     "-5",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "value")
	})
}

func TestPostEncodeProvidedSaltEchoed(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		payload := test.GenericPayload{
			"signature": "pause()",
			"target":    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			"salt":      "0x01",
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/timelock/encode", payload, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TimelockEncodeResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, "0x01", response.SaltUsed)
	})
}
