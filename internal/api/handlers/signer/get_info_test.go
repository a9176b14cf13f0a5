package signer_test

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

func TestGetInfo(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/signer/info", nil, test.HeadersWithAuth(t))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SignerInfoResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "local:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", swag.StringValue(response.SignerKid))
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", response.EthereumAddress)
		assert.Len(t, response.PublicKeyUncompressedHex, 2+65*2)
	})
}

func TestGetInfoRequiresAuth(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/signer/info", nil, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}
