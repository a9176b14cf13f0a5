package signer

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/types"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

func GetInfoRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signer.GET("/info", getInfoHandler(s))
}

// Reports the signing key identifier, the uncompressed public key and the
// derived Ethereum address. Public key material is best-effort, a KMS outage
// must not fail this route.
func getInfoHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		response := &types.SignerInfoResponse{
			SignerKid: swag.String(s.Signer.SignerID()),
		}

		pub, err := s.Signer.PublicKeyUncompressed(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to fetch signer public key")
		} else if len(pub) == 65 {
			response.PublicKeyUncompressedHex = hexutil.Encode(pub)
			response.EthereumAddress = common.BytesToAddress(crypto.Keccak256(pub[1:])[12:]).Hex()
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
