package timelock

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/httperrors"
	"github.com/arcadia-dao/timelock-admin/internal/types"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

func GetStatusRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Timelock.GET("/status/:opId", getStatusHandler(s))
}

// Queries the on-chain lifecycle state of one operation id.
func getStatusHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if s.Chain == nil {
			return httperrors.NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeGeneric, "No RPC endpoints configured")
		}
		if !common.IsHexAddress(s.Config.Chain.TimelockAddress) {
			return httperrors.NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeGeneric, "No timelock contract configured")
		}

		rawOpID := c.Param("opId")
		decoded, err := hexutil.Decode(rawOpID)
		if err != nil || len(decoded) != 32 {
			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				types.PublicHTTPErrorTypeGeneric,
				"Invalid operation id",
				[]*types.HTTPValidationErrorDetail{
					types.NewValidationErrorDetail("opId", "path", "must be a 0x-prefixed 32-byte hex string"),
				},
			)
		}
		opID := common.HexToHash(rawOpID)

		status, err := s.Chain.TimelockStatus(ctx, common.HexToAddress(s.Config.Chain.TimelockAddress), opID)
		if err != nil {
			log.Warn().Err(err).Str("op_id", opID.Hex()).Msg("Failed to query timelock status")
			return httperrors.NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeGeneric, "Chain query failed")
		}

		response := &types.TimelockStatusResponse{
			OpID:    swag.String(opID.Hex()),
			Pending: swag.Bool(status.Pending),
			Ready:   swag.Bool(status.Ready),
			Done:    swag.Bool(status.Done),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
