package timelock

import (
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/httperrors"
	"github.com/arcadia-dao/timelock-admin/internal/audit"
	"github.com/arcadia-dao/timelock-admin/internal/timelock"
	"github.com/arcadia-dao/timelock-admin/internal/types"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

func PostEncodeBatchRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Timelock.POST("/encode-batch", postEncodeBatchHandler(s))
}

// Encodes a scheduleBatch/executeBatch operation: every call is encoded
// individually, the operation id commits to all of them at once.
func postEncodeBatchHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.TimelockEncodeBatchPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		targets := make([]common.Address, 0, len(body.Calls))
		values := make([]*big.Int, 0, len(body.Calls))
		datas := make([][]byte, 0, len(body.Calls))
		encodedCalls := make([]*types.TimelockEncodedBatchCall, 0, len(body.Calls))
		signatures := make([]string, 0, len(body.Calls))

		for i, call := range body.Calls {
			encoded, err := timelock.EncodeFunctionCall(swag.StringValue(call.Signature), call.Args)
			if err != nil {
				s.Metrics.EncodeRequestsTotal.WithLabelValues("error").Inc()
				return batchCallError(i, encodeErrorToHTTPError(err))
			}

			rawTarget := swag.StringValue(call.Target)
			if !common.IsHexAddress(rawTarget) {
				return httperrors.NewHTTPValidationError(
					http.StatusBadRequest,
					types.PublicHTTPErrorTypeGeneric,
					"Invalid target address",
					[]*types.HTTPValidationErrorDetail{
						types.NewValidationErrorDetail(fmt.Sprintf("calls[%d].target", i), "body", "must be a valid Ethereum address"),
					},
				)
			}

			value, httpErr := parseWeiValue(call.Value)
			if httpErr != nil {
				return batchCallError(i, httpErr)
			}

			targets = append(targets, common.HexToAddress(rawTarget))
			values = append(values, value)
			datas = append(datas, encoded.Data)
			signatures = append(signatures, swag.StringValue(call.Signature))
			encodedCalls = append(encodedCalls, &types.TimelockEncodedBatchCall{
				Data:        swag.String(hexutil.Encode(encoded.Data)),
				Selector:    swag.String(hexutil.Encode(encoded.Selector[:])),
				Types:       encoded.Types,
				CoercedArgs: encoded.Args,
			})
		}
		s.Metrics.EncodeRequestsTotal.WithLabelValues("success").Inc()

		opID, saltUsed, err := timelock.ComputeOpIDBatch(targets, values, datas, body.Predecessor, body.Salt)
		if err != nil {
			return hashErrorToHTTPError(err)
		}

		response := &types.TimelockEncodeBatchResponse{
			Calls:    encodedCalls,
			OpID:     swag.String(opID.Hex()),
			SaltUsed: saltUsed,
		}

		entry := audit.Entry{
			Action:    "encode_batch",
			Client:    c.RealIP(),
			Signature: strings.Join(signatures, ";"),
			OpID:      opID.Hex(),
			SaltUsed:  saltUsed,
		}

		if body.SignOpID {
			result, err := s.Signer.SignOperationID(ctx, opID)
			if err != nil {
				s.Metrics.SignRequestsTotal.WithLabelValues("error").Inc()
				log.Warn().Err(err).Msg("Failed to sign operation id")
				return httperrors.NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeGeneric, "Signing failed")
			}
			s.Metrics.SignRequestsTotal.WithLabelValues("success").Inc()

			response.Signature = result.SignatureHex
			response.SignerKid = result.SignerKID
			entry.Signed = true
			entry.SignerKid = result.SignerKID
		}

		if err := s.Audit.Log(ctx, entry); err != nil {
			log.Error().Err(err).Msg("Failed to write audit record")
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

// batchCallError prefixes field keys of a nested validation error with the
// offending call index.
func batchCallError(index int, err error) error {
	var validationErr *httperrors.HTTPValidationError
	if errors.As(err, &validationErr) {
		for _, detail := range validationErr.ValidationErrors {
			if detail != nil && detail.Key != nil {
				detail.Key = swag.String(fmt.Sprintf("calls[%d].%s", index, swag.StringValue(detail.Key)))
			}
		}
	}
	return err
}
