package timelock

import (
	"fmt"
	"math/big"
	"net/http"

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

func PostEncodeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Timelock.POST("/encode", postEncodeHandler(s))
}

func postEncodeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.TimelockEncodePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		encoded, err := timelock.EncodeFunctionCall(swag.StringValue(body.Signature), body.Args)
		if err != nil {
			s.Metrics.EncodeRequestsTotal.WithLabelValues("error").Inc()
			return encodeErrorToHTTPError(err)
		}
		s.Metrics.EncodeRequestsTotal.WithLabelValues("success").Inc()

		response := &types.TimelockEncodeResponse{
			Data:        swag.String(hexutil.Encode(encoded.Data)),
			Selector:    swag.String(hexutil.Encode(encoded.Selector[:])),
			Types:       encoded.Types,
			CoercedArgs: encoded.Args,
		}

		entry := audit.Entry{
			Action:      "encode",
			Client:      c.RealIP(),
			Signature:   swag.StringValue(body.Signature),
			Target:      body.Target,
			Types:       encoded.Types,
			CoercedArgs: encoded.Args,
			Data:        hexutil.Encode(encoded.Data),
		}

		if body.Target != "" {
			if !common.IsHexAddress(body.Target) {
				return httperrors.NewHTTPValidationError(
					http.StatusBadRequest,
					types.PublicHTTPErrorTypeGeneric,
					"Invalid target address",
					[]*types.HTTPValidationErrorDetail{
						types.NewValidationErrorDetail("target", "body", "must be a valid Ethereum address"),
					},
				)
			}
			target := common.HexToAddress(body.Target)

			value, httpErr := parseWeiValue(body.Value)
			if httpErr != nil {
				return httpErr
			}

			opID, saltUsed, err := timelock.ComputeOpIDSingle(target, value, encoded.Data, body.Predecessor, body.Salt)
			if err != nil {
				return hashErrorToHTTPError(err)
			}

			response.OpID = opID.Hex()
			response.SaltUsed = saltUsed
			entry.OpID = opID.Hex()
			entry.SaltUsed = saltUsed

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
		}

		if err := s.Audit.Log(ctx, entry); err != nil {
			log.Error().Err(err).Msg("Failed to write audit record")
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

func parseWeiValue(raw string) (*big.Int, *httperrors.HTTPValidationError) {
	if raw == "" {
		return big.NewInt(0), nil
	}

	value, ok := new(big.Int).SetString(raw, 10)
	if !ok || value.Sign() < 0 {
		return nil, httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Invalid value",
			[]*types.HTTPValidationErrorDetail{
				types.NewValidationErrorDetail("value", "body", "must be a non-negative decimal wei amount"),
			},
		)
	}

	return value, nil
}

// encodeErrorToHTTPError translates encoder failures into 400 responses with
// enough detail to fix the offending payload field.
func encodeErrorToHTTPError(err error) error {
	var arityErr *timelock.ArityMismatchError
	if errors.As(err, &arityErr) {
		return httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Argument count mismatch",
			[]*types.HTTPValidationErrorDetail{
				types.NewValidationErrorDetail("args", "body", arityErr.Error()),
			},
		)
	}

	var coerceErr *timelock.CoerceError
	if errors.As(err, &coerceErr) {
		return httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Argument coercion failed",
			[]*types.HTTPValidationErrorDetail{
				types.NewValidationErrorDetail(fmt.Sprintf("args[%d]", coerceErr.Index), "body", coerceErr.Error()),
			},
		)
	}

	if errors.Is(err, timelock.ErrMalformedSignature) {
		return httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Malformed function signature",
			[]*types.HTTPValidationErrorDetail{
				types.NewValidationErrorDetail("signature", "body", err.Error()),
			},
		)
	}

	var encErr *timelock.EncodingError
	if errors.As(err, &encErr) {
		return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, encErr.Error())
	}

	return err
}

func hashErrorToHTTPError(err error) error {
	if errors.Is(err, timelock.ErrHashComputation) {
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Operation id computation failed", err.Error())
	}
	return err
}
