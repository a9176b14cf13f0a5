package router

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/arcadia-dao/timelock-admin/internal/api/httperrors"
	"github.com/arcadia-dao/timelock-admin/internal/types"
)

// HTTPErrorHandler serializes every error as a PublicHTTPError payload.
// Internal error details are only exposed when the config allows it.
func HTTPErrorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var code int
		var payload interface{}

		switch e := err.(type) {
		case *httperrors.HTTPValidationError:
			code = int(*e.Code)
			payload = e
		case *httperrors.HTTPError:
			code = int(*e.Code)
			if e.Internal != nil {
				log.Warn().Err(e.Internal).Int("status", code).Msg("Internal error attached to HTTP error")
				if !hideInternalServerErrorDetails {
					e.Detail = e.Internal.Error()
				}
			}
			payload = e
		case *echo.HTTPError:
			code = e.Code
			title := http.StatusText(e.Code)
			if msg, ok := e.Message.(string); ok && msg != title {
				title = msg
			}
			payload = &types.PublicHTTPError{
				Code:  swag.Int64(int64(e.Code)),
				Title: swag.String(title),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
			}
		default:
			code = http.StatusInternalServerError
			detail := ""
			if !hideInternalServerErrorDetails {
				detail = err.Error()
			}
			log.Error().Err(err).Msg("Unhandled error")
			payload = &types.PublicHTTPError{
				Code:   swag.Int64(http.StatusInternalServerError),
				Title:  swag.String(http.StatusText(http.StatusInternalServerError)),
				Type:   swag.String(types.PublicHTTPErrorTypeGeneric),
				Detail: detail,
			}
		}

		if c.Response().Committed {
			return
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, payload)
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
