package audit

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/httperrors"
	"github.com/arcadia-dao/timelock-admin/internal/audit"
	"github.com/arcadia-dao/timelock-admin/internal/types"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

func GetEntryRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Audit.GET("/entry", getEntryHandler(s))
}

// Fetches one raw audit record by key (S3 object key or local line index,
// passed as ?key=).
func getEntryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		key := c.QueryParam("key")
		if key == "" {
			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				types.PublicHTTPErrorTypeGeneric,
				"Missing key",
				[]*types.HTTPValidationErrorDetail{
					types.NewValidationErrorDetail("key", "query", "must not be empty"),
				},
			)
		}

		data, err := s.Audit.Get(ctx, key)
		if err != nil {
			if errors.Is(err, audit.ErrNotFound) {
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Audit record not found")
			}
			log.Error().Err(err).Str("key", key).Msg("Failed to fetch audit record")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to fetch audit record")
		}

		response := &types.AuditEntryResponse{
			Key:  swag.String(key),
			Data: swag.String(data),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
