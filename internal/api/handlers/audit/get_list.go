package audit

import (
	"net/http"
	"time"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/api/httperrors"
	"github.com/arcadia-dao/timelock-admin/internal/types"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

func GetListRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Audit.GET("/list", getListHandler(s))
}

func getListHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		source, items, err := s.Audit.List(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list audit records")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to list audit records")
		}

		respItems := make([]*types.AuditListItem, 0, len(items))
		for _, item := range items {
			out := &types.AuditListItem{
				Key:     item.Key,
				Size:    item.Size,
				Preview: item.Preview,
			}
			if !item.LastModified.IsZero() {
				out.LastModified = item.LastModified.UTC().Format(time.RFC3339)
			}
			if source == "local" {
				out.Index = swag.Int64(item.Index)
			}
			respItems = append(respItems, out)
		}

		response := &types.AuditListResponse{
			Source: swag.String(source),
			Items:  respItems,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
