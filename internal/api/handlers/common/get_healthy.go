package common

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/util"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness check. Probes the signing backend on top of the readiness check;
// an unhealthy signer makes the whole service useless.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		var str strings.Builder
		str.WriteString("Ready.\n")

		if _, err := s.Signer.PublicKeyUncompressed(ctx); err != nil {
			log.Warn().Err(err).Msg("Signer public key probe failed")
			str.WriteString("Probe signer: ERR\n")
			return c.String(521, str.String())
		}
		str.WriteString("Probe signer: OK\n")

		str.WriteString("Healthy.")

		return c.String(http.StatusOK, str.String())
	}
}
