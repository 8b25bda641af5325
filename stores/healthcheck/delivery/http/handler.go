package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/delivery"
	hcdomain "github.com/x-xyz/collectibles/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New will initialize the healthcheck/
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health")
	g.GET("", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{
		"healthy": "ok",
	})
}
