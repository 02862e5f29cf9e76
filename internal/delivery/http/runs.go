package http

import (
	"context"
	"net/http"

	"whale-watcher/internal/dto"
	"whale-watcher/internal/service"
	"whale-watcher/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupRuns(base *echo.Group) {
	v1 := base.Group("/v1/runs")
	{
		v1.POST("", h.TriggerRun)
	}
}

// TriggerRun kicks off one evaluation pass in the background. The response
// does not wait for the run; poll the dashboard for the result.
func (h *HttpAPIHandler) TriggerRun(c echo.Context) error {
	// The run outlives the request; detach it from the request context.
	logger := c.Echo().Logger
	utils.GoSafe(func() {
		if err := h.service.EngineService.Run(context.Background(), service.RunModeOnce); err != nil {
			logger.Errorf("triggered run failed: %v", err)
		}
	})
	return c.JSON(http.StatusAccepted, dto.NewBaseResponse(http.StatusAccepted, "evaluation run started", nil))
}
