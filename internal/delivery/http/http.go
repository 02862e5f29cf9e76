package http

import (
	"context"

	"whale-watcher/internal/repository"
	"whale-watcher/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	repo      *repository.Repository
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service, repo *repository.Repository) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		repo:      repo,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/", h.DashboardPage)

	base := h.echo.Group("/api")
	h.SetupDashboard(base)
	h.SetupJournal(base)
	h.SetupRuns(base)
}
