package http

import (
	"net/http"

	"whale-watcher/internal/dto"

	"github.com/labstack/echo/v4"
)

const defaultJournalLimit = 50

func (h *HttpAPIHandler) SetupJournal(base *echo.Group) {
	v1 := base.Group("/v1/journal")
	{
		v1.GET("", h.GetJournal)
	}
}

// GetJournal returns the most recent journal entries, newest first.
func (h *HttpAPIHandler) GetJournal(c echo.Context) error {
	var query dto.JournalQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBaseResponse(http.StatusBadRequest, err.Error(), nil))
	}
	if err := h.validator.Struct(&query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBaseResponse(http.StatusBadRequest, err.Error(), nil))
	}
	if query.Limit == 0 {
		query.Limit = defaultJournalLimit
	}

	entries, err := h.repo.JournalRepo.Recent(c.Request().Context(), query.Limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("journal entries", entries))
}
