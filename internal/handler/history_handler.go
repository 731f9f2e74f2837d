package handler

import (
	"net/http"

	appmw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 視聴履歴の読み取りと追記API
type HistoryHandler struct {
	uc *usecase.HistoryUsecase
}

// DI
func NewHistoryHandler(uc *usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// 視聴履歴のルートを登録（全て要認証）
func (h *HistoryHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/api/v1/users/me/watch-history", h.List, requireAuth)
	e.POST("/api/v1/videos/:id/watch", h.Watch, requireAuth)
}

// GET /api/v1/users/me/watch-history
func (h *HistoryHandler) List(c echo.Context) error {
	history, err := h.uc.List(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, history)
}

// POST /api/v1/videos/:id/watch
func (h *HistoryHandler) Watch(c echo.Context) error {
	videoID := c.Param("id")
	if videoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "video id is missing"})
	}

	if err := h.uc.Watch(c.Request().Context(), appmw.UserID(c), videoID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Message: "watch recorded"})
}
