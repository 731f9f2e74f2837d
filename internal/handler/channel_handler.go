package handler

import (
	"net/http"

	appmw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/channels の公開・購読API
type ChannelHandler struct {
	uc *usecase.ChannelUsecase
}

// DI
func NewChannelHandler(uc *usecase.ChannelUsecase) *ChannelHandler {
	return &ChannelHandler{uc: uc}
}

// チャンネルのルートを登録。
// プロフィールは匿名でも見られる（viewerがいればisSubscribedが効く）。
func (h *ChannelHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/channels")
	g.GET("/:username", h.Profile, optionalAuth)
	g.POST("/:username/subscribe", h.Subscribe, requireAuth)
}

// GET /api/v1/channels/:username
func (h *ChannelHandler) Profile(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is missing"})
	}

	profile, err := h.uc.Profile(c.Request().Context(), username, appmw.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// POST /api/v1/channels/:username/subscribe
func (h *ChannelHandler) Subscribe(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is missing"})
	}

	if err := h.uc.Subscribe(c.Request().Context(), appmw.UserID(c), username); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Message: "subscribed successfully"})
}
