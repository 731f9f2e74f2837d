package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	accountH *handler.AccountHandler,
	channelH *handler.ChannelHandler,
	historyH *handler.HistoryHandler,
) {
	requireAuth := appmw.AuthJWT(cfg)
	optionalAuth := appmw.OptionalAuthJWT(cfg)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authH.RegisterRoutes(e, requireAuth)
	accountH.RegisterRoutes(e, requireAuth)
	channelH.RegisterRoutes(e, requireAuth, optionalAuth)
	historyH.RegisterRoutes(e, requireAuth)
}
