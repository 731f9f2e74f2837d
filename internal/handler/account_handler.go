package handler

import (
	"net/http"
	"os"

	appmw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/users/me のプロフィール更新API
type AccountHandler struct {
	uc *usecase.AccountUsecase
}

// DI
func NewAccountHandler(uc *usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// プロフィール更新のルートを登録（全て要認証）
func (h *AccountHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/users/me", requireAuth)
	g.PATCH("", h.UpdateAccount)
	g.PATCH("/avatar", h.UpdateAvatar)
	g.PATCH("/cover-image", h.UpdateCoverImage)
}

type updateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

// PATCH /api/v1/users/me
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.uc.UpdateAccount(c.Request().Context(), appmw.UserID(c), req.FullName, req.Email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// PATCH /api/v1/users/me/avatar（multipart: avatar）
func (h *AccountHandler) UpdateAvatar(c echo.Context) error {
	path := h.tempUploadPath(c, "avatar")
	if path != "" {
		defer os.Remove(path)
	}

	user, err := h.uc.UpdateAvatar(c.Request().Context(), appmw.UserID(c), path)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// PATCH /api/v1/users/me/cover-image（multipart: coverImage）
func (h *AccountHandler) UpdateCoverImage(c echo.Context) error {
	path := h.tempUploadPath(c, "coverImage")
	if path != "" {
		defer os.Remove(path)
	}

	user, err := h.uc.UpdateCoverImage(c.Request().Context(), appmw.UserID(c), path)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// ファイルがなければ空文字（欠如の判定はusecase側）
func (h *AccountHandler) tempUploadPath(c echo.Context, field string) string {
	fh, err := c.FormFile(field)
	if err != nil {
		return ""
	}

	path, err := saveTempUpload(fh)
	if err != nil {
		return ""
	}
	return path
}
