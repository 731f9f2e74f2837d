package handler

import (
	"net/http"
	"os"
	"time"

	"app/internal/config"
	appmw "app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/users のセッション系API
type AuthHandler struct {
	uc  *usecase.AuthUsecase
	cfg config.Config
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cfg config.Config) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg}
}

// セッション系のルートを登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/users")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh-token", h.Refresh)
	g.POST("/logout", h.Logout, requireAuth)
	g.POST("/change-password", h.ChangePassword, requireAuth)
	g.GET("/me", h.Me, requireAuth)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type successResponse struct {
	Message string `json:"message"`
}

// POST /api/v1/users/register（multipart: fields + avatar/coverImage）
func (h *AuthHandler) Register(c echo.Context) error {
	in := usecase.RegisterInput{
		FullName: c.FormValue("fullname"),
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	//avatarは必須だが、欠けていた場合の失敗はusecase側で判定する
	if fh, err := c.FormFile("avatar"); err == nil {
		path, err := saveTempUpload(fh)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "avatar is required"})
		}
		defer os.Remove(path)
		in.AvatarPath = path
	}

	//coverImageは任意
	if fh, err := c.FormFile("coverImage"); err == nil {
		path, err := saveTempUpload(fh)
		if err == nil {
			defer os.Remove(path)
			in.CoverImagePath = path
		}
	}

	user, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// POST /api/v1/users/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	//session artifact（httpOnly + secureのcookie2つ）
	h.setSessionCookies(c, out.Token)

	return c.JSON(http.StatusOK, out)
}

// POST /api/v1/users/refresh-token
// tokenはcookie優先、なければbody
func (h *AuthHandler) Refresh(c echo.Context) error {
	incoming := ""
	if cookie, err := c.Cookie(appmw.RefreshTokenCookie); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	pair, err := h.uc.Refresh(c.Request().Context(), incoming)
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookies(c, *pair)

	return c.JSON(http.StatusOK, pair)
}

// POST /api/v1/users/logout（冪等）
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := appmw.UserID(c)

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	h.clearSessionCookies(c)

	return c.JSON(http.StatusOK, successResponse{Message: "logged out successfully"})
}

// POST /api/v1/users/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	userID := appmw.UserID(c)

	if err := h.uc.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Message: "password changed successfully"})
}

// GET /api/v1/users/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.uc.Me(c.Request().Context(), appmw.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// access/refreshの両cookieをセット。
func (h *AuthHandler) setSessionCookies(c echo.Context, pair usecase.TokenPair) {
	h.setCookie(c, appmw.AccessTokenCookie, pair.AccessToken, h.cfg.AccessTokenTTL)
	h.setCookie(c, appmw.RefreshTokenCookie, pair.RefreshToken, h.cfg.RefreshTokenTTL)
}

// 両cookieを破棄する
func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	h.expireCookie(c, appmw.AccessTokenCookie)
	h.expireCookie(c, appmw.RefreshTokenCookie)
}

func (h *AuthHandler) setCookie(c echo.Context, name string, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	}
	c.SetCookie(cookie)
}

func (h *AuthHandler) expireCookie(c echo.Context, name string) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)
}
